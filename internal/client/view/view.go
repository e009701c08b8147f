package view

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"barkbuddy/internal/client/api"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	Title lipgloss.Style
	Bold  lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style
	OK    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706")).Bold(true),
		Bold:  lipgloss.NewStyle().Bold(true),
		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true),
		OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")),
	}
}

// Table es una tabla estática con columnas del ancho del contenido.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) View(st Styles) string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(st.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	head := st.Bold.Padding(0, 1)
	cellStyle := st.Body.Padding(0, 1)
	sep := st.Muted.Render("|")

	for i, h := range t.Headers {
		sb.WriteString(head.Width(widths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(st.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Renderer escribe las vistas en Out y los errores en Err.
type Renderer struct {
	Out    io.Writer
	Err    io.Writer
	Styles Styles
}

func NewRenderer(out, errOut io.Writer) *Renderer {
	return &Renderer{Out: out, Err: errOut, Styles: DefaultStyles()}
}

func (r *Renderer) Dogs(title string, dogs []api.Dog) {
	if len(dogs) == 0 {
		fmt.Fprintln(r.Out, r.Styles.Muted.Render("No dogs yet."))
		return
	}
	t := NewTable(title, "ID", "Name", "Breed", "Age", "Size", "Owner", "Mine", "Friendly")
	for _, d := range dogs {
		t.AddRow(d.ID, d.Name, d.Breed, strconv.Itoa(d.Age), dash(d.Size), d.Owner, yesNo(d.IsOwner), yesNo(d.IsFriendly))
	}
	fmt.Fprint(r.Out, t.View(r.Styles))
}

func (r *Renderer) Dog(d api.Dog) {
	st := r.Styles
	fmt.Fprintln(r.Out, st.Title.Render(d.Name))
	rows := [][2]string{
		{"ID", d.ID},
		{"Nickname", d.Nickname},
		{"Age", strconv.Itoa(d.Age)},
		{"Gender", d.Gender},
		{"Color", d.Color},
		{"Breed", d.Breed},
		{"Size", dash(d.Size)},
		{"Owner", d.Owner},
		{"Second owner", d.Owner2},
		{"Neighborhood", d.Neighborhood},
		{"Friendly", yesNo(d.IsFriendly)},
		{"Favorite", yesNo(d.IsFavorite)},
		{"Mine", yesNo(d.IsOwner)},
		{"Notes", d.Notes},
		{"Created", d.CreatedAt.Format(time.RFC3339)},
	}
	if d.Image != nil {
		rows = append(rows, [2]string{"Image", *d.Image})
	}
	for _, kv := range rows {
		fmt.Fprintf(r.Out, "%s %s\n", st.Bold.Width(14).Render(kv[0]+":"), dash(kv[1]))
	}
}

func (r *Renderer) Count(n int) {
	fmt.Fprintf(r.Out, "%s %d\n", r.Styles.Bold.Render("Dogs:"), n)
}

// Sightings: el primero de la lista es "first met".
func (r *Renderer) Sightings(locs []api.Location) {
	if len(locs) == 0 {
		fmt.Fprintln(r.Out, r.Styles.Muted.Render("No sightings yet."))
		return
	}
	t := NewTable("Sightings", "#", "When", "Latitude", "Longitude", "")
	for i, l := range locs {
		mark := ""
		if i == 0 {
			mark = "first met"
		}
		t.AddRow(strconv.Itoa(i+1), l.Timestamp.Local().Format("2006-01-02 15:04"),
			strconv.FormatFloat(l.Latitude, 'f', 5, 64), strconv.FormatFloat(l.Longitude, 'f', 5, 64), mark)
	}
	fmt.Fprint(r.Out, t.View(r.Styles))
}

func (r *Renderer) Trail(tr api.Trail) {
	if tr.Points == 0 {
		fmt.Fprintln(r.Out, r.Styles.Muted.Render("No sightings yet."))
		return
	}
	fmt.Fprintf(r.Out, "%s %d\n", r.Styles.Bold.Render("Points:"), tr.Points)
	fmt.Fprintf(r.Out, "%s %s\n", r.Styles.Bold.Render("Polyline:"), tr.Polyline)
	if tr.First != nil {
		fmt.Fprintf(r.Out, "%s %s\n", r.Styles.Bold.Render("First met:"), tr.First.Timestamp.Local().Format(time.RFC1123))
	}
	if tr.Last != nil {
		fmt.Fprintf(r.Out, "%s %s\n", r.Styles.Bold.Render("Last seen:"), tr.Last.Timestamp.Local().Format(time.RFC1123))
	}
}

// Breeds muestra Name primero y el resto de columnas en orden alfabético.
func (r *Renderer) Breeds(rows []api.Breed) {
	if len(rows) == 0 {
		fmt.Fprintln(r.Out, r.Styles.Muted.Render("No breeds."))
		return
	}
	var cols []string
	for k := range rows[0] {
		if k != "Name" {
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	cols = append([]string{"Name"}, cols...)

	t := NewTable("Breeds", cols...)
	for _, b := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = b[c]
		}
		t.AddRow(cells...)
	}
	fmt.Fprint(r.Out, t.View(r.Styles))
}

func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.Out, r.Styles.OK.Render(msg))
}

// Warn y Error van a Err: ningún fallo queda sin mostrar.
func (r *Renderer) Warn(msg string) {
	fmt.Fprintln(r.Err, r.Styles.Muted.Render("warning: "+msg))
}

func (r *Renderer) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(r.Err, r.Styles.Error.Render("error: "+err.Error()))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
