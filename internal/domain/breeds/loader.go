package breeds

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrIO    = errors.New("breeds: read failed")
	ErrParse = errors.New("breeds: invalid csv")
)

// Row es una fila del CSV: nombre de columna => valor.
type Row map[string]string

// Loader lee el CSV de razas en cada llamada (el archivo puede cambiar sin reiniciar).
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) ListBreeds(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	return parse(f)
}

// Names devuelve solo la columna Name, en el orden del archivo.
func (l *Loader) Names(ctx context.Context) ([]string, error) {
	rows, err := l.ListBreeds(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if n := strings.TrimSpace(r["Name"]); n != "" {
			out = append(out, n)
		}
	}
	return out, nil
}

func parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // filas irregulares permitidas
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrParse, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	out := make([]Row, 0, 64)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if isBlank(rec) {
			continue
		}

		row := make(Row, len(header))
		for i, col := range header {
			if col == "" || i >= len(rec) {
				continue
			}
			row[col] = strings.TrimSpace(rec[i])
		}
		out = append(out, row)
	}
	return out, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
