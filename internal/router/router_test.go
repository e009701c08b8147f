package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"barkbuddy/internal/router"
)

const breedsCSV = "../../data/dog_breeds.csv"

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	if opts.BreedsCSVPath == "" {
		opts.BreedsCSVPath = breedsCSV
	}
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_DogLifecycle(t *testing.T) {
	ts := newServer(t, router.Options{AuthVerifier: nil})

	ownerID := "user-1"
	strangerID := "user-2"

	// 1) Alta con el payload de referencia
	dog := createDog(t, ts.URL, ownerID, map[string]any{
		"name":   "Rex",
		"age":    3,
		"gender": "Male",
		"color":  "Brown",
		"breed":  "Labrador",
		"size":   "medium",
	})
	if dog.Name != "Rex" || dog.Age != 3 || dog.Gender != "Male" || dog.Color != "Brown" ||
		dog.Breed != "Labrador" || dog.Size != "medium" {
		t.Fatalf("round trip mismatch: %+v", dog)
	}
	if dog.UserID != ownerID {
		t.Fatalf("expected user_id %q, got %q", ownerID, dog.UserID)
	}
	if dog.IsOwner {
		t.Fatalf("expected isOwner=false by default")
	}
	if !dog.IsFriendly {
		t.Fatalf("expected isFriendly=true by default")
	}

	// 2) GET devuelve lo mismo
	{
		st, body := doReq(t, ts.URL, "GET", "/api/dogs/"+dog.ID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get dog, got %d body=%s", st, string(body))
		}
		var got dogJSON
		_ = json.Unmarshal(body, &got)
		if got.ID != dog.ID || got.Name != "Rex" || got.Size != "medium" {
			t.Fatalf("unexpected dog: %+v", got)
		}
		if got.Image != nil {
			t.Fatalf("expected null image, got %q", *got.Image)
		}
	}

	// 3) Otro usuario no ve, no edita ni borra (404, nunca 403)
	for _, tc := range []struct {
		method string
		body   any
	}{
		{"GET", nil},
		{"PUT", map[string]any{"name": "Stolen"}},
		{"DELETE", nil},
	} {
		st, _ := doReq(t, ts.URL, tc.method, "/api/dogs/"+dog.ID, strangerID, tc.body)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 %s by stranger, got %d", tc.method, st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/api/dogs", strangerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list by stranger, got %d", st)
		}
		if n := len(decodeDogs(t, body)); n != 0 {
			t.Fatalf("stranger should see 0 dogs, got %d", n)
		}
	}

	// 4) El dueño sigue viendo su perro intacto
	{
		st, body := doReq(t, ts.URL, "GET", "/api/dogs", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		dogs := decodeDogs(t, body)
		if len(dogs) != 1 || dogs[0].Name != "Rex" {
			t.Fatalf("unexpected list: %+v", dogs)
		}
	}

	// 5) Update parcial: solo cambia lo enviado
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/dogs/"+dog.ID, ownerID, map[string]any{
			"nickname": "Rexy",
			"isOwner":  true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var got dogJSON
		_ = json.Unmarshal(body, &got)
		if got.Nickname != "Rexy" || !got.IsOwner || got.Name != "Rex" || got.Age != 3 {
			t.Fatalf("unexpected partial update: %+v", got)
		}
	}

	// 6) my-dogs y count
	createDog(t, ts.URL, ownerID, map[string]any{"name": "Luna"})
	{
		st, body := doReq(t, ts.URL, "GET", "/api/dogs/my-dogs", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my-dogs, got %d", st)
		}
		mine := decodeDogs(t, body)
		if len(mine) != 1 || mine[0].ID != dog.ID {
			t.Fatalf("expected only Rex in my-dogs, got %+v", mine)
		}
	}
	if n := countDogs(t, ts.URL, ownerID); n != 2 {
		t.Fatalf("expected count 2, got %d", n)
	}

	// 7) Delete
	{
		st, body := doReq(t, ts.URL, "DELETE", "/api/dogs/"+dog.ID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/dogs/"+dog.ID, ownerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
	if n := countDogs(t, ts.URL, ownerID); n != 1 {
		t.Fatalf("expected count 1 after delete, got %d", n)
	}
}

func TestHTTP_Defaults_AgeZeroAndNotOwner(t *testing.T) {
	ts := newServer(t, router.Options{})

	dog := createDog(t, ts.URL, "user-1", map[string]any{"name": "Solo"})
	if dog.Age != 0 {
		t.Fatalf("expected age 0, got %d", dog.Age)
	}
	if dog.IsOwner || dog.IsFavorite {
		t.Fatalf("expected isOwner=false and isFavorite=false, got %+v", dog)
	}
	if dog.Breed != "Unknown" || dog.Owner != "Unknown" {
		t.Fatalf("expected Unknown defaults, got breed=%q owner=%q", dog.Breed, dog.Owner)
	}
}

func TestHTTP_InvalidSize_CreatesOrChangesNothing(t *testing.T) {
	ts := newServer(t, router.Options{})
	userID := "user-1"

	st, body := doReq(t, ts.URL, "POST", "/api/dogs", userID, map[string]any{
		"name": "Big",
		"size": "huge",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid size, got %d body=%s", st, string(body))
	}
	if n := countDogs(t, ts.URL, userID); n != 0 {
		t.Fatalf("expected no dog created, got %d", n)
	}

	dog := createDog(t, ts.URL, userID, map[string]any{"name": "Small", "size": "small"})
	st, _ = doReq(t, ts.URL, "PUT", "/api/dogs/"+dog.ID, userID, map[string]any{
		"name": "Renamed",
		"size": "gigantic",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid size on update, got %d", st)
	}

	_, body = doReq(t, ts.URL, "GET", "/api/dogs/"+dog.ID, userID, nil)
	var got dogJSON
	_ = json.Unmarshal(body, &got)
	if got.Name != "Small" || got.Size != "small" {
		t.Fatalf("rejected update must not change the dog: %+v", got)
	}
}

func TestHTTP_MissingNameOrBadAge_Returns400(t *testing.T) {
	ts := newServer(t, router.Options{})

	for name, payload := range map[string]map[string]any{
		"missing name": {"age": 2},
		"negative age": {"name": "Rex", "age": -1},
		"text age":     {"name": "Rex", "age": "two"},
		"bad bool":     {"name": "Rex", "isOwner": "maybe"},
	} {
		st, body := doReq(t, ts.URL, "POST", "/api/dogs", "user-1", payload)
		if st != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d body=%s", name, st, string(body))
		}
	}
}

func TestHTTP_UpdateIsOwnerStringAndJSONAgree(t *testing.T) {
	ts := newServer(t, router.Options{})
	userID := "user-1"

	a := createDog(t, ts.URL, userID, map[string]any{"name": "A"})
	b := createDog(t, ts.URL, userID, map[string]any{"name": "B"})

	// multipart: el browser manda "true" como string
	st, body := doMultipart(t, ts.URL, "PUT", "/api/dogs/"+a.ID, userID, map[string]string{"isOwner": "true"}, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 multipart update, got %d body=%s", st, string(body))
	}
	var gotA dogJSON
	_ = json.Unmarshal(body, &gotA)

	st, body = doReq(t, ts.URL, "PUT", "/api/dogs/"+b.ID, userID, map[string]any{"isOwner": true})
	if st != http.StatusOK {
		t.Fatalf("expected 200 json update, got %d body=%s", st, string(body))
	}
	var gotB dogJSON
	_ = json.Unmarshal(body, &gotB)

	if !gotA.IsOwner || !gotB.IsOwner {
		t.Fatalf("expected isOwner=true for both, got a=%v b=%v", gotA.IsOwner, gotB.IsOwner)
	}
}

func TestHTTP_MultipartCreateWithImageAndSighting(t *testing.T) {
	ts := newServer(t, router.Options{})
	userID := "user-1"

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	st, body := doMultipart(t, ts.URL, "POST", "/api/dogs", userID, map[string]string{
		"name":      "Pic",
		"age":       "4",
		"isOwner":   "true",
		"latitude":  "-34.6037",
		"longitude": "-58.3816",
	}, png)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 multipart create, got %d body=%s", st, string(body))
	}
	var dog dogJSON
	_ = json.Unmarshal(body, &dog)
	if dog.Age != 4 || !dog.IsOwner {
		t.Fatalf("coercion failed: %+v", dog)
	}
	if dog.Image == nil || *dog.Image != "/api/dogs/"+dog.ID+"/image" {
		t.Fatalf("expected inline image url, got %v", dog.Image)
	}

	// imagen servida por la API
	{
		req, _ := http.NewRequest("GET", ts.URL+*dog.Image, nil)
		req.Header.Set("X-Debug-User-ID", userID)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("get image: %v", err)
		}
		defer res.Body.Close()
		got, _ := io.ReadAll(res.Body)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 image, got %d", res.StatusCode)
		}
		if res.Header.Get("Content-Type") != "image/png" {
			t.Fatalf("expected image/png, got %q", res.Header.Get("Content-Type"))
		}
		if !bytes.Equal(got, png) {
			t.Fatalf("image bytes mismatch")
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/dogs/"+dog.ID+"/image", "user-2", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 image for stranger, got %d", st)
		}
	}

	// el avistamiento inicial quedó registrado
	st, body = doReq(t, ts.URL, "GET", "/locations/"+dog.ID, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list locations, got %d body=%s", st, string(body))
	}
	var locs []locationJSON
	_ = json.Unmarshal(body, &locs)
	if len(locs) != 1 || locs[0].Latitude != -34.6037 || locs[0].Longitude != -58.3816 {
		t.Fatalf("unexpected initial sighting: %+v", locs)
	}
}

func TestHTTP_DogWithoutImage_ImageIs404(t *testing.T) {
	ts := newServer(t, router.Options{})
	dog := createDog(t, ts.URL, "user-1", map[string]any{"name": "NoPic"})

	st, _ := doReq(t, ts.URL, "GET", "/api/dogs/"+dog.ID+"/image", "user-1", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for dog without image, got %d", st)
	}
}

func TestHTTP_UploadOverLimit_Returns413(t *testing.T) {
	ts := newServer(t, router.Options{MaxUploadBytes: 1024})
	userID := "user-1"

	st, body := doMultipart(t, ts.URL, "POST", "/api/dogs", userID, map[string]string{"name": "Huge"}, bytes.Repeat([]byte("x"), 4096))
	if st != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d body=%s", st, string(body))
	}
	if n := countDogs(t, ts.URL, userID); n != 0 {
		t.Fatalf("expected no dog created, got %d", n)
	}
}

func TestHTTP_Locations_OrderCascadeAndOwnership(t *testing.T) {
	ts := newServer(t, router.Options{})
	ownerID := "user-1"

	dog := createDog(t, ts.URL, ownerID, map[string]any{"name": "Walker"})

	// la lista sale en orden de creación; un "timestamp" en el body se ignora
	for _, p := range []map[string]any{
		{"latitude": 10.0, "longitude": 20.0},
		{"latitude": 11.0, "longitude": 21.0, "timestamp": "1999-01-01T00:00:00Z"},
		{"latitude": 12.0, "longitude": 22.0},
	} {
		st, body := doReq(t, ts.URL, "POST", "/locations/"+dog.ID, ownerID, p)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add location, got %d body=%s", st, string(body))
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/locations/"+dog.ID, ownerID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list locations, got %d", st)
	}
	var locs []locationJSON
	_ = json.Unmarshal(body, &locs)
	if len(locs) != 3 {
		t.Fatalf("expected 3 locations, got %d", len(locs))
	}
	if locs[0].Latitude != 10 || locs[1].Latitude != 11 || locs[2].Latitude != 12 {
		t.Fatalf("locations not in creation order: %+v", locs)
	}
	if locs[1].Timestamp.Year() == 1999 {
		t.Fatalf("client timestamp must not be stored: %+v", locs[1])
	}

	// trail
	{
		st, body := doReq(t, ts.URL, "GET", "/locations/"+dog.ID+"/trail", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 trail, got %d", st)
		}
		var tr struct {
			Polyline string        `json:"polyline"`
			Points   int           `json:"points"`
			First    *locationJSON `json:"first"`
		}
		_ = json.Unmarshal(body, &tr)
		if tr.Points != 3 || tr.Polyline == "" || tr.First == nil || tr.First.Latitude != 10 {
			t.Fatalf("unexpected trail: %s", string(body))
		}
	}

	// coordenadas fuera de rango
	{
		st, _ := doReq(t, ts.URL, "POST", "/locations/"+dog.ID, ownerID, map[string]any{"latitude": 91.0, "longitude": 0.0})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for latitude 91, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/locations/"+dog.ID, ownerID, map[string]any{"latitude": 0.0})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for missing longitude, got %d", st)
		}
	}

	// perro ajeno => 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/locations/"+dog.ID, "user-2", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 list by stranger, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/locations/"+dog.ID, "user-2", map[string]any{"latitude": 1.0, "longitude": 1.0})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 add by stranger, got %d", st)
		}
	}

	// borrar el perro se lleva sus avistamientos
	if st, _ := doReq(t, ts.URL, "DELETE", "/api/dogs/"+dog.ID, ownerID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/locations/"+dog.ID, ownerID, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 locations after delete, got %d", st)
	}
}

func TestHTTP_Unauthorized(t *testing.T) {
	ts := newServer(t, router.Options{})

	for _, p := range []struct{ method, path string }{
		{"GET", "/api/dogs"},
		{"POST", "/api/dogs"},
		{"GET", "/api/dogs/count"},
		{"GET", "/locations/some-dog"},
	} {
		st, body := doReq(t, ts.URL, p.method, p.path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 %s %s, got %d", p.method, p.path, st)
		}
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		if e.Error == "" {
			t.Fatalf("expected error body, got %s", string(body))
		}
	}
}

func TestHTTP_Breeds_PublicAndFailure(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "GET", "/api/breeds", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 breeds without auth, got %d body=%s", st, string(body))
	}
	var rows []map[string]string
	_ = json.Unmarshal(body, &rows)
	if len(rows) == 0 || rows[0]["Name"] == "" {
		t.Fatalf("expected breed rows, got %s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/api/breeds/names", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 breed names, got %d", st)
	}
	var names []string
	_ = json.Unmarshal(body, &names)
	if len(names) != len(rows) {
		t.Fatalf("expected %d names, got %d", len(rows), len(names))
	}

	broken := newServer(t, router.Options{BreedsCSVPath: "testdata/does-not-exist.csv"})
	st, body = doReq(t, broken.URL, "GET", "/api/breeds", "", nil)
	if st != http.StatusInternalServerError {
		t.Fatalf("expected 500 with missing csv, got %d", st)
	}
	var e struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &e)
	if e.Error != "Failed to load breeds" {
		t.Fatalf("unexpected error body: %s", string(body))
	}
}

func TestHTTP_HealthAndRequestID(t *testing.T) {
	ts := newServer(t, router.Options{})

	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %q", res.StatusCode, string(body))
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

type dogJSON struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Gender     string  `json:"gender"`
	Color      string  `json:"color"`
	Nickname   string  `json:"nickname"`
	Owner      string  `json:"owner"`
	Breed      string  `json:"breed"`
	Size       string  `json:"size"`
	IsFriendly bool    `json:"isFriendly"`
	IsFavorite bool    `json:"isFavorite"`
	IsOwner    bool    `json:"isOwner"`
	Image      *string `json:"image"`
	UserID     string  `json:"user_id"`
}

type locationJSON struct {
	ID        string    `json:"id"`
	DogID     string    `json:"dog_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

func createDog(t *testing.T, baseURL, userID string, payload map[string]any) dogJSON {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/dogs", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
	}

	var resp dogJSON
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create dog: missing id body=%s", string(body))
	}
	return resp
}

func countDogs(t *testing.T, baseURL, userID string) int {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/api/dogs/count", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 count, got %d body=%s", st, string(body))
	}
	var resp struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Count
}

func decodeDogs(t *testing.T, body []byte) []dogJSON {
	t.Helper()
	var out []dogJSON
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode dogs: %v body=%s", err, string(body))
	}
	return out
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

// doMultipart arma un form como el del browser (FormData); image es opcional.
func doMultipart(t *testing.T, baseURL, method, path, debugUserID string, fields map[string]string, image []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "dog.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write(image)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
