package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billmaker/services"
	"billmaker/testhelpers"
)

var testToday = time.Date(2026, time.January, 14, 9, 30, 0, 0, time.Local)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestWorkspace returns a workspace whose directory persists to the test
// app's app_storage collection.
func newTestWorkspace(t *testing.T) (*pocketbase.PocketBase, *Workspace) {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	dir := services.NewDirectory(services.NewRecordStore(app), services.DefaultStorageKey)
	ws := NewWorkspace(dir, WorkspaceOptions{
		Letterhead: services.Letterhead{Name: "SAMPLE TEXTILE MILLS LTD.", Address: "Gazipur, Dhaka"},
		NightRate:  services.DefaultNightRate,
		Today:      func() time.Time { return testToday },
	})
	return app, ws
}

type handlerFunc = func(*core.RequestEvent) error

func serve(t *testing.T, app *pocketbase.PocketBase, h handlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := h(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func addEntry(t *testing.T, app *pocketbase.PocketBase, ws *Workspace, name, cardNo, designation string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, app, HandleAddItem(ws), formRequest(http.MethodPost, "/api/bill/items", url.Values{
		"name":        {name},
		"card_no":     {cardNo},
		"designation": {designation},
	}))
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
