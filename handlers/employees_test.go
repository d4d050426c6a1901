package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"billmaker/services"
	"billmaker/testhelpers"
)

func seedDirectory(ws *Workspace) {
	ws.Directory().Upsert(services.Employee{Name: "Abdul Karim", CardNo: "418", Designation: services.DesignationExecutive, DefaultRate: 50})
	ws.Directory().Upsert(services.Employee{Name: "Rahim Uddin", CardNo: "101", Designation: services.DesignationSO, DefaultRate: 50})
	ws.Directory().Upsert(services.Employee{Name: "Jamal Hossain", CardNo: "205", Designation: services.DesignationLabour, DefaultRate: 600})
}

func TestHandleEmployeeSearch(t *testing.T) {
	app, ws := newTestWorkspace(t)
	seedDirectory(ws)

	rec := serve(t, app, HandleEmployeeSearch(ws), httptest.NewRequest(http.MethodGet, "/api/employees/search?q=rahim", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Rahim Uddin", `data-card-no="101"`)
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "Jamal Hossain")

	rec = serve(t, app, HandleEmployeeSearch(ws), httptest.NewRequest(http.MethodGet, "/api/employees/search?q=", nil))
	if rec.Body.Len() != 0 {
		t.Errorf("empty query rendered %q", rec.Body.String())
	}
}

func TestHandleDesignationLookup(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantDesig string
		wantName  string
	}{
		{"executive card", "card_no=418&current=S%2FO", services.DesignationExecutive, "Abdul Karim"},
		{"labour card", "card_no=205&current=S%2FO", services.DesignationLabour, "Jamal Hossain"},
		{"leaving executive", "card_no=999&current=EXECUTIVE+DIRECTOR", services.DesignationSO, ""},
		{"unknown card keeps selection", "card_no=999&current=LABOUR", services.DesignationLabour, ""},
	}

	app, ws := newTestWorkspace(t)
	seedDirectory(ws)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, app, HandleDesignationLookup(ws), httptest.NewRequest(http.MethodGet, "/api/employees/designation?"+tt.query, nil))

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["designation"] != tt.wantDesig {
				t.Errorf("designation = %q, want %q", body["designation"], tt.wantDesig)
			}
			if body["name"] != tt.wantName {
				t.Errorf("name = %q, want %q", body["name"], tt.wantName)
			}
		})
	}
}

func TestHandleEmployeeExport(t *testing.T) {
	app, ws := newTestWorkspace(t)
	seedDirectory(ws)

	rec := serve(t, app, HandleEmployeeExport(ws), httptest.NewRequest(http.MethodGet, "/api/employees/export", nil))

	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="employees.csv"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "Name,CardNo,Designation,DefaultTaka\n") {
		t.Errorf("missing header: %q", body)
	}
	if !strings.Contains(body, "Jamal Hossain,205,LABOUR,600\n") {
		t.Errorf("missing record: %q", body)
	}
}

func TestHandleEmployeeImport_CSV(t *testing.T) {
	app, ws := newTestWorkspace(t)
	seedDirectory(ws)

	csvText := "Name,CardNo,Designation,DefaultTaka\nRahim U.,101,LABOUR,600\nNew Person,300,S/O,50\nbroken,row\n"
	rec := serve(t, app, HandleEmployeeImport(ws), uploadRequest(t, "/api/employees/import", "staff.csv", []byte(csvText)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["count"] != 4 {
		t.Errorf("count = %d, want 4", body["count"])
	}
	if emp, _ := ws.Directory().Lookup("101"); emp.Name != "Rahim U." {
		t.Errorf("101 not overwritten: %+v", emp)
	}
}

func TestHandleEmployeeImport_XLSX(t *testing.T) {
	app, ws := newTestWorkspace(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetSheetRow(sheet, "A1", &[]any{"Name", "CardNo", "Designation", "DefaultTaka"})
	f.SetSheetRow(sheet, "A2", &[]any{"Selina Akter", "102", "S/O", 50})
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	rec := serve(t, app, HandleEmployeeImport(ws), uploadRequest(t, "/api/employees/import", "staff.XLSX", buf.Bytes()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if _, ok := ws.Directory().Lookup("102"); !ok {
		t.Error("xlsx row not imported")
	}
}

func TestHandleEmployeeImport_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"unsupported extension", func(t *testing.T) *http.Request {
			return uploadRequest(t, "/api/employees/import", "staff.txt", []byte("Name,CardNo\n"))
		}},
		{"corrupt workbook", func(t *testing.T) *http.Request {
			return uploadRequest(t, "/api/employees/import", "staff.xlsx", []byte("not a zip"))
		}},
		{"no file", func(t *testing.T) *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/api/employees/import", strings.NewReader(""))
			req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
			return req
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, ws := newTestWorkspace(t)
			rec := serve(t, app, HandleEmployeeImport(ws), tt.req(t))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

type offlineStore struct{}

func (offlineStore) Get(string) (string, bool, error) { return "", false, errors.New("store offline") }
func (offlineStore) Set(string, string) error         { return errors.New("store offline") }

func TestHandleEmployeeImport_Persists(t *testing.T) {
	app, ws := newTestWorkspace(t)

	csvText := "Name,CardNo,Designation,DefaultTaka\nSelina Akter,102,S/O,50\n"
	rec := serve(t, app, HandleEmployeeImport(ws), uploadRequest(t, "/api/employees/import", "staff.csv", []byte(csvText)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	reloaded := services.NewDirectory(services.NewRecordStore(app), services.DefaultStorageKey)
	if n := reloaded.LoadFromStore(); n != 1 {
		t.Errorf("reloaded %d employees, want 1", n)
	}
}

func TestHandleEmployeeImport_StoreFailure(t *testing.T) {
	app, _ := newTestWorkspace(t)
	ws := NewWorkspace(services.NewDirectory(offlineStore{}, ""), WorkspaceOptions{Today: func() time.Time { return testToday }})

	csvText := "Name,CardNo,Designation,DefaultTaka\nSelina Akter,102,S/O,50\n"
	rec := serve(t, app, HandleEmployeeImport(ws), uploadRequest(t, "/api/employees/import", "staff.csv", []byte(csvText)))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if rec.Header().Get("HX-Trigger") == "" {
		t.Error("expected an error toast")
	}
}

func TestHandleEmployeeClear(t *testing.T) {
	app, ws := newTestWorkspace(t)
	seedDirectory(ws)

	rec := serve(t, app, HandleEmployeeClear(ws), httptest.NewRequest(http.MethodDelete, "/api/employees", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if n := ws.Directory().Len(); n != 0 {
		t.Errorf("directory has %d employees after clear", n)
	}

	reloaded := services.NewDirectory(services.NewRecordStore(app), services.DefaultStorageKey)
	if n := reloaded.LoadFromStore(); n != 0 {
		t.Errorf("reloaded %d employees, want 0", n)
	}
}
