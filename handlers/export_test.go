package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestHandleBillExportPDF(t *testing.T) {
	app, ws := newTestWorkspace(t)
	addEntry(t, app, ws, "John Doe", "101", "S/O")

	rec := serve(t, app, HandleBillExportPDF(ws), httptest.NewRequest(http.MethodGet, "/api/bill/export/pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="TIFFIN_BILL_140126.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestHandleBillExportExcel(t *testing.T) {
	app, ws := newTestWorkspace(t)
	addEntry(t, app, ws, "John Doe", "101", "S/O")
	addEntry(t, app, ws, "Jamal", "205", "LABOUR")

	rec := serve(t, app, HandleBillExportExcel(ws), httptest.NewRequest(http.MethodGet, "/api/bill/export/excel", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="TIFFIN_BILL_140126.xlsx"` {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("body is not a workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if v, _ := f.GetCellValue(sheet, "B7"); v != "John Doe" {
		t.Errorf("B7 = %q, want John Doe", v)
	}
	if v, _ := f.GetCellValue(sheet, "E9"); v != "100" {
		t.Errorf("E9 (total) = %q, want 100", v)
	}
}

func TestHandleBillExport_EmptyBill(t *testing.T) {
	tests := []struct {
		name    string
		handler func(*Workspace) handlerFunc
	}{
		{"pdf", HandleBillExportPDF},
		{"excel", HandleBillExportExcel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, ws := newTestWorkspace(t)
			rec := serve(t, app, tt.handler(ws), httptest.NewRequest(http.MethodGet, "/api/bill/export/"+tt.name, nil))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if toast := decodeToast(t, rec); toast["type"] != ToastError {
				t.Errorf("toast type = %q, want error", toast["type"])
			}
			if rec.Header().Get("Content-Disposition") != "" {
				t.Error("empty bill must not produce a download")
			}
		})
	}
}
