package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"billmaker/metrics"
	"billmaker/services"
)

// HandleBillExportPDF downloads the bill as {TYPE}_{DDMMYY}.pdf.
// Route: GET /api/bill/export/pdf
func HandleBillExportPDF(ws *Workspace) func(*core.RequestEvent) error {
	return handleBillExport(ws, ws.pdf, "pdf")
}

// HandleBillExportExcel downloads the bill as {TYPE}_{DDMMYY}.xlsx.
// Route: GET /api/bill/export/excel
func HandleBillExportExcel(ws *Workspace) func(*core.RequestEvent) error {
	return handleBillExport(ws, ws.excel, "excel")
}

func handleBillExport(ws *Workspace, renderer services.DocumentRenderer, format string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.BuildBillExportData(ws.snapshot(), ws.letterhead)
		if errors.Is(err, services.ErrEmptyBill) {
			return ErrorToast(e, http.StatusBadRequest, "Add at least one entry before downloading")
		}
		if err != nil {
			slog.Error("export: could not prepare bill", "format", format, "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not prepare the bill")
		}

		out, err := renderer.Render(data)
		if err != nil {
			slog.Error("export: render failed", "format", format, "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate the "+format+" file")
		}
		metrics.DocumentsRendered.WithLabelValues(format).Inc()

		filename := data.FileName(renderer.Extension())
		e.Response.Header().Set("Content-Type", renderer.ContentType())
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(out)
		return err
	}
}
