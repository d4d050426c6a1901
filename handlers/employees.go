package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"billmaker/metrics"
	"billmaker/services"
	"billmaker/templates"
)

const maxImportBytes = 10 << 20

// HandleEmployeeSearch renders autocomplete suggestions for q.
// Route: GET /api/employees/search?q=
func HandleEmployeeSearch(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		matches := ws.Directory().Search(e.Request.URL.Query().Get("q"))

		items := make([]templates.EmployeeSuggestion, len(matches))
		for i, m := range matches {
			items[i] = templates.EmployeeSuggestion{
				Name:        m.Name,
				CardNo:      m.CardNo,
				Designation: m.Designation,
			}
		}
		return templates.EmployeeSuggestions(items).Render(e.Request.Context(), e.Response)
	}
}

// HandleDesignationLookup returns the designation the entry form should
// switch to for card_no, and the known name if any.
// Route: GET /api/employees/designation?card_no=&current=
func HandleDesignationLookup(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()
		designation, found := services.ResolveDesignation(q.Get("card_no"), q.Get("current"), ws.Directory())

		name := ""
		if found != nil {
			name = found.Name
		}
		return e.JSON(http.StatusOK, map[string]string{
			"designation": designation,
			"name":        name,
		})
	}
}

// HandleEmployeeExport downloads the directory as employees.csv.
// Route: GET /api/employees/export
func HandleEmployeeExport(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		csvText := ws.Directory().ExportCSV()

		e.Response.Header().Set("Content-Type", "text/csv; charset=utf-8")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="employees.csv"`)
		e.Response.WriteHeader(http.StatusOK)
		_, err := io.WriteString(e.Response, csvText)
		return err
	}
}

// HandleEmployeeImport merges an uploaded .csv or .xlsx directory file and
// reports the resulting directory size.
// Route: POST /api/employees/import
func HandleEmployeeImport(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxImportBytes); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		var count int
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".csv":
			data, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
			if err != nil {
				slog.Warn("employee_import: could not read upload", "file", header.Filename, "error", err)
				return ErrorToast(e, http.StatusBadRequest, "Could not read the uploaded file")
			}
			count = ws.Directory().ImportMerge(string(data))
		case ".xlsx":
			rows, err := services.ParseDirectoryXLSX(file)
			if err != nil {
				slog.Warn("employee_import: invalid workbook", "file", header.Filename, "error", err)
				return ErrorToast(e, http.StatusBadRequest, "Could not read the Excel file")
			}
			count = ws.Directory().ImportMergeRows(rows)
		default:
			return ErrorToast(e, http.StatusBadRequest, "Only .csv and .xlsx files are supported")
		}

		if err := ws.Directory().SaveToStore(); err != nil {
			slog.Error("employee_import: could not persist directory", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Imported, but the directory could not be saved")
		}

		metrics.DirectoryImports.Inc()
		slog.Info("employee_import: merged", "file", header.Filename, "employees", count)
		SetToast(e, ToastSuccess, fmt.Sprintf("Directory now has %d employees", count))
		return e.JSON(http.StatusOK, map[string]int{"count": count})
	}
}

// HandleEmployeeClear empties the directory.
// Route: DELETE /api/employees
func HandleEmployeeClear(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws.Directory().Clear()
		if err := ws.Directory().SaveToStore(); err != nil {
			slog.Error("employee_clear: could not persist directory", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save the emptied directory")
		}

		slog.Info("employee_clear: directory emptied")
		SetToast(e, ToastInfo, "Employee directory cleared")
		return e.JSON(http.StatusOK, map[string]int{"count": 0})
	}
}
