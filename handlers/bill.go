package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"billmaker/metrics"
	"billmaker/services"
	"billmaker/templates"
)

// billStateResponse is the JSON view of the current bill.
type billStateResponse struct {
	BillType      services.BillType   `json:"billType"`
	Date          string              `json:"date"`
	NightRate     int                 `json:"nightRate"`
	Items         []services.LineItem `json:"items"`
	Total         int                 `json:"total"`
	AmountInWords string              `json:"amountInWords"`
}

// HandleBillPage renders the bill maker. HTMX requests get only the bill
// section.
// Route: GET /
func HandleBillPage(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			section := ws.view()
			component = templates.BillSection(section)
		} else {
			component = templates.BillPage(ws.pageData())
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleBillState returns the current bill as JSON.
// Route: GET /api/bill
func HandleBillState(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s := ws.snapshot()
		items := s.Items
		if items == nil {
			items = []services.LineItem{}
		}
		return e.JSON(http.StatusOK, billStateResponse{
			BillType:      s.BillType,
			Date:          s.Date.Format(formDateLayout),
			NightRate:     s.NightRate,
			Items:         items,
			Total:         s.Total,
			AmountInWords: services.AmountToWords(s.Total),
		})
	}
}

// HandleAddItem adds an entry from the entry form and re-renders the bill.
// Entries without a name or card number leave the bill unchanged.
// Route: POST /api/bill/items
func HandleAddItem(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		var (
			added    services.LineItem
			ok       bool
			billType services.BillType
		)
		section := ws.apply(func(b *services.Bill) {
			added, ok = b.AddItem(
				e.Request.FormValue("name"),
				e.Request.FormValue("card_no"),
				e.Request.FormValue("designation"),
				e.Request.FormValue("remarks"),
			)
			billType = b.BillType()
		})

		if !ok {
			metrics.EntriesRejected.Inc()
			SetToast(e, ToastWarning, "Name and card number are required")
		} else {
			metrics.EntriesAdded.WithLabelValues(string(billType)).Inc()
			slog.Debug("bill: entry added", "card_no", added.CardNo, "designation", added.Designation, "amount", added.Amount)
		}

		return templates.BillSection(section).Render(e.Request.Context(), e.Response)
	}
}

// HandleRemoveItem deletes one entry.
// Route: DELETE /api/bill/items/{id}
func HandleRemoveItem(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing entry ID")
		}

		section := ws.apply(func(b *services.Bill) {
			b.RemoveItem(id)
		})
		return templates.BillSection(section).Render(e.Request.Context(), e.Response)
	}
}

// HandleClearItems removes every entry.
// Route: DELETE /api/bill/items
func HandleClearItems(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		section := ws.apply(func(b *services.Bill) {
			b.ClearAll()
		})
		SetToast(e, ToastInfo, "Bill cleared")
		return templates.BillSection(section).Render(e.Request.Context(), e.Response)
	}
}

// HandleBillSettings applies bill type, night rate and date from the settings
// form. Omitted fields are left alone; nothing is applied if any field is
// invalid.
// Route: POST /api/bill/settings
func HandleBillSettings(ws *Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		var (
			billType  *services.BillType
			nightRate *int
			date      *time.Time
		)

		if v := strings.TrimSpace(e.Request.FormValue("bill_type")); v != "" {
			t, err := services.ParseBillType(v)
			if err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Unknown bill type")
			}
			billType = &t
		}
		if v := strings.TrimSpace(e.Request.FormValue("night_rate")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Night rate must be a non-negative whole number")
			}
			nightRate = &n
		}
		if v := strings.TrimSpace(e.Request.FormValue("date")); v != "" {
			d, err := time.ParseInLocation(formDateLayout, v, time.Local)
			if err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Date must be YYYY-MM-DD")
			}
			date = &d
		}

		section, err := ws.update(func(b *services.Bill) error {
			if nightRate != nil {
				if err := b.SetNightRate(*nightRate); err != nil {
					return err
				}
			}
			if billType != nil {
				if err := b.SetBillType(*billType); err != nil {
					return err
				}
			}
			if date != nil {
				b.SetDate(*date)
			}
			return nil
		})
		if err != nil {
			slog.Warn("bill: settings rejected", "error", err)
			status := http.StatusInternalServerError
			if errors.Is(err, services.ErrNegativeRate) || errors.Is(err, services.ErrUnknownBillType) {
				status = http.StatusBadRequest
			}
			return ErrorToast(e, status, "Could not update bill settings")
		}

		return templates.BillSection(section).Render(e.Request.Context(), e.Response)
	}
}
