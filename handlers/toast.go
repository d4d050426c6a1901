package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// Toast levels understood by the page script.
const (
	ToastSuccess = "success"
	ToastWarning = "warning"
	ToastError   = "error"
	ToastInfo    = "info"
)

// SetToast adds a showToast event to the HX-Trigger response header, keeping
// any events already present, and mirrors it in a short-lived flash cookie
// for plain (non-HTMX) navigations.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			slog.Warn("toast: replacing HX-Trigger that is not a JSON object", "error", err)
			events = map[string]any{}
		}
	}
	events["showToast"] = payload

	data, err := json.Marshal(events)
	if err != nil {
		slog.Error("toast: could not encode HX-Trigger", "error", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(payload)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // read by the page script
		SameSite: http.SameSiteLaxMode,
	})
}

// ErrorToast writes message with statusCode and fires an error toast. HX-Reswap
// is set to none so HTMX leaves the page untouched.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, ToastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
