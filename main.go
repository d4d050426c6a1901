package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"billmaker/collections"
	"billmaker/config"
	"billmaker/handlers"
	"billmaker/logging"
	"billmaker/services"
)

func main() {
	logging.Setup()

	app := pocketbase.New()

	cfg := config.Default()
	if err := cfg.FromEnv(); err != nil {
		slog.Warn("config: ignoring invalid environment values", "error", err)
	}
	cfg.BindFlags(app.RootCmd.PersistentFlags())

	var ws *handlers.Workspace

	// Create collections, seed the directory and load it on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := collections.Setup(app); err != nil {
			return err
		}
		if cfg.Seed {
			if err := collections.Seed(app, cfg.StorageKey); err != nil {
				slog.Warn("seed: sample employees not written", "error", err)
			}
		}

		dir := services.NewDirectory(services.NewRecordStore(app), cfg.StorageKey)
		slog.Info("directory: loaded", "employees", dir.LoadFromStore(), "key", cfg.StorageKey)

		typeface := services.LoadTypeface(context.Background(), &http.Client{}, cfg.FontSource, cfg.FontTimeout)

		ws = handlers.NewWorkspace(dir, handlers.WorkspaceOptions{
			Letterhead: cfg.Letterhead(),
			NightRate:  cfg.NightRate,
			Typeface:   typeface,
		})
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.RequestLogger())

		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))
		se.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))

		se.Router.GET("/{$}", handlers.HandleBillPage(ws))

		// ── Bill ─────────────────────────────────────────────────
		se.Router.GET("/api/bill", handlers.HandleBillState(ws))
		se.Router.POST("/api/bill/items", handlers.HandleAddItem(ws))
		se.Router.DELETE("/api/bill/items", handlers.HandleClearItems(ws))
		se.Router.DELETE("/api/bill/items/{id}", handlers.HandleRemoveItem(ws))
		se.Router.POST("/api/bill/settings", handlers.HandleBillSettings(ws))
		se.Router.GET("/api/bill/export/pdf", handlers.HandleBillExportPDF(ws))
		se.Router.GET("/api/bill/export/excel", handlers.HandleBillExportExcel(ws))

		// ── Employee directory ───────────────────────────────────
		se.Router.GET("/api/employees/search", handlers.HandleEmployeeSearch(ws))
		se.Router.GET("/api/employees/designation", handlers.HandleDesignationLookup(ws))
		se.Router.GET("/api/employees/export", handlers.HandleEmployeeExport(ws))
		se.Router.POST("/api/employees/import", handlers.HandleEmployeeImport(ws))
		se.Router.DELETE("/api/employees", handlers.HandleEmployeeClear(ws))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		slog.Error("app: exited", "error", err)
		os.Exit(1)
	}
}
