// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billmaker/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// CreateStorageRecord stores value under key in the app_storage collection.
func CreateStorageRecord(t *testing.T, app *pocketbase.PocketBase, key, value string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.StorageCollection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collections.StorageCollection, err)
	}

	record := core.NewRecord(col)
	record.Set("key", key)
	record.Set("value", value)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save storage record: %v", err)
	}

	return record
}

// StorageValue returns the stored value for key, failing the test if absent.
func StorageValue(t *testing.T, app *pocketbase.PocketBase, key string) string {
	t.Helper()

	rec, err := app.FindFirstRecordByData(collections.StorageCollection, "key", key)
	if err != nil {
		t.Fatalf("storage key %q not found: %v", key, err)
	}
	return rec.GetString("value")
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
