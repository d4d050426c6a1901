package collections

import (
	"fmt"
	"log/slog"

	"github.com/pocketbase/pocketbase/core"
)

// StorageCollection holds key/value pairs; the employee directory lives
// under a single key as a JSON array.
const StorageCollection = "app_storage"

// maxStorageValue bounds a single stored value (the whole directory).
const maxStorageValue = 8 << 20

// Setup programmatically creates/ensures the app_storage collection exists.
func Setup(app core.App) error {
	_, err := ensureCollection(app, StorageCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true, Max: 255})
		c.Fields.Add(&core.TextField{Name: "value", Required: false, Max: maxStorageValue})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_app_storage_key", true, "key", "")
	})
	return err
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		slog.Debug("collections: already exists, skipping creation", "collection", name)
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	slog.Info("collections: created", "collection", name, "id", collection.Id)
	return collection, nil
}
