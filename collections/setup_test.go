package collections_test

import (
	"testing"

	"billmaker/collections"
	"billmaker/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

func TestSetup_StorageCollectionExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, err := app.FindCollectionByNameOrId(collections.StorageCollection)
	if err != nil {
		t.Fatalf("collection %q not found after Setup(): %v", collections.StorageCollection, err)
	}
	if col.Name != collections.StorageCollection {
		t.Errorf("expected collection name %q, got %q", collections.StorageCollection, col.Name)
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	col, _ := app.FindCollectionByNameOrId(collections.StorageCollection)
	firstID := col.Id

	if err := collections.Setup(app); err != nil {
		t.Fatalf("second Setup() error: %v", err)
	}

	col, err := app.FindCollectionByNameOrId(collections.StorageCollection)
	if err != nil {
		t.Fatalf("collection missing after second Setup(): %v", err)
	}
	if col.Id != firstID {
		t.Errorf("collection id changed after second Setup(): %s -> %s", firstID, col.Id)
	}
}

func TestSetup_StorageFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.StorageCollection)

	for _, f := range []string{"key", "value", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("%s: missing field %q", collections.StorageCollection, f)
		}
	}

	keyField, ok := col.Fields.GetByName("key").(*core.TextField)
	if !ok {
		t.Fatalf("key field is not a TextField")
	}
	if !keyField.Required {
		t.Error("key field should be required")
	}

	valueField, ok := col.Fields.GetByName("value").(*core.TextField)
	if !ok {
		t.Fatalf("value field is not a TextField")
	}
	if valueField.Max < 1<<20 {
		t.Errorf("value field max = %d, want at least 1MiB", valueField.Max)
	}
}

func TestSetup_KeyIsUnique(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.StorageCollection)

	first := core.NewRecord(col)
	first.Set("key", "dup")
	first.Set("value", "a")
	if err := app.Save(first); err != nil {
		t.Fatalf("failed to save first record: %v", err)
	}

	second := core.NewRecord(col)
	second.Set("key", "dup")
	second.Set("value", "b")
	if err := app.Save(second); err == nil {
		t.Error("expected unique index to reject a duplicate key")
	}
}
