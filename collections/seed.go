package collections

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
)

// seedEmployee mirrors the stored directory record shape.
type seedEmployee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CardNo      string `json:"cardNo"`
	Designation string `json:"designation"`
	DefaultRate int    `json:"defaultTaka"`
}

var seedEmployees = []seedEmployee{
	{Name: "Abdul Karim", CardNo: "418", Designation: "EXECUTIVE DIRECTOR", DefaultRate: 50},
	{Name: "Rahim Uddin", CardNo: "101", Designation: "S/O", DefaultRate: 50},
	{Name: "Selina Akter", CardNo: "102", Designation: "S/O", DefaultRate: 50},
	{Name: "Jamal Hossain", CardNo: "205", Designation: "LABOUR", DefaultRate: 50},
}

// Seed writes a small sample directory under key. It is safe to call on
// every startup because it returns early if the key already has a record.
func Seed(app core.App, key string) error {
	_, err := app.FindFirstRecordByData(StorageCollection, "key", key)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("seed: could not query %s: %w", StorageCollection, err)
	}

	col, err := app.FindCollectionByNameOrId(StorageCollection)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", StorageCollection, err)
	}

	employees := make([]seedEmployee, len(seedEmployees))
	for i, e := range seedEmployees {
		e.ID = uuid.NewString()
		employees[i] = e
	}
	data, err := json.Marshal(employees)
	if err != nil {
		return fmt.Errorf("seed: encode directory: %w", err)
	}

	record := core.NewRecord(col)
	record.Set("key", key)
	record.Set("value", string(data))
	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: save directory: %w", err)
	}

	slog.Info("seed: wrote sample employee directory", "key", key, "employees", len(employees))
	return nil
}
