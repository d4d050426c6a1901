package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultStorageKey is the store key holding the JSON-encoded directory.
const DefaultStorageKey = "employeeDirectory"

// maxSearchResults caps Search output.
const maxSearchResults = 10

// DirectoryHeader is the column order of the directory CSV format.
var DirectoryHeader = []string{"Name", "CardNo", "Designation", "DefaultTaka"}

// Employee is a known worker, keyed by card number.
type Employee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CardNo      string `json:"cardNo"`
	Designation string `json:"designation"`
	DefaultRate int    `json:"defaultTaka"`
}

// Directory is the employee list, written through to a KeyValueStore after
// every mutation.
type Directory struct {
	mu        sync.Mutex
	store     KeyValueStore
	key       string
	employees []Employee
}

// NewDirectory returns an empty directory bound to store under key. Call
// LoadFromStore to read existing records.
func NewDirectory(store KeyValueStore, key string) *Directory {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Directory{store: store, key: key}
}

// LoadFromStore replaces the in-memory records with the stored ones and
// returns how many were loaded. Missing or unreadable data yields an empty
// directory.
func (d *Directory) LoadFromStore() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.employees = nil

	raw, ok, err := d.store.Get(d.key)
	if err != nil {
		slog.Warn("directory: could not read store, starting empty", "key", d.key, "error", err)
		return 0
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return 0
	}

	var loaded []Employee
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		slog.Warn("directory: stored data is corrupt, starting empty", "key", d.key, "error", err)
		return 0
	}

	d.employees = loaded
	return len(d.employees)
}

// SaveToStore writes the current records to the store.
func (d *Directory) SaveToStore() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saveLocked()
}

func (d *Directory) saveLocked() error {
	list := d.employees
	if list == nil {
		list = []Employee{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return d.store.Set(d.key, string(data))
}

func (d *Directory) persistLocked() {
	if err := d.saveLocked(); err != nil {
		slog.Error("directory: could not write store", "key", d.key, "error", err)
	}
}

func (d *Directory) indexLocked(cardNo string) int {
	for i := range d.employees {
		if d.employees[i].CardNo == cardNo {
			return i
		}
	}
	return -1
}

// Upsert overwrites the record with the same trimmed card number, or appends
// a new record with a fresh ID. It returns the stored record.
func (d *Directory) Upsert(e Employee) Employee {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := d.upsertLocked(e)
	d.persistLocked()
	return stored
}

func (d *Directory) upsertLocked(e Employee) Employee {
	e.CardNo = strings.TrimSpace(e.CardNo)
	e.Name = strings.TrimSpace(e.Name)
	e.Designation = strings.TrimSpace(e.Designation)

	if i := d.indexLocked(e.CardNo); i >= 0 {
		d.employees[i].Name = e.Name
		d.employees[i].Designation = e.Designation
		d.employees[i].DefaultRate = e.DefaultRate
		return d.employees[i]
	}

	e.ID = uuid.NewString()
	d.employees = append(d.employees, e)
	return e
}

// Lookup finds a record by trimmed card number.
func (d *Directory) Lookup(cardNo string) (Employee, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexLocked(strings.TrimSpace(cardNo)); i >= 0 {
		return d.employees[i], true
	}
	return Employee{}, false
}

// Search matches query case-insensitively against names and as a substring
// of card numbers. Exact name or card matches come first; at most 10 results
// are returned.
func (d *Directory) Search(query string) []Employee {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	lower := strings.ToLower(q)

	d.mu.Lock()
	var matches []Employee
	for _, e := range d.employees {
		if strings.Contains(strings.ToLower(e.Name), lower) || strings.Contains(e.CardNo, q) {
			matches = append(matches, e)
		}
	}
	d.mu.Unlock()

	isExact := func(e Employee) bool {
		return strings.ToLower(e.Name) == lower || e.CardNo == q
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return isExact(matches[i]) && !isExact(matches[j])
	})

	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}
	return matches
}

// All returns a copy of the records in directory order.
func (d *Directory) All() []Employee {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Employee, len(d.employees))
	copy(out, d.employees)
	return out
}

func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.employees)
}

// Clear removes every record.
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees = nil
	d.persistLocked()
}

// ExportCSV renders the directory as Name,CardNo,Designation,DefaultTaka
// rows. Fields containing commas or quotes are quoted.
func (d *Directory) ExportCSV() string {
	employees := d.All()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(DirectoryHeader)
	for _, e := range employees {
		_ = w.Write([]string{e.Name, e.CardNo, e.Designation, strconv.Itoa(e.DefaultRate)})
	}
	w.Flush()
	return buf.String()
}

// ImportMerge parses directory CSV text and merges it by card number,
// returning the resulting record count.
func (d *Directory) ImportMerge(text string) int {
	return d.ImportMergeRows(parseDirectoryCSV(text))
}

// ImportMergeRows merges already split rows. A leading header row, rows with
// fewer than three cells and rows without a card number are skipped.
// Imported rows overwrite existing records with the same card number.
func (d *Directory) ImportMergeRows(rows [][]string) int {
	parsed := parseDirectoryRows(rows)

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range parsed {
		d.upsertLocked(e)
	}
	d.persistLocked()
	return len(d.employees)
}
