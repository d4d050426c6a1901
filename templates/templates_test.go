package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func sampleSection() BillSectionData {
	return BillSectionData{
		BillType:    "HOLIDAY BILL",
		DisplayDate: "14/01/2026",
		Rows: []BillRow{
			{Serial: 1, ID: "a1", Name: "Abdul Karim", CardNo: "418", Designation: "EXECUTIVE DIRECTOR", Amount: 800},
			{Serial: 2, ID: "b2", Name: "Rahim Uddin", CardNo: "101", Designation: "S/O", Amount: 800, Remarks: "half day"},
		},
		Total:         1600,
		AmountInWords: "One Thousand Six Hundred Taka Only",
	}
}

func TestBillSection(t *testing.T) {
	html := render(t, BillSection(sampleSection()))

	for _, want := range []string{
		`id="bill-section"`,
		"HOLIDAY BILL",
		"Date: 14/01/2026",
		"Abdul Karim",
		"half day",
		"TOTAL=",
		"1600",
		"In words:  One Thousand Six Hundred Taka Only",
		`hx-delete="/api/bill/items/b2"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("BillSection output missing %q", want)
		}
	}

	if strings.Index(html, "Abdul Karim") > strings.Index(html, "Rahim Uddin") {
		t.Error("rows rendered out of order")
	}
}

func TestBillSection_Empty(t *testing.T) {
	html := render(t, BillSection(BillSectionData{BillType: "TIFFIN BILL", DisplayDate: "14/01/2026"}))

	if !strings.Contains(html, "No entries yet") {
		t.Error("expected empty-state message")
	}
	if strings.Contains(html, "<table") {
		t.Error("empty bill should not render a table")
	}
}

func TestBillSection_EscapesInput(t *testing.T) {
	data := sampleSection()
	data.Rows[0].Name = `<script>alert("x")</script>`

	html := render(t, BillSection(data))
	if strings.Contains(html, "<script>") {
		t.Error("employee name was not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped name in output")
	}
}

func TestEmployeeSuggestions(t *testing.T) {
	html := render(t, EmployeeSuggestions([]EmployeeSuggestion{
		{Name: "Rahim Uddin", CardNo: "101", Designation: "S/O"},
		{Name: "Jamal & Sons", CardNo: "205", Designation: "LABOUR"},
	}))

	for _, want := range []string{`data-card-no="101"`, "Rahim Uddin", "Jamal &amp; Sons", `data-designation="LABOUR"`} {
		if !strings.Contains(html, want) {
			t.Errorf("suggestions missing %q", want)
		}
	}
	if got := strings.Count(html, "<li"); got != 2 {
		t.Errorf("rendered %d suggestions, want 2", got)
	}
}

func TestBillPage_ShowsNightRateForNightBill(t *testing.T) {
	html := render(t, BillPage(BillPageData{
		BillTypes:    []string{"TIFFIN BILL", "NIGHT ENTERTAINMENT BILL"},
		NightRates:   []int{350, 250},
		SelectedType: "NIGHT ENTERTAINMENT BILL",
		NightRate:    250,
		ShowNight:    true,
		Section:      BillSectionData{BillType: "NIGHT ENTERTAINMENT BILL"},
	}))

	if strings.Contains(html, `class="night-rate" hidden`) {
		t.Error("night rate should be visible")
	}
	if !strings.Contains(html, `<option value="250" selected>250</option>`) {
		t.Error("configured night rate not selected")
	}
	if strings.Contains(html, `<option value="350" selected>`) {
		t.Error("only one night rate may be selected")
	}
}

func TestEmployeeSuggestions_Empty(t *testing.T) {
	if html := render(t, EmployeeSuggestions(nil)); html != "" {
		t.Errorf("expected no output, got %q", html)
	}
}

func TestBillPage(t *testing.T) {
	html := render(t, BillPage(BillPageData{
		OrgName:      "SAMPLE TEXTILE MILLS LTD.",
		OrgAddress:   "Gazipur, Dhaka",
		BillTypes:    []string{"TIFFIN BILL", "HOLIDAY BILL"},
		Designations: []string{"S/O", "LABOUR", "EXECUTIVE DIRECTOR"},
		NightRates:   []int{350, 250},
		SelectedType: "HOLIDAY BILL",
		NightRate:    350,
		Date:         "2026-01-14",
		Section:      sampleSection(),
	}))

	for _, want := range []string{
		"<!doctype html>",
		"SAMPLE TEXTILE MILLS LTD.",
		`<option value="HOLIDAY BILL" selected>`,
		`value="2026-01-14"`,
		`class="night-rate" hidden`,
		`id="bill-section"`,
		`hx-delete="/api/employees"`,
		"</html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("BillPage output missing %q", want)
		}
	}
}

func TestBillSection_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := BillSection(sampleSection()).Render(ctx, &buf); err == nil {
		t.Error("expected an error for a cancelled context")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes after cancellation", buf.Len())
	}
}
