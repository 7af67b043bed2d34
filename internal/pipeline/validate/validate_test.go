package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

func fullData() docmodel.ExtractedData {
	return docmodel.ExtractedData{
		Supplier:       "Acme Co",
		Buyer:          "Globex",
		Product:        "Lighting fixtures",
		InvoiceNo:      "INV-2024889",
		ContainerNo:    "CNU2256987",
		HSCode:         "940540",
		Quantity:       "1200 cartons",
		Weight:         "18500 kg",
		InspectionDate: "2024-11-02",
	}
}

func TestCheck_AllFieldsValid(t *testing.T) {
	result := Check(fullData())

	if !result.Passed {
		t.Errorf("expected passed=true, errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestCheck_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*docmodel.ExtractedData)
	}{
		{"missing supplier", func(d *docmodel.ExtractedData) { d.Supplier = "" }},
		{"missing buyer", func(d *docmodel.ExtractedData) { d.Buyer = "   " }},
		{"missing product", func(d *docmodel.ExtractedData) { d.Product = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := fullData()
			tt.mutate(&data)

			result := Check(data)
			if result.Passed {
				t.Error("expected passed=false when a required field is blank")
			}
			if len(result.Errors) != 1 {
				t.Errorf("expected 1 error, got %v", result.Errors)
			}
		})
	}
}

func TestCheck_ContainerNumber(t *testing.T) {
	data := fullData()
	data.ContainerNo = "CNU2256987"
	if result := Check(data); len(result.Warnings) != 0 {
		t.Errorf("CNU2256987 should be accepted, got warnings %v", result.Warnings)
	}

	data.ContainerNo = "CNU22569"
	result := Check(data)
	if len(result.Warnings) != 1 {
		t.Fatalf("CNU22569 should warn once, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "container_no") {
		t.Errorf("warning should name the field: %q", result.Warnings[0])
	}
	if !result.Passed {
		t.Error("warnings must not affect passed")
	}
}

func TestCheck_FormatWarnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*docmodel.ExtractedData)
		field  string
	}{
		{"invoice without digits", func(d *docmodel.ExtractedData) { d.InvoiceNo = "INVOICE" }, "invoice_no"},
		{"hs code too short", func(d *docmodel.ExtractedData) { d.HSCode = "9405" }, "hs_code"},
		{"hs code with letters", func(d *docmodel.ExtractedData) { d.HSCode = "94O540" }, "hs_code"},
		{"weight without unit", func(d *docmodel.ExtractedData) { d.Weight = "18500" }, "weight"},
		{"weight above limit", func(d *docmodel.ExtractedData) { d.Weight = "250000 kg" }, "weight"},
		{"quantity without digits", func(d *docmodel.ExtractedData) { d.Quantity = "many" }, "quantity"},
		{"date freeform", func(d *docmodel.ExtractedData) { d.InspectionDate = "last Tuesday" }, "inspection_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := fullData()
			tt.mutate(&data)

			result := Check(data)
			if !result.Passed {
				t.Errorf("format issues must stay warnings, errors: %v", result.Errors)
			}
			if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], tt.field) {
				t.Errorf("expected one warning naming %s, got %v", tt.field, result.Warnings)
			}
		})
	}
}

func TestCheck_HSCodeSpacesIgnored(t *testing.T) {
	data := fullData()
	data.HSCode = "94 05 40"

	if result := Check(data); len(result.Warnings) != 0 {
		t.Errorf("whitespace inside hs_code should be tolerated, got %v", result.Warnings)
	}
}

func TestCheck_AbsentOptionalFieldsStaySilent(t *testing.T) {
	data := docmodel.ExtractedData{Supplier: "Acme Co", Buyer: "Globex", Product: "Widgets"}

	result := Check(data)
	if !result.Passed || len(result.Warnings) != 0 {
		t.Errorf("absent optional fields must not warn: %+v", result)
	}
}

func TestCheck_Idempotent(t *testing.T) {
	data := fullData()
	data.ContainerNo = "BAD"
	data.Supplier = ""

	first := Check(data)
	second := Check(data)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over identical data diverged:\n%+v\n%+v", first, second)
	}
}
