package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

var (
	invoiceRe   = regexp.MustCompile(`^[A-Za-z]*-?\d{3,10}$`)
	hsCodeRe    = regexp.MustCompile(`^\d{6,10}$`)
	containerRe = regexp.MustCompile(`^[A-Za-z]{4}\d{7}$`)
	weightRe    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kg|lbs|tons|tonnes)\b`)
	digitRe     = regexp.MustCompile(`\d`)
	dateRe      = regexp.MustCompile(`^\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}$`)
)

const maxWeightValue = 100000

// Check applies every rule to the extracted data and reports blocking
// errors and non-blocking warnings. All rules are evaluated; there is no
// short-circuit, and the input is never mutated. Running Check twice on
// the same data yields the same result.
func Check(data docmodel.ExtractedData) docmodel.ValidationResult {
	result := docmodel.ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	requireField(&result, "supplier", data.Supplier)
	requireField(&result, "buyer", data.Buyer)
	requireField(&result, "product", data.Product)

	if v := strings.TrimSpace(data.InvoiceNo); v != "" && !invoiceRe.MatchString(v) {
		warn(&result, "invoice_no %q does not match the expected invoice format", v)
	}
	if v := stripSpace(data.HSCode); v != "" && !hsCodeRe.MatchString(v) {
		warn(&result, "hs_code %q must be 6-10 digits", v)
	}
	if v := stripSpace(data.ContainerNo); v != "" && !containerRe.MatchString(v) {
		warn(&result, "container_no %q must be 4 letters followed by 7 digits", v)
	}
	checkWeight(&result, data.Weight)
	if v := strings.TrimSpace(data.Quantity); v != "" && !digitRe.MatchString(v) {
		warn(&result, "quantity %q contains no numeric amount", v)
	}
	if v := strings.TrimSpace(data.InspectionDate); v != "" && !dateRe.MatchString(v) {
		warn(&result, "inspection_date %q is not a recognizable date", v)
	}

	result.Passed = len(result.Errors) == 0
	return result
}

func checkWeight(result *docmodel.ValidationResult, raw string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	m := weightRe.FindStringSubmatch(v)
	if m == nil {
		warn(result, "weight %q needs a numeric value with a unit (kg/lbs/tons/tonnes)", v)
		return
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 || value > maxWeightValue {
		warn(result, "weight %q is outside the accepted range (0, %d]", v, maxWeightValue)
	}
}

func requireField(result *docmodel.ValidationResult, name, value string) {
	if strings.TrimSpace(value) == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("required field %s is missing", name))
	}
}

func warn(result *docmodel.ValidationResult, format string, args ...any) {
	result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
