package pricing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/models"
)

// Defaults used when a table row is missing or malformed.
const (
	tableDefaultBase       = 2000.0
	tableDefaultMultiplier = 1.0
	tableDefaultAgeMax     = 200
)

// RateRow is one normalized row of an uploaded rate sheet. Field keys are
// lower-cased column headers; values are whatever cells parsed as numbers.
type RateRow struct {
	AgeMin int                `json:"ageMin"`
	AgeMax int                `json:"ageMax"`
	Fields map[string]float64 `json:"fields"`
}

// Field returns a named value or the given default when absent.
func (r RateRow) Field(name string, def float64) float64 {
	if v, ok := r.Fields[strings.ToLower(name)]; ok {
		return v
	}
	return def
}

// RateTable is an ordered sequence of rate rows. Row order is the order the
// sheet supplied; lookups are first-match-wins.
type RateTable struct {
	Rows []RateRow `json:"rows"`
}

// RowFor selects the first row whose [ageMin, ageMax] range contains age.
// When no row matches, the first row is used.
func (t *RateTable) RowFor(age int) RateRow {
	for _, row := range t.Rows {
		if age >= row.AgeMin && age <= row.AgeMax {
			return row
		}
	}
	return t.Rows[0]
}

// QuoteWithTable computes a premium from an uploaded rate table:
// base × (siMultiplier × sumInsured/100000) × smokerFactor × planMultiplier,
// with the plan multiplier read from "<plan>Multiplier", falling back to a
// generic "planMultiplier", falling back to 1. Addon riders stay flat
// additive after the multiplicative chain; rounding happens once at the end.
func QuoteWithTable(req models.QuoteRequest, table *RateTable) models.QuoteResult {
	if table == nil || len(table.Rows) == 0 {
		return Quote(req)
	}

	row := table.RowFor(req.Applicant.Age)
	base := row.Field("base", tableDefaultBase)
	siMult := row.Field("siMultiplier", tableDefaultMultiplier)
	smokerFactor := row.Field("smokerFactor", tableDefaultMultiplier)
	planMult := row.Field(string(req.Plan)+"Multiplier", row.Field("planMultiplier", tableDefaultMultiplier))

	breakdown := make([]models.BreakdownLine, 0, 6)

	running := base
	breakdown = append(breakdown, models.BreakdownLine{Label: "Base premium (rate table)", Amount: base})

	siScale := siMult * float64(req.SumInsured) / sumInsuredUnit
	breakdown = append(breakdown, models.BreakdownLine{
		Label:  fmt.Sprintf("Sum insured scaling (x%.2f)", siScale),
		Amount: running * (siScale - 1),
	})
	running *= siScale

	if req.Applicant.Smoker {
		breakdown = append(breakdown, models.BreakdownLine{
			Label:  "Smoker loading",
			Amount: running * (smokerFactor - 1),
		})
		running *= smokerFactor
	}

	breakdown = append(breakdown, models.BreakdownLine{
		Label:  fmt.Sprintf("%s plan adjustment", planTitle(req.Plan)),
		Amount: running * (planMult - 1),
	})
	running *= planMult

	running, breakdown = applyRiders(req.Addons, running, breakdown)

	return models.QuoteResult{
		Premium:   int(math.Round(running)),
		Breakdown: breakdown,
		Notes:     "Computed locally from uploaded rate table",
	}
}

// ParseUpload parses an uploaded rate sheet by extension. CSV and XLSX are
// supported; anything unreadable yields an UNREADABLE_TABLE error so callers
// can fall back to the built-in defaults instead of crashing.
func ParseUpload(filename string, data []byte) (*RateTable, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(data)
	case ".xlsx", ".xlsm":
		return parseXLSX(data)
	default:
		// Sniff: XLSX files are zip archives.
		if bytes.HasPrefix(data, []byte("PK")) {
			return parseXLSX(data)
		}
		return parseCSV(data)
	}
}

func parseCSV(data []byte) (*RateTable, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewUnreadableTableError(err)
	}

	return buildTable(records)
}

func parseXLSX(data []byte) (*RateTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewUnreadableTableError(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewUnreadableTableError(fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewUnreadableTableError(err)
	}

	return buildTable(rows)
}

// buildTable normalizes header+rows into a RateTable. Header names are
// lower-cased; cells that do not parse as numbers are dropped so the row
// defaults apply.
func buildTable(records [][]string) (*RateTable, error) {
	if len(records) < 2 {
		return nil, apperrors.NewUnreadableTableError(fmt.Errorf("expected a header row and at least one data row, got %d rows", len(records)))
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	table := &RateTable{Rows: make([]RateRow, 0, len(records)-1)}
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}

		row := RateRow{AgeMin: 0, AgeMax: tableDefaultAgeMax, Fields: map[string]float64{}}
		for i, cell := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			val, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			switch headers[i] {
			case "agemin":
				row.AgeMin = int(val)
			case "agemax":
				row.AgeMax = int(val)
			default:
				row.Fields[headers[i]] = val
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, apperrors.NewUnreadableTableError(fmt.Errorf("no usable data rows"))
	}

	return table, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
