package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Makepad-fr/wegive/internal/model"
)

const (
	// AvgWeightPerUnitKg is the assumed weight of one donated unit.
	AvgWeightPerUnitKg = 0.5
	// CO2SavedPerKg is kg CO2-equivalent avoided per kg of food diverted.
	CO2SavedPerKg = 1.8
)

var ErrEmptyReport = errors.New("no data to report")

var Header = []string{
	"ItemID",
	"Description",
	"Quantity",
	"ExpiryDate",
	"Donor",
	"Status",
	"WasteDiverted_kg",
	"CarbonSaved_kgCO2e",
}

// Row is one item flattened for the impact report.
type Row struct {
	ItemID         string
	Description    string
	Quantity       int
	ExpiryDate     string
	Donor          string
	Status         model.Status
	WasteDivertedK float64
	CarbonSavedK   float64
}

// Rows derives report rows. Only collected items count towards impact.
func Rows(items []model.SurplusItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		r := Row{
			ItemID:      it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			ExpiryDate:  it.ExpiryDate,
			Donor:       it.DonorName,
			Status:      it.Status,
		}
		if it.Status == model.StatusCollected {
			r.WasteDivertedK = float64(it.Quantity) * AvgWeightPerUnitKg
			r.CarbonSavedK = r.WasteDivertedK * CO2SavedPerKg
		}
		rows = append(rows, r)
	}
	return rows
}

func (r Row) fields() []string {
	waste := "0"
	if r.Status == model.StatusCollected {
		waste = strconv.FormatFloat(r.WasteDivertedK, 'f', 2, 64)
	}
	return []string{
		r.ItemID,
		quote(r.Description),
		strconv.Itoa(r.Quantity),
		r.ExpiryDate,
		quote(r.Donor),
		string(r.Status),
		waste,
		strconv.FormatFloat(r.CarbonSavedK, 'f', 2, 64),
	}
}

// CSV renders the impact report. Description and donor are always quoted.
func CSV(items []model.SurplusItem) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrEmptyReport
	}
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	for _, r := range Rows(items) {
		b.WriteByte('\n')
		b.WriteString(strings.Join(r.fields(), ","))
	}
	return []byte(b.String()), nil
}

// quote wraps s in double quotes, doubling any embedded quote.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename names the report after the export date.
func Filename(now time.Time) string {
	return fmt.Sprintf("wegive_impact_report_%s.csv", now.Format(model.DateLayout))
}

// Summary totals the impact of collected items.
type Summary struct {
	Items          int
	Available      int
	Claimed        int
	Collected      int
	CollectedUnits int
	WasteDivertedK float64
	CarbonSavedK   float64
}

func Summarize(items []model.SurplusItem) Summary {
	var s Summary
	s.Items = len(items)
	for _, r := range Rows(items) {
		switch r.Status {
		case model.StatusAvailable:
			s.Available++
		case model.StatusClaimed:
			s.Claimed++
		case model.StatusCollected:
			s.Collected++
			s.CollectedUnits += r.Quantity
		}
		s.WasteDivertedK += r.WasteDivertedK
		s.CarbonSavedK += r.CarbonSavedK
	}
	return s
}
