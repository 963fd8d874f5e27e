package http

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/unitecon/unitecon/internal/report"
	"github.com/unitecon/unitecon/internal/segment"
)

var moneyPrinter = message.NewPrinter(language.English)

// formatMoney renders a monetary amount with digit grouping and two
// decimals for the HTML tables.
func formatMoney(v float64) string {
	return moneyPrinter.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// formatUnits renders a unit count with one decimal.
func formatUnits(v float64) string {
	return moneyPrinter.Sprint(number.Decimal(v, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}

// formatPercent renders a fraction as a percentage with one decimal.
func formatPercent(v float64) string {
	return moneyPrinter.Sprint(number.Percent(v, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}

// AggregateViewModel holds the formatted consolidated statement.
type AggregateViewModel struct {
	Revenue            string
	VariableCosts      string
	FixedCosts         string
	ContributionMargin string
	ProfitBeforeTax    string
	TaxExpense         string
	ProfitAfterTax     string
}

// SegmentRow is one formatted line in the per-segment table. BreakEven
// carries whichever break-even variant the segment populates, or "n/a".
type SegmentRow struct {
	Name               string
	Revenue            string
	VariableCosts      string
	FixedCosts         string
	ContributionMargin string
	ProfitBeforeTax    string
	BreakEven          string
}

// ReportViewModel is the data behind the rendered report page.
type ReportViewModel struct {
	Currency   string
	Aggregate  AggregateViewModel
	Segments   []SegmentRow
	Assumption string
	ConfigJSON string
	ResultJSON string
}

// HomeViewModel is the data behind the form page.
type HomeViewModel struct {
	ConfigJSON string
	Error      string
}

// NewReportViewModel formats a summary for rendering. configJSON is the
// raw snapshot text so the export form can resubmit it.
func NewReportViewModel(summary report.Summary, configJSON, resultJSON string) ReportViewModel {
	return ReportViewModel{
		Currency: summary.Currency,
		Aggregate: AggregateViewModel{
			Revenue:            formatMoney(summary.Aggregate.Revenue),
			VariableCosts:      formatMoney(summary.Aggregate.VariableCosts),
			FixedCosts:         formatMoney(summary.Aggregate.FixedCosts),
			ContributionMargin: formatMoney(summary.Aggregate.ContributionMargin),
			ProfitBeforeTax:    formatMoney(summary.Aggregate.ProfitBeforeTax),
			TaxExpense:         formatMoney(summary.Aggregate.TaxExpense),
			ProfitAfterTax:     formatMoney(summary.Aggregate.ProfitAfterTax),
		},
		Segments: []SegmentRow{
			newSegmentRow("Jewelry", summary.Jewelry.PnL),
			newSegmentRow("Yoga studio", summary.Yoga.PnL),
			newSegmentRow("Retail shop", summary.Retail.PnL),
		},
		Assumption: summary.Notes.Assumption,
		ConfigJSON: configJSON,
		ResultJSON: resultJSON,
	}
}

func newSegmentRow(name string, pnl segment.PnL) SegmentRow {
	return SegmentRow{
		Name:               name,
		Revenue:            formatMoney(pnl.Revenue),
		VariableCosts:      formatMoney(pnl.VariableCosts),
		FixedCosts:         formatMoney(pnl.FixedCosts),
		ContributionMargin: formatMoney(pnl.ContributionMargin),
		ProfitBeforeTax:    formatMoney(pnl.ProfitBeforeTax),
		BreakEven:          formatBreakEven(pnl),
	}
}

func formatBreakEven(pnl segment.PnL) string {
	switch {
	case pnl.BreakEvenUnits != nil:
		return formatUnits(*pnl.BreakEvenUnits) + " units"
	case pnl.BreakEvenFillRate != nil:
		return formatPercent(*pnl.BreakEvenFillRate) + " fill"
	default:
		return "n/a"
	}
}
