package report

import "github.com/unitecon/unitecon/internal/segment"

// DefaultCurrency labels summaries whose snapshot omits a currency.
const DefaultCurrency = "RUB"

// monthlyAssumption is echoed verbatim into every summary's notes block.
const monthlyAssumption = "All figures are monthly unless specified; break-even fill rate shown as share of capacity."

// ProjectionConfig is the single input snapshot a projection run consumes.
// Absent sections decode to zero values and compute to near-zero results.
type ProjectionConfig struct {
	Currency string                `json:"currency"`
	Tax      TaxConfig             `json:"tax"`
	Jewelry  segment.JewelryConfig `json:"jewelry"`
	Yoga     segment.YogaConfig    `json:"yoga"`
	Retail   segment.RetailConfig  `json:"retail"`
}

// Notes carries descriptive context for the summary consumer.
type Notes struct {
	ProfitTaxRate float64 `json:"profit_tax_rate"`
	Assumption    string  `json:"assumption"`
}

// Summary is the full projection report: currency, the three segment
// reports, the consolidated P&L, and notes. Pure composition, no
// computation of its own beyond delegating to the calculators.
type Summary struct {
	Currency  string                `json:"currency"`
	Jewelry   segment.JewelryResult `json:"jewelry"`
	Yoga      segment.YogaResult    `json:"yoga"`
	Retail    segment.RetailResult  `json:"retail"`
	Aggregate AggregateResult       `json:"aggregate"`
	Notes     Notes                 `json:"notes"`
}

// BuildSummary evaluates the whole snapshot. The segments are computed
// sequentially in a fixed order (jewelry, yoga, retail); they are
// independent, so the order only matters for reproducible logs.
func BuildSummary(cfg ProjectionConfig) Summary {
	jewelry := segment.ComputeJewelry(cfg.Jewelry)
	yoga := segment.ComputeYoga(cfg.Yoga)
	retail := segment.ComputeRetail(cfg.Retail)

	currency := cfg.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return Summary{
		Currency:  currency,
		Jewelry:   jewelry,
		Yoga:      yoga,
		Retail:    retail,
		Aggregate: Aggregate(jewelry.PnL, yoga.PnL, retail.PnL, cfg.Tax),
		Notes: Notes{
			ProfitTaxRate: cfg.Tax.ProfitTaxRate,
			Assumption:    monthlyAssumption,
		},
	}
}

// ValidateConfig runs the strict range checks over the full snapshot.
// Only called when strict input mode is enabled; the default path stays
// permissive like the model itself.
func ValidateConfig(cfg ProjectionConfig) error {
	if err := segment.ValidateJewelry(cfg.Jewelry); err != nil {
		return err
	}
	if err := segment.ValidateYoga(cfg.Yoga); err != nil {
		return err
	}
	return segment.ValidateRetail(cfg.Retail)
}
