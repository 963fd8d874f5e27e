package report

import "github.com/unitecon/unitecon/internal/segment"

// TaxConfig carries the consolidated profit tax rate as a fraction.
// A missing rate decodes to zero, which disables the tax line entirely.
type TaxConfig struct {
	ProfitTaxRate float64 `json:"profit_tax_rate" validate:"gte=0,lte=1"`
}

// AggregateResult is the consolidated P&L across the three segments.
type AggregateResult struct {
	Revenue            float64 `json:"revenue"`
	VariableCosts      float64 `json:"variable_costs"`
	FixedCosts         float64 `json:"fixed_costs"`
	ContributionMargin float64 `json:"contribution_margin"`
	ProfitBeforeTax    float64 `json:"profit_before_tax"`
	TaxExpense         float64 `json:"tax_expense"`
	ProfitAfterTax     float64 `json:"profit_after_tax"`
}

// Aggregate consolidates the three segment P&Ls and applies profit tax.
// Tax is only charged on positive consolidated profit; losses carry no
// shield.
func Aggregate(jewelry, yoga, retail segment.PnL, tax TaxConfig) AggregateResult {
	totalRevenue := jewelry.Revenue + yoga.Revenue + retail.Revenue
	totalVariable := jewelry.VariableCosts + yoga.VariableCosts + retail.VariableCosts
	totalFixed := jewelry.FixedCosts + yoga.FixedCosts + retail.FixedCosts

	contributionMargin := totalRevenue - totalVariable
	profitBeforeTax := contributionMargin - totalFixed

	var taxExpense float64
	if profitBeforeTax > 0 {
		taxExpense = profitBeforeTax * tax.ProfitTaxRate
	}

	return AggregateResult{
		Revenue:            totalRevenue,
		VariableCosts:      totalVariable,
		FixedCosts:         totalFixed,
		ContributionMargin: contributionMargin,
		ProfitBeforeTax:    profitBeforeTax,
		TaxExpense:         taxExpense,
		ProfitAfterTax:     profitBeforeTax - taxExpense,
	}
}
