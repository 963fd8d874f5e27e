package report

import (
	"math"
	"testing"

	"github.com/unitecon/unitecon/internal/segment"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateConsolidatesSegments(t *testing.T) {
	pnl := segment.PnL{Revenue: 1000, VariableCosts: 400, FixedCosts: 200}
	pnl.ContributionMargin = pnl.Revenue - pnl.VariableCosts
	pnl.ProfitBeforeTax = pnl.ContributionMargin - pnl.FixedCosts

	result := Aggregate(pnl, pnl, pnl, TaxConfig{ProfitTaxRate: 0.2})

	if !almostEqual(result.Revenue, 3000) {
		t.Fatalf("expected revenue 3000 got %v", result.Revenue)
	}
	if !almostEqual(result.VariableCosts, 1200) {
		t.Fatalf("expected variable costs 1200 got %v", result.VariableCosts)
	}
	if !almostEqual(result.FixedCosts, 600) {
		t.Fatalf("expected fixed costs 600 got %v", result.FixedCosts)
	}
	if !almostEqual(result.ContributionMargin, 1800) {
		t.Fatalf("expected contribution margin 1800 got %v", result.ContributionMargin)
	}
	if !almostEqual(result.ProfitBeforeTax, 1200) {
		t.Fatalf("expected profit before tax 1200 got %v", result.ProfitBeforeTax)
	}
	if !almostEqual(result.TaxExpense, 240) {
		t.Fatalf("expected tax expense 240 got %v", result.TaxExpense)
	}
	if !almostEqual(result.ProfitAfterTax, 960) {
		t.Fatalf("expected profit after tax 960 got %v", result.ProfitAfterTax)
	}
}

func TestAggregateNoTaxOnLoss(t *testing.T) {
	loss := segment.PnL{Revenue: 100, VariableCosts: 80, FixedCosts: 500}

	result := Aggregate(loss, segment.PnL{}, segment.PnL{}, TaxConfig{ProfitTaxRate: 0.22})

	if result.ProfitBeforeTax >= 0 {
		t.Fatalf("expected a consolidated loss, got %v", result.ProfitBeforeTax)
	}
	if result.TaxExpense != 0 {
		t.Fatalf("expected zero tax on a loss, got %v", result.TaxExpense)
	}
	if !almostEqual(result.ProfitAfterTax, result.ProfitBeforeTax) {
		t.Fatalf("after-tax profit must equal pre-tax on a loss")
	}
}

func TestAggregateNoTaxAtExactBreakEven(t *testing.T) {
	even := segment.PnL{Revenue: 500, VariableCosts: 300, FixedCosts: 200}

	result := Aggregate(even, segment.PnL{}, segment.PnL{}, TaxConfig{ProfitTaxRate: 0.2})

	if result.ProfitBeforeTax != 0 {
		t.Fatalf("expected zero profit got %v", result.ProfitBeforeTax)
	}
	if result.TaxExpense != 0 {
		t.Fatalf("expected zero tax at break-even got %v", result.TaxExpense)
	}
}

func TestAggregateMissingTaxRateDefaultsToZero(t *testing.T) {
	profit := segment.PnL{Revenue: 1000}

	result := Aggregate(profit, segment.PnL{}, segment.PnL{}, TaxConfig{})

	if result.TaxExpense != 0 {
		t.Fatalf("expected zero tax expense got %v", result.TaxExpense)
	}
	if !almostEqual(result.ProfitAfterTax, 1000) {
		t.Fatalf("expected profit after tax 1000 got %v", result.ProfitAfterTax)
	}
}
