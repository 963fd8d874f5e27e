package segment

// lineItemTotals accumulates the segment level sums while the per-item
// rows are produced.
type lineItemTotals struct {
	revenue       float64
	variableCosts float64
}

// computeLineItems runs the shared line-item model used by both the
// jewelry and retail segments. fixedCosts is the segment-level figure: the
// per-item break-even divides the whole segment's fixed costs by that
// item's margin per unit.
func computeLineItems(items []LineItem, fixedCosts float64, fallbackName string) ([]LineItemResult, lineItemTotals) {
	results := make([]LineItemResult, 0, len(items))
	var totals lineItemTotals

	for _, item := range items {
		effectivePrice := item.AvgPrice * (1 - item.DiscountRate)
		soldUnits := item.Units * (1 - item.ReturnRate)
		netRevenue := soldUnits * effectivePrice
		variableCosts := soldUnits * (item.UnitCost + item.VariableOpsCost)
		paymentFees := netRevenue * item.PaymentFeeRate
		channelFees := netRevenue * item.ChannelFeeRate
		variableTotal := variableCosts + paymentFees + channelFees
		contribution := netRevenue - variableTotal

		var marginPerUnit float64
		if soldUnits != 0 {
			marginPerUnit = contribution / soldUnits
		}
		var breakEvenUnits *float64
		if marginPerUnit > 0 {
			breakEvenUnits = floatPtr(fixedCosts / marginPerUnit)
		}

		name := item.Name
		if name == "" {
			name = fallbackName
		}

		results = append(results, LineItemResult{
			Name:           name,
			GrossRevenue:   item.Units * item.AvgPrice,
			NetRevenue:     netRevenue,
			SoldUnits:      soldUnits,
			VariableCosts:  variableTotal,
			Contribution:   contribution,
			MarginPerUnit:  marginPerUnit,
			BreakEvenUnits: breakEvenUnits,
		})

		totals.revenue += netRevenue
		totals.variableCosts += variableTotal
	}

	return results, totals
}

// lineItemPnL folds the accumulated totals into the shared P&L shape.
// The segment break-even echoes the first item's figure; consumers that
// need per-item break-evens read them from the item rows.
func lineItemPnL(results []LineItemResult, totals lineItemTotals, fixedCosts float64) PnL {
	contributionMargin := totals.revenue - totals.variableCosts
	pnl := PnL{
		Revenue:            totals.revenue,
		VariableCosts:      totals.variableCosts,
		FixedCosts:         fixedCosts,
		ContributionMargin: contributionMargin,
		ProfitBeforeTax:    contributionMargin - fixedCosts,
	}
	if len(results) > 0 {
		pnl.BreakEvenUnits = results[0].BreakEvenUnits
	}
	return pnl
}
