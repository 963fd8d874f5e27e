package segment

// ComputeRetail projects a month of retail sales across the configured
// product categories. Numerically identical to the jewelry model; only the
// list key and name fallback differ.
func ComputeRetail(cfg RetailConfig) RetailResult {
	fixedCosts := cfg.Overheads.Total()
	categories, totals := computeLineItems(cfg.Categories, fixedCosts, fallbackCategoryName)

	return RetailResult{
		PnL:              lineItemPnL(categories, totals, fixedCosts),
		Categories:       categories,
		FixedCostsDetail: detailOverheads(cfg.Overheads),
	}
}
