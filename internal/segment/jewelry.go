package segment

// ComputeJewelry projects a month of jewelry sales across the configured
// channels. Pure function of the snapshot: same input, same output.
func ComputeJewelry(cfg JewelryConfig) JewelryResult {
	fixedCosts := cfg.Overheads.Total()
	channels, totals := computeLineItems(cfg.Channels, fixedCosts, fallbackChannelName)

	return JewelryResult{
		PnL:              lineItemPnL(channels, totals, fixedCosts),
		Channels:         channels,
		FixedCostsDetail: detailOverheads(cfg.Overheads),
	}
}
