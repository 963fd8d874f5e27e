package segment

// ComputeYoga projects a month for the yoga studio, blending public
// classes with corporate day contracts. Pure function of the snapshot.
func ComputeYoga(cfg YogaConfig) YogaResult {
	fixedCosts := cfg.Overheads.Total()

	weeksPerMonth := defaultWeeksPerMonth
	if cfg.Classes.WeeksPerMonth != nil {
		weeksPerMonth = *cfg.Classes.WeeksPerMonth
	}
	totalSlots := cfg.Classes.SlotsPerDay * cfg.Classes.DaysPerWeek * weeksPerMonth

	effectivePrice := cfg.Pricing.SingleClassPrice * (1 - cfg.Pricing.DiscountRate)

	corporateDays := cfg.Corporate.DaysPerMonth
	corporateRevenue := corporateDays * cfg.Pricing.CorporateDayRate
	corporateVariable := corporateRevenue * cfg.Pricing.CorporateVariableCostRate
	corporateContribution := corporateRevenue - corporateVariable

	// A corporate day books out that day's public slots unless the
	// contract explicitly leaves them open.
	publicSlots := totalSlots
	if cfg.Corporate.PublicSlotsReplaced == nil || *cfg.Corporate.PublicSlotsReplaced {
		publicSlots = totalSlots - corporateDays*cfg.Classes.SlotsPerDay
	}
	if publicSlots < 0 {
		publicSlots = 0
	}

	avgAttendees := cfg.Capacity * cfg.Classes.FillRate
	totalAttendees := publicSlots * avgAttendees

	netRevenue := totalAttendees * effectivePrice
	trainerPayout := netRevenue * cfg.TrainerPayoutRate
	paymentFees := netRevenue * cfg.PaymentFeeRate
	variableCosts := totalAttendees * cfg.VariableCostPerAttendee
	variableTotal := variableCosts + trainerPayout + paymentFees

	totalRevenue := netRevenue + corporateRevenue
	totalVariableCosts := variableTotal + corporateVariable
	contributionMargin := totalRevenue - totalVariableCosts
	profitBeforeTax := contributionMargin - fixedCosts

	contributionPerAttendee := effectivePrice*(1-cfg.TrainerPayoutRate-cfg.PaymentFeeRate) - cfg.VariableCostPerAttendee
	var breakEvenFillRate *float64
	if contributionPerAttendee > 0 && publicSlots*cfg.Capacity > 0 {
		requiredAttendees := fixedCosts - corporateContribution
		if requiredAttendees < 0 {
			requiredAttendees = 0
		}
		requiredAttendees /= contributionPerAttendee
		breakEvenFillRate = floatPtr(requiredAttendees / (publicSlots * cfg.Capacity))
	}

	return YogaResult{
		PnL: PnL{
			Revenue:            totalRevenue,
			VariableCosts:      totalVariableCosts,
			FixedCosts:         fixedCosts,
			ContributionMargin: contributionMargin,
			ProfitBeforeTax:    profitBeforeTax,
			BreakEvenFillRate:  breakEvenFillRate,
		},
		OperatingAssumptions: OperatingAssumptions{
			TotalSlots:     totalSlots,
			PublicSlots:    publicSlots,
			AvgAttendees:   avgAttendees,
			TotalAttendees: totalAttendees,
		},
		Corporate: CorporateReport{
			Revenue:      corporateRevenue,
			Contribution: corporateContribution,
		},
		FixedCostsDetail: detailOverheads(cfg.Overheads),
	}
}
