package segment

// Overheads maps a cost label to its monthly amount. Fixed costs for a
// segment are always the sum of the map values, order irrelevant.
type Overheads map[string]float64

// Total returns the monthly fixed costs represented by the map.
func (o Overheads) Total() float64 {
	var sum float64
	for _, amount := range o {
		sum += amount
	}
	return sum
}

// LineItem describes one sales channel or product category before
// computation. Absent numeric fields decode to zero; an absent name falls
// back to a per-segment placeholder.
type LineItem struct {
	Name            string  `json:"name"`
	Units           float64 `json:"units" validate:"gte=0"`
	AvgPrice        float64 `json:"avg_price" validate:"gte=0"`
	UnitCost        float64 `json:"unit_cost" validate:"gte=0"`
	DiscountRate    float64 `json:"discount_rate" validate:"gte=0,lte=1"`
	ReturnRate      float64 `json:"return_rate" validate:"gte=0,lte=1"`
	PaymentFeeRate  float64 `json:"payment_fee_rate" validate:"gte=0,lte=1"`
	ChannelFeeRate  float64 `json:"channel_fee_rate" validate:"gte=0,lte=1"`
	VariableOpsCost float64 `json:"variable_ops_cost" validate:"gte=0"`
}

// LineItemResult is the computed detail row for a single line item.
// BreakEvenUnits is nil when the item's margin per unit is zero or
// negative.
type LineItemResult struct {
	Name           string   `json:"name"`
	GrossRevenue   float64  `json:"gross_revenue"`
	NetRevenue     float64  `json:"net_revenue"`
	SoldUnits      float64  `json:"sold_units"`
	VariableCosts  float64  `json:"variable_costs"`
	Contribution   float64  `json:"contribution"`
	MarginPerUnit  float64  `json:"margin_per_unit"`
	BreakEvenUnits *float64 `json:"break_even_units"`
}

// PnL is the shared monthly profit and loss shape for every segment.
// Exactly one of the break-even pointers is populated: units for jewelry
// and retail, fill rate for yoga. Both keys are always serialised so the
// JSON contract stays stable.
type PnL struct {
	Revenue            float64  `json:"revenue"`
	VariableCosts      float64  `json:"variable_costs"`
	FixedCosts         float64  `json:"fixed_costs"`
	ContributionMargin float64  `json:"contribution_margin"`
	ProfitBeforeTax    float64  `json:"profit_before_tax"`
	BreakEvenUnits     *float64 `json:"break_even_units"`
	BreakEvenFillRate  *float64 `json:"break_even_fill_rate"`
}

// JewelryConfig is the input snapshot for the jewelry segment.
type JewelryConfig struct {
	Channels  []LineItem `json:"channels" validate:"dive"`
	Overheads Overheads  `json:"overheads"`
}

// RetailConfig is the input snapshot for the retail segment. It is
// structurally identical to JewelryConfig apart from the list key.
type RetailConfig struct {
	Categories []LineItem `json:"categories" validate:"dive"`
	Overheads  Overheads  `json:"overheads"`
}

// ClassesConfig describes the yoga studio's public schedule.
// WeeksPerMonth defaults to 4.3 when absent.
type ClassesConfig struct {
	SlotsPerDay   float64  `json:"slots_per_day" validate:"gte=0"`
	DaysPerWeek   float64  `json:"days_per_week" validate:"gte=0"`
	WeeksPerMonth *float64 `json:"weeks_per_month" validate:"omitempty,gte=0"`
	FillRate      float64  `json:"fill_rate" validate:"gte=0,lte=1"`
}

// PricingConfig carries the yoga studio's price book.
type PricingConfig struct {
	SingleClassPrice          float64 `json:"single_class_price" validate:"gte=0"`
	DiscountRate              float64 `json:"discount_rate" validate:"gte=0,lte=1"`
	CorporateDayRate          float64 `json:"corporate_day_rate" validate:"gte=0"`
	CorporateVariableCostRate float64 `json:"corporate_variable_cost_rate" validate:"gte=0,lte=1"`
}

// CorporateConfig describes contracted corporate days.
// PublicSlotsReplaced defaults to true: a corporate day displaces that
// day's public slot capacity unless explicitly disabled.
type CorporateConfig struct {
	DaysPerMonth        float64 `json:"days_per_month" validate:"gte=0"`
	PublicSlotsReplaced *bool   `json:"public_slots_replaced"`
}

// YogaConfig is the input snapshot for the yoga segment.
type YogaConfig struct {
	Overheads               Overheads       `json:"overheads"`
	Capacity                float64         `json:"capacity" validate:"gte=0"`
	Classes                 ClassesConfig   `json:"classes"`
	Pricing                 PricingConfig   `json:"pricing"`
	PaymentFeeRate          float64         `json:"payment_fee_rate" validate:"gte=0,lte=1"`
	TrainerPayoutRate       float64         `json:"trainer_payout_rate" validate:"gte=0,lte=1"`
	VariableCostPerAttendee float64         `json:"variable_cost_per_attendee" validate:"gte=0"`
	Corporate               CorporateConfig `json:"corporate"`
}

// JewelryResult is the computed jewelry segment report.
type JewelryResult struct {
	PnL              PnL              `json:"pnl"`
	Channels         []LineItemResult `json:"channels"`
	FixedCostsDetail Overheads        `json:"fixed_costs_detail"`
}

// RetailResult is the computed retail segment report.
type RetailResult struct {
	PnL              PnL              `json:"pnl"`
	Categories       []LineItemResult `json:"categories"`
	FixedCostsDetail Overheads        `json:"fixed_costs_detail"`
}

// OperatingAssumptions echoes the schedule figures derived while computing
// the yoga segment.
type OperatingAssumptions struct {
	TotalSlots     float64 `json:"total_slots"`
	PublicSlots    float64 `json:"public_slots"`
	AvgAttendees   float64 `json:"avg_attendees"`
	TotalAttendees float64 `json:"total_attendees"`
}

// CorporateReport summarises the corporate contract line.
type CorporateReport struct {
	Revenue      float64 `json:"revenue"`
	Contribution float64 `json:"contribution"`
}

// YogaResult is the computed yoga segment report.
type YogaResult struct {
	PnL                  PnL                  `json:"pnl"`
	OperatingAssumptions OperatingAssumptions `json:"operating_assumptions"`
	Corporate            CorporateReport      `json:"corporate"`
	FixedCostsDetail     Overheads            `json:"fixed_costs_detail"`
}

const (
	defaultWeeksPerMonth = 4.3

	fallbackChannelName  = "channel"
	fallbackCategoryName = "category"
)

// detailOverheads normalises a nil map so reports always serialise the
// overhead detail as an object.
func detailOverheads(o Overheads) Overheads {
	if o == nil {
		return Overheads{}
	}
	return o
}

func floatPtr(v float64) *float64 { return &v }
