// Package quote computes a suggested price breakdown for a custom cake
// request. The suggestion is advisory; the admin-entered quote persisted by
// the state machine is the number of record.
package quote

import (
	"math"
	"strings"
)

type Attributes struct {
	Layers              int
	DecorationCount     int
	Theme               string
	CakeText            string
	FrostingType        string
	SpecialInstructions string
}

// Rates holds all pricing knobs. Amounts are in cents.
type Rates struct {
	BasePrice           int
	PerLayer            int
	DecorationsFlat     int
	ThemeFlat           int
	TextFlat            int
	SpecialRequestsFlat int
	FondantFrosting     int

	LayerThreshold      int
	DecorationThreshold int

	LayerIncrement      float64
	DecorationIncrement float64
	FondantIncrement    float64
	TextIncrement       float64
}

func DefaultRates() Rates {
	return Rates{
		BasePrice:           3000,
		PerLayer:            1200,
		DecorationsFlat:     800,
		ThemeFlat:           1000,
		TextFlat:            400,
		SpecialRequestsFlat: 600,
		FondantFrosting:     1500,

		LayerThreshold:      4,
		DecorationThreshold: 5,

		LayerIncrement:      0.15,
		DecorationIncrement: 0.10,
		FondantIncrement:    0.10,
		TextIncrement:       0.05,
	}
}

type Breakdown struct {
	BasePrice            int     `json:"base_price"`
	LayersCost           int     `json:"layers_cost"`
	DecorationsCost      int     `json:"decorations_cost"`
	ThemeCost            int     `json:"theme_cost"`
	TextCost             int     `json:"text_cost"`
	FrostingCost         int     `json:"frosting_cost"`
	SpecialRequestsCost  int     `json:"special_requests_cost"`
	ComplexityMultiplier float64 `json:"complexity_multiplier"`
	Subtotal             int     `json:"subtotal"`
	Total                int     `json:"total"`
}

type Calculator struct {
	rates Rates
}

func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

func isFondant(frosting string) bool {
	return strings.EqualFold(strings.TrimSpace(frosting), "fondant")
}

// Suggest is deterministic and side-effect free: the same attributes always
// produce the same breakdown.
func (c *Calculator) Suggest(attrs Attributes) Breakdown {
	r := c.rates

	layers := attrs.Layers
	if layers < 1 {
		layers = 1
	}

	b := Breakdown{
		BasePrice:  r.BasePrice,
		LayersCost: (layers - 1) * r.PerLayer,
	}

	if attrs.DecorationCount > 0 {
		b.DecorationsCost = r.DecorationsFlat
	}
	if strings.TrimSpace(attrs.Theme) != "" {
		b.ThemeCost = r.ThemeFlat
	}
	if strings.TrimSpace(attrs.CakeText) != "" {
		b.TextCost = r.TextFlat
	}
	if isFondant(attrs.FrostingType) {
		b.FrostingCost = r.FondantFrosting
	}
	if strings.TrimSpace(attrs.SpecialInstructions) != "" {
		b.SpecialRequestsCost = r.SpecialRequestsFlat
	}

	// Increments are additive, not compounding.
	multiplier := 1.0
	if layers >= r.LayerThreshold {
		multiplier += r.LayerIncrement
	}
	if attrs.DecorationCount > r.DecorationThreshold {
		multiplier += r.DecorationIncrement
	}
	if isFondant(attrs.FrostingType) {
		multiplier += r.FondantIncrement
	}
	if strings.TrimSpace(attrs.CakeText) != "" {
		multiplier += r.TextIncrement
	}
	b.ComplexityMultiplier = multiplier

	b.Subtotal = b.BasePrice + b.LayersCost + b.DecorationsCost + b.ThemeCost +
		b.TextCost + b.FrostingCost + b.SpecialRequestsCost
	b.Total = int(math.Round(float64(b.Subtotal) * multiplier))

	return b
}
