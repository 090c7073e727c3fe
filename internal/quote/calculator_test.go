package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestBaseline(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	// The simplest possible cake must price at exactly the base rate.
	b := calc.Suggest(Attributes{Layers: 1, FrostingType: "buttercream"})

	assert.Equal(t, 3000, b.BasePrice)
	assert.Equal(t, 0, b.LayersCost)
	assert.Equal(t, 0, b.DecorationsCost)
	assert.Equal(t, 0, b.ThemeCost)
	assert.Equal(t, 0, b.TextCost)
	assert.Equal(t, 0, b.FrostingCost)
	assert.Equal(t, 0, b.SpecialRequestsCost)
	assert.Equal(t, 1.0, b.ComplexityMultiplier)
	assert.Equal(t, b.BasePrice, b.Subtotal)
	assert.Equal(t, b.BasePrice, b.Total)
}

func TestSuggestBreakdown(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	tests := []struct {
		name       string
		attrs      Attributes
		multiplier float64
		total      int
	}{
		{
			name:       "extra layers below threshold",
			attrs:      Attributes{Layers: 3},
			multiplier: 1.0,
			total:      3000 + 2*1200,
		},
		{
			name:       "layer threshold adds increment",
			attrs:      Attributes{Layers: 4},
			multiplier: 1.15,
			total:      7590, // (3000 + 3*1200) * 1.15
		},
		{
			name:       "decorations below threshold are a flat charge",
			attrs:      Attributes{Layers: 1, DecorationCount: 5},
			multiplier: 1.0,
			total:      3800,
		},
		{
			name:       "decorations above threshold add increment",
			attrs:      Attributes{Layers: 1, DecorationCount: 6},
			multiplier: 1.10,
			total:      4180, // (3000 + 800) * 1.10
		},
		{
			name:       "fondant charges flat plus increment",
			attrs:      Attributes{Layers: 1, FrostingType: "Fondant"},
			multiplier: 1.10,
			total:      4950, // (3000 + 1500) * 1.10
		},
		{
			name:       "cake text charges flat plus increment",
			attrs:      Attributes{Layers: 1, CakeText: "Happy Birthday"},
			multiplier: 1.05,
			total:      3570, // (3000 + 400) * 1.05
		},
		{
			name:       "theme and special instructions are flat only",
			attrs:      Attributes{Layers: 1, Theme: "space", SpecialInstructions: "nut free"},
			multiplier: 1.0,
			total:      3000 + 1000 + 600,
		},
		{
			name: "increments are additive not compounding",
			attrs: Attributes{
				Layers:          5,
				DecorationCount: 8,
				FrostingType:    "fondant",
				CakeText:        "Congrats",
			},
			multiplier: 1.40,
			total:      14700, // (3000 + 4*1200 + 800 + 1500 + 400) * 1.40
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := calc.Suggest(tc.attrs)
			assert.Equal(t, tc.multiplier, b.ComplexityMultiplier)
			assert.Equal(t, tc.total, b.Total)
		})
	}
}

func TestSuggestIsDeterministic(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	attrs := Attributes{Layers: 4, DecorationCount: 7, Theme: "jungle", FrostingType: "fondant"}

	first := calc.Suggest(attrs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, calc.Suggest(attrs))
	}
}

func TestSuggestClampsLayers(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	zero := calc.Suggest(Attributes{Layers: 0})
	one := calc.Suggest(Attributes{Layers: 1})
	assert.Equal(t, one, zero)
}
