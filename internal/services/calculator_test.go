package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAmounts(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		addition    float64
		rate        float64
		wantAmount  float64
		wantAmountN float64
	}{
		{"price plus addition times rate", 100, 10, 1.5, 110, 165},
		{"neutral rate", 100, 10, 1, 110, 110},
		{"zero addition", 100, 0, 2, 100, 200},
		{"zero price", 0, 25, 1.2, 25, 30},
		{"negative addition discounts", 100, -20, 1.5, 80, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, amountN := ComputeAmounts(tt.price, tt.addition, tt.rate)
			assert.InDelta(t, tt.wantAmount, amount, 1e-9)
			assert.InDelta(t, tt.wantAmountN, amountN, 1e-9)
		})
	}
}

func TestParseRate(t *testing.T) {
	assert.Equal(t, 1.5, ParseRate("1.5"))
	assert.Equal(t, 1.0, ParseRate(""))
	assert.Equal(t, 1.0, ParseRate("abc"))
	assert.Equal(t, 0.5, ParseRate("0.5"))
}

func TestParseAddition(t *testing.T) {
	assert.Equal(t, 10.0, ParseAddition("10"))
	assert.Equal(t, 0.0, ParseAddition(""))
	assert.Equal(t, 0.0, ParseAddition("x"))
	assert.Equal(t, -5.0, ParseAddition("-5"))
}
