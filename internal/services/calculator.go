package services

import "strconv"

const (
	DefaultRate     = 1.0
	DefaultAddition = 0.0
)

// ComputeAmounts derives both charge figures from a country price, a
// per-transaction addition and an exchange rate. Amounts are snapshots:
// they are computed once at write time and never recomputed on read.
func ComputeAmounts(price, addition, rate float64) (amount, amountN float64) {
	amount = price + addition
	amountN = amount * rate
	return amount, amountN
}

// ParseRate coerces a raw form value. Absent or malformed input falls back
// to the neutral rate of 1.0.
func ParseRate(raw string) float64 {
	if raw == "" {
		return DefaultRate
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultRate
	}
	return v
}

// ParseAddition coerces a raw form value, falling back to 0.0.
func ParseAddition(raw string) float64 {
	if raw == "" {
		return DefaultAddition
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultAddition
	}
	return v
}
