package utils

import (
	"math"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

const QuantityPrecision = 6

type Formatter struct {
}

// QuantizeQuantity floors the quantity to a whole number of lot steps and
// fixes the result to 6 fractional digits to absorb float noise. A quantity
// below one step quantizes to exactly 0.00, which callers must treat as
// "no viable order".
func (m *Formatter) QuantizeQuantity(quantity float64, step float64) float64 {
	if quantity <= 0 || step <= 0 {
		return 0.00
	}

	steps := math.Floor(quantity / step)

	return m.ToFixed(steps*step, QuantityPrecision)
}

func (m *Formatter) ChangePercent(basePrice float64, price float64) model.Percent {
	return model.Percent((price - basePrice) / basePrice * 100.00)
}

func (m *Formatter) Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func (m *Formatter) ToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(m.Round(num*output)) / output
}
