package gdp

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

const (
	multiplierMin = 1000
	multiplierMax = 2000
)

// MultiplierSource supplies the randomized GDP multiplier. Production uses
// RandomSource; tests inject a fixed value.
type MultiplierSource interface {
	Uniform() float64
}

type RandomSource struct{}

// Uniform draws from [1000, 2000).
func (RandomSource) Uniform() float64 {
	return multiplierMin + rand.Float64()*(multiplierMax-multiplierMin)
}

type FixedSource struct {
	Value float64
}

func (s FixedSource) Uniform() float64 {
	return s.Value
}

type Estimator struct {
	source MultiplierSource
}

func NewEstimator(source MultiplierSource) *Estimator {
	return &Estimator{source: source}
}

func NewRandomEstimator() *Estimator {
	return NewEstimator(RandomSource{})
}

// Estimate derives estimated GDP from population and exchange rate.
// A country with no currency at all gets exactly zero; a country whose
// currency code could not be resolved to a rate gets nil. A non-positive
// rate counts as unresolved.
func (e *Estimator) Estimate(population int64, rate *decimal.Decimal, hasCurrency bool) *decimal.Decimal {
	if !hasCurrency {
		zero := decimal.Zero
		return &zero
	}
	if rate == nil || !rate.IsPositive() {
		return nil
	}

	multiplier := decimal.NewFromFloat(e.source.Uniform())
	value := decimal.NewFromInt(population).Mul(multiplier).Div(*rate).Round(2)
	return &value
}
