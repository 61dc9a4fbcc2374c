package period

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// compoundRate aggregates per-observation rates into a single period rate in
// percent. Rates and dcfs are the applied rate and deposit fraction of each
// observation; spreadBP is the float spread in basis points.
//
// Simple spread adds after compounding. ISDA compounding folds the spread into
// each observation's growth factor. ISDA flat compounding accrues each
// observation's spreaded interest on half the running compounded interest,
// matching the ISDA 2006 flat compounding schedule.
func compoundRate(rates, dcfs []float64, spreadBP float64, method SpreadCompound) (float64, error) {
	if len(rates) != len(dcfs) || len(rates) == 0 {
		return 0, fmt.Errorf("compoundRate: %w: %d rates against %d fractions", ErrData, len(rates), len(dcfs))
	}
	switch method {
	case NoneSimple:
		growth := make([]float64, len(rates))
		for i := range rates {
			growth[i] = 1 + rates[i]*dcfs[i]/100
		}
		return (floats.Prod(growth)-1)*100/floats.Sum(dcfs) + spreadBP/100, nil

	case ISDACompounding:
		spread := spreadBP / 100
		growth := make([]float64, len(rates))
		for i := range rates {
			growth[i] = 1 + (rates[i]+spread)*dcfs[i]/100
		}
		return (floats.Prod(growth) - 1) * 100 / floats.Sum(dcfs), nil

	case ISDAFlatCompounding:
		spread := spreadBP / 100
		var compounded float64
		for i := range rates {
			compounded += (rates[i] + spread) / 100 * dcfs[i] * (1 + compounded/2)
		}
		return compounded / floats.Sum(dcfs) * 100, nil
	}
	return 0, fmt.Errorf("compoundRate: %w: spread compound method %q is not one of none_simple, isda_compounding, isda_flat_compounding", ErrConfig, method)
}

// isdaCompoundingSpreadScale is the derivative of the isda_compounding period
// rate in the spread. Differentiating the growth product term by term leaves
// each observation's fraction times the growth of every other observation.
func isdaCompoundingSpreadScale(rates, dcfs []float64, spreadBP float64) float64 {
	spread := spreadBP / 100
	growth := make([]float64, len(rates))
	for i := range rates {
		growth[i] = 1 + (rates[i]+spread)*dcfs[i]/100
	}
	prod := floats.Prod(growth)
	deriv := 0.0
	for i, d := range dcfs {
		deriv += d * prod / growth[i]
	}
	return deriv / floats.Sum(dcfs)
}
