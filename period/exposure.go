package period

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// FixingExposure is one row of a fixings table: the notional of the overnight
// deposit spanning Date whose rate sensitivity replicates the period's
// sensitivity to that fixing. DCF is the deposit fraction, nil on aggregate
// rows.
type FixingExposure struct {
	Date     time.Time
	Notional float64
	DCF      *float64
	Rate     float64
}

// simpleExposures computes risk notionals in closed form. Valid only when the
// period rate is simple compounding of each row's own observation, so the
// partial derivative of the rate in a single fixing is the product of the
// other growth factors.
func simpleExposures(rows []obsRow, applied []float64, periodDCF, notional float64) []FixingExposure {
	growth := make([]float64, len(rows))
	sumW := 0.0
	for i, row := range rows {
		growth[i] = 1 + applied[i]*row.Weight/100
		sumW += row.Weight
	}
	prod := floats.Prod(growth)
	out := make([]FixingExposure, len(rows))
	for i, row := range rows {
		out[i] = FixingExposure{
			Date:     row.Date,
			Notional: -notional * periodDCF / sumW * prod / growth[i] * row.Weight / row.Deposit,
			DCF:      fptr(row.Deposit),
			Rate:     applied[i],
		}
	}
	return out
}

// complexExposures computes risk notionals by central difference of the
// period rate in each raw observation, re-running the fixing-method mapping
// and spread compounding on the bumped vector. This covers lockout, lookback
// and the ISDA spread compounding methods, where a fixing can drive several
// accrual rows or enter the rate nonlinearly.
func complexExposures(op string, rows []obsRow, raw []float64, spreadBP float64, method SpreadCompound, periodDCF, notional float64, haveCurve bool) ([]FixingExposure, error) {
	applied, err := appliedRates(op, rows, raw, haveCurve)
	if err != nil {
		return nil, err
	}
	weights := make([]float64, len(rows))
	for i, row := range rows {
		weights[i] = row.Weight
	}

	const eps = 0.01 // one basis point in percent
	reprice := func(bumped []float64) (float64, error) {
		mapped := make([]float64, len(rows))
		for i, row := range rows {
			mapped[i] = bumped[row.RateIdx]
		}
		return compoundRate(mapped, weights, spreadBP, method)
	}

	out := make([]FixingExposure, len(rows))
	bumped := make([]float64, len(raw))
	for i, row := range rows {
		copy(bumped, raw)
		bumped[i] = raw[i] + eps/2
		up, err := reprice(bumped)
		if err != nil {
			return nil, err
		}
		bumped[i] = raw[i] - eps/2
		dn, err := reprice(bumped)
		if err != nil {
			return nil, err
		}
		deriv := (up - dn) / eps
		out[i] = FixingExposure{
			Date:     row.Date,
			Notional: -notional * periodDCF / row.Deposit * deriv,
			DCF:      fptr(row.Deposit),
			Rate:     applied[i],
		}
	}
	return out, nil
}
