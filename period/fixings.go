package period

import (
	"fmt"
	"math"
)

// resolveRFR produces one raw rate per observation row from known fixings,
// projecting the remainder from the curve. Rows the curve cannot project are
// left NaN; whether those survive depends on the fixing-method mapping, so the
// check happens in appliedRates.
func resolveRFR(op string, rows []obsRow, fixings Fixings, crv RateCurve) ([]float64, []Warning, error) {
	rates := make([]float64, len(rows))
	var warns []Warning

	project := func(i int) float64 {
		if isNilInterface(crv) {
			return math.NaN()
		}
		return crv.ForwardRate(rows[i].Date, rows[i].End)
	}

	switch f := fixings.(type) {
	case nil:
		for i := range rows {
			rates[i] = project(i)
		}
	case FixingValues:
		if len(f) > len(rows) {
			return nil, nil, fmt.Errorf("%s: %w: %d fixings supplied for %d observations", op, ErrConfig, len(f), len(rows))
		}
		for i := range rows {
			if i < len(f) {
				rates[i] = f[i]
			} else {
				rates[i] = project(i)
			}
		}
	case *FixingSeries:
		if !f.increasing() {
			return nil, nil, fmt.Errorf("%s: %w: fixings as a series must be monotonically increasing", op, ErrData)
		}
		last := f.lastDate()
		for i, row := range rows {
			if v, ok := f.lookup(row.Date); ok {
				rates[i] = v
				continue
			}
			// A gap inside the published range is suspicious; dates past the
			// series end are simply not yet published.
			if !row.Date.After(last) {
				warns = append(warns, Warning{
					Code:    WarnMissingFixing,
					Message: fmt.Sprintf("fixing for %s is missing from the series, projecting from the curve", row.Date.Format("2006-01-02")),
				})
			}
			rates[i] = project(i)
		}
	default:
		return nil, nil, fmt.Errorf("%s: %w: unsupported fixings variant %T", op, ErrConfig, fixings)
	}
	return rates, warns, nil
}

// appliedRates maps raw observation rates through each row's rate index and
// verifies every applied rate is known. Raw NaN on a row nothing points at,
// such as a locked-out tail observation, is forgiven.
func appliedRates(op string, rows []obsRow, raw []float64, haveCurve bool) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = raw[row.RateIdx]
		if math.IsNaN(out[i]) {
			if !haveCurve {
				return nil, fmt.Errorf("%s: %w: rates could not be calculated without a curve", op, ErrData)
			}
			return nil, fmt.Errorf("%s: %w: RFRs could not be calculated on %s", op, ErrData, rows[row.RateIdx].Date.Format("2006-01-02"))
		}
	}
	return out, nil
}
