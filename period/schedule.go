package period

import (
	"fmt"
	"time"

	"github.com/albertvillanova/rateslib/calendar"
	"github.com/albertvillanova/rateslib/daycount"
)

// obsRow is one overnight observation in an RFR accrual. Date and End bound
// the published rate's deposit; Weight is the accrual fraction the rate earns
// inside the period, Deposit the fraction of the deposit itself. The two
// differ only under lookback, where observation and accrual windows diverge.
// RateIdx points at the row whose rate applies, which under lockout is not
// always the row's own.
type obsRow struct {
	Date    time.Time
	End     time.Time
	Weight  float64
	Deposit float64
	RateIdx int
}

// observationSchedule expands an accrual window into per-business-day
// observation rows for the given RFR fixing method.
func observationSchedule(op string, start, end time.Time, conv daycount.Convention, cal calendar.CalendarID, method FixingMethod, param int) ([]obsRow, error) {
	b0 := calendar.AdjustFollowing(cal, start)
	b1 := calendar.AdjustFollowing(cal, end)
	accrual := append(calendar.BusinessDays(cal, b0, b1), b1)
	if len(accrual) < 2 {
		return nil, fmt.Errorf("%s: %w: period has too few dates", op, ErrData)
	}

	switch method {
	case RFRPaymentDelay, RFRLockout:
		rows := make([]obsRow, len(accrual)-1)
		for i := range rows {
			frac := daycount.Fraction(accrual[i], accrual[i+1], conv)
			rows[i] = obsRow{Date: accrual[i], End: accrual[i+1], Weight: frac, Deposit: frac, RateIdx: i}
		}
		if method == RFRLockout {
			if param >= len(rows) {
				return nil, fmt.Errorf("%s: %w: period has too few dates", op, ErrData)
			}
			locked := len(rows) - 1 - param
			for i := locked + 1; i < len(rows); i++ {
				rows[i].RateIdx = locked
			}
		}
		return rows, nil

	case RFRLookback:
		shifted := make([]time.Time, len(accrual))
		for i, d := range accrual {
			shifted[i] = calendar.AddBusinessDays(cal, d, -param)
		}
		rows := make([]obsRow, len(accrual)-1)
		for i := range rows {
			rows[i] = obsRow{
				Date:    shifted[i],
				End:     shifted[i+1],
				Weight:  daycount.Fraction(accrual[i], accrual[i+1], conv),
				Deposit: daycount.Fraction(shifted[i], shifted[i+1], conv),
				RateIdx: i,
			}
		}
		return rows, nil

	case RFRObservationShift:
		s0 := calendar.AddBusinessDays(cal, b0, -param)
		s1 := calendar.AddBusinessDays(cal, b1, -param)
		window := append(calendar.BusinessDays(cal, s0, s1), s1)
		if len(window) < 2 {
			return nil, fmt.Errorf("%s: %w: period has too few dates", op, ErrData)
		}
		rows := make([]obsRow, len(window)-1)
		for i := range rows {
			frac := daycount.Fraction(window[i], window[i+1], conv)
			rows[i] = obsRow{Date: window[i], End: window[i+1], Weight: frac, Deposit: frac, RateIdx: i}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%s: %w: fixing method %q has no observation schedule", op, ErrConfig, method)
}
