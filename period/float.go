package period

import (
	"fmt"
	"math"
	"time"

	"github.com/albertvillanova/rateslib/calendar"
	"github.com/albertvillanova/rateslib/daycount"
	"github.com/albertvillanova/rateslib/defaults"
)

// FloatPeriodParams defines inputs to construct a floating-rate period. Zero
// values fall back to the library defaults.
type FloatPeriodParams struct {
	Start           time.Time
	End             time.Time
	Payment         time.Time
	Notional        float64
	Currency        string
	Convention      daycount.Convention
	Termination     time.Time
	FrequencyMonths int
	Stub            bool

	// FloatSpread is the spread over the index in basis points.
	FloatSpread float64

	FixingMethod         FixingMethod
	MethodParam          int
	SpreadCompoundMethod SpreadCompound

	// Fixings supplies already-known index values: a SingleFixing for the
	// whole period, FixingValues for the leading observations in order, or a
	// FixingSeries keyed by publication date. Nil projects everything from
	// the curve.
	Fixings Fixings
}

// FloatPeriod accrues a floating index rate, compounded RFR style or set in
// advance IBOR style, over the period frame.
type FloatPeriod struct {
	basePeriod

	FloatSpread          float64
	FixingMethod         FixingMethod
	MethodParam          int
	SpreadCompoundMethod SpreadCompound
	Fixings              Fixings
}

// NewFloatPeriod validates params and builds a floating-rate period.
func NewFloatPeriod(p FloatPeriodParams) (*FloatPeriod, error) {
	const op = "NewFloatPeriod"
	base, err := newBasePeriod(op, p.Start, p.End, p.Payment, p.Notional, p.Currency, p.Convention, p.Termination, p.FrequencyMonths, p.Stub)
	if err != nil {
		return nil, err
	}
	d := defaults.GetConfig()
	if p.FixingMethod == "" {
		p.FixingMethod = FixingMethod(d.FixingMethod)
		if p.MethodParam == 0 {
			p.MethodParam = d.MethodParam
		}
	}
	if p.SpreadCompoundMethod == "" {
		p.SpreadCompoundMethod = SpreadCompound(d.SpreadCompoundMethod)
	}
	if !p.FixingMethod.valid() {
		return nil, fmt.Errorf("%s: %w: unknown fixing method %q", op, ErrConfig, p.FixingMethod)
	}
	if !p.SpreadCompoundMethod.valid() {
		return nil, fmt.Errorf("%s: %w: unknown spread compound method %q", op, ErrConfig, p.SpreadCompoundMethod)
	}
	if p.MethodParam < 0 {
		return nil, fmt.Errorf("%s: %w: method param must not be negative", op, ErrConfig)
	}
	switch p.FixingMethod {
	case RFRLockout:
		if p.MethodParam < 1 {
			return nil, fmt.Errorf("%s: %w: rfr_lockout requires a method param of at least 1", op, ErrConfig)
		}
	case IBOR:
		if _, ok := p.Fixings.(FixingValues); ok {
			return nil, fmt.Errorf("%s: %w: fixings can only be a single value or series under the ibor fixing method", op, ErrConfig)
		}
	}
	return &FloatPeriod{
		basePeriod:           base,
		FloatSpread:          p.FloatSpread,
		FixingMethod:         p.FixingMethod,
		MethodParam:          p.MethodParam,
		SpreadCompoundMethod: p.SpreadCompoundMethod,
		Fixings:              p.Fixings,
	}, nil
}

// IsComplex reports whether the period rate depends on fixings through more
// than simple compounding of each observation's own rate, which forces
// numeric rather than closed-form fixing exposures.
func (p *FloatPeriod) IsComplex() bool {
	return p.FixingMethod == RFRLockout || p.FixingMethod == RFRLookback || p.SpreadCompoundMethod != NoneSimple
}

// Rate returns the period rate in percent, spread included. Known fixings
// take precedence; the curve projects the rest. Diagnostic warnings go to the
// package logger.
func (p *FloatPeriod) Rate(crv RateCurve) (float64, error) {
	r, warns, err := p.rate(crv, p.FloatSpread)
	logWarnings(warns)
	return r, err
}

// RateWithWarnings is Rate returning the non-fatal data warnings raised while
// resolving fixings, for callers that inspect them rather than log them.
func (p *FloatPeriod) RateWithWarnings(crv RateCurve) (float64, []Warning, error) {
	return p.rate(crv, p.FloatSpread)
}

func (p *FloatPeriod) rate(crv RateCurve, spreadBP float64) (float64, []Warning, error) {
	if s, ok := p.Fixings.(SingleFixing); ok {
		var warns []Warning
		if spreadBP != 0 && p.SpreadCompoundMethod != NoneSimple {
			warns = append(warns, Warning{
				Code:    WarnSpreadOnFixing,
				Message: "spread is added simply to a known scalar fixing, the spread compound method is ignored",
			})
		}
		return float64(s) + spreadBP/100, warns, nil
	}
	if p.FixingMethod == IBOR {
		r, err := p.iborRate(crv)
		if err != nil {
			return 0, nil, err
		}
		return r + spreadBP/100, nil, nil
	}
	return p.rfrRate(crv, spreadBP)
}

// iborRate resolves the index fixed in advance, without spread. A series
// fixing wins on an exact fixing-date hit; otherwise the curve projects, from
// values directly or from discount factors over the accrual.
func (p *FloatPeriod) iborRate(crv RateCurve) (float64, error) {
	const op = "Rate"
	fixingDate := calendar.AddBusinessDays(curveCalendar(crv), p.Start, -p.MethodParam)
	if s, ok := p.Fixings.(*FixingSeries); ok {
		if v, ok := s.lookup(fixingDate); ok {
			return v, nil
		}
	}
	if isNilInterface(crv) {
		return 0, fmt.Errorf("%s: %w: rate could not be calculated without a curve", op, ErrData)
	}
	if vc, ok := crv.(ValueCurve); ok {
		return vc.ValueAt(fixingDate), nil
	}
	dc, ok := crv.(DiscountCurve)
	if !ok {
		return 0, fmt.Errorf("%s: %w: curve projects neither values nor discount factors", op, ErrCurveType)
	}
	d1, d2 := dc.DF(p.Start), dc.DF(p.End)
	if d1 == 0 || math.IsNaN(d1) || math.IsNaN(d2) || d2 == 0 {
		return 0, fmt.Errorf("%s: %w: RFRs could not be calculated over %s to %s", op, ErrData, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
	}
	return (d1/d2 - 1) / p.DCF() * 100, nil
}

// rfrObservations resolves the applied rate and accrual weight of every
// observation row under the period's fixing method.
func (p *FloatPeriod) rfrObservations(op string, crv RateCurve) ([]float64, []float64, []Warning, error) {
	rows, err := observationSchedule(op, p.Start, p.End, p.obsConvention(crv), curveCalendar(crv), p.FixingMethod, p.MethodParam)
	if err != nil {
		return nil, nil, nil, err
	}
	raw, warns, err := resolveRFR(op, rows, p.Fixings, crv)
	if err != nil {
		return nil, nil, warns, err
	}
	applied, err := appliedRates(op, rows, raw, !isNilInterface(crv))
	if err != nil {
		return nil, nil, warns, err
	}
	weights := make([]float64, len(rows))
	for i, row := range rows {
		weights[i] = row.Weight
	}
	return applied, weights, warns, nil
}

// rfrRate compounds per-business-day observations into the period rate.
// Observation windows follow the curve's calendar and convention; the
// period's own convention only scales the cashflow.
func (p *FloatPeriod) rfrRate(crv RateCurve, spreadBP float64) (float64, []Warning, error) {
	const op = "Rate"
	applied, weights, warns, err := p.rfrObservations(op, crv)
	if err != nil {
		return 0, warns, err
	}
	r, err := compoundRate(applied, weights, spreadBP, p.SpreadCompoundMethod)
	if err != nil {
		return 0, warns, err
	}
	return r, warns, nil
}

// Cashflow returns the period cashflow under the projected rate. A positive
// notional pays out.
func (p *FloatPeriod) Cashflow(crv RateCurve) (float64, error) {
	r, err := p.Rate(crv)
	if err != nil {
		return 0, err
	}
	return -p.Notional * p.DCF() * r / 100, nil
}

// NPV discounts the projected cashflow to the curve base date, converted into
// the requested currency.
func (p *FloatPeriod) NPV(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (float64, error) {
	d, err := discounter("NPV", proj, disc)
	if err != nil {
		return 0, err
	}
	cf, err := p.Cashflow(proj)
	if err != nil {
		return 0, err
	}
	rate, err := fxRate(conv, p.Currency, base)
	if err != nil {
		return 0, fmt.Errorf("NPV: %w", err)
	}
	return cf * d.DF(p.Payment) * rate, nil
}

// AnalyticDelta returns the present value of a one basis point move of the
// float spread. Under ISDA spread compounding the spread compounds with the
// index, so the sensitivity is rescaled by the derivative of the period rate
// in the spread: the exact product-rule derivative for isda_compounding, a
// difference of the rate a tenth of a basis point either side for flat
// compounding.
func (p *FloatPeriod) AnalyticDelta(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (float64, error) {
	const op = "AnalyticDelta"
	d, err := discounter(op, proj, disc)
	if err != nil {
		return 0, err
	}
	scale := 1.0
	_, scalar := p.Fixings.(SingleFixing)
	if p.FloatSpread != 0 && p.SpreadCompoundMethod != NoneSimple && p.FixingMethod != IBOR && !scalar {
		if p.SpreadCompoundMethod == ISDACompounding {
			applied, weights, _, err := p.rfrObservations(op, proj)
			if err != nil {
				return 0, err
			}
			scale = isdaCompoundingSpreadScale(applied, weights, p.FloatSpread)
		} else {
			up, _, err := p.rate(proj, p.FloatSpread+0.1)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", op, err)
			}
			dn, _, err := p.rate(proj, p.FloatSpread-0.1)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", op, err)
			}
			scale = (up - dn) / 0.2 * 100
		}
	}
	rate, err := fxRate(conv, p.Currency, base)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return p.baseAnalyticDelta(d) * scale * rate, nil
}

// Cashflows assembles the flat period record. Rate and cashflow stay nil when
// they cannot be resolved from fixings and curve; on an fx lookup failure the
// local-currency record is still returned alongside the error.
func (p *FloatPeriod) Cashflows(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (CashflowReport, error) {
	rep := CashflowReport{
		Type:       "FloatPeriod",
		StubType:   p.stubLabel(),
		Currency:   upper(p.Currency),
		AccStart:   tptr(p.Start),
		AccEnd:     tptr(p.End),
		Payment:    p.Payment,
		Convention: string(p.Convention),
		DCF:        fptr(p.DCF()),
		Notional:   p.Notional,
		Spread:     fptr(p.FloatSpread),
		FXRate:     1.0,
	}
	if r, err := p.Rate(proj); err == nil {
		rep.Rate = fptr(r)
		rep.Cashflow = fptr(-p.Notional * p.DCF() * r / 100)
	}
	if d, err := discounter("Cashflows", proj, disc); err == nil {
		rep.DF = fptr(d.DF(p.Payment))
		if rep.Cashflow != nil {
			rep.NPV = fptr(*rep.Cashflow * *rep.DF)
		}
	}
	rate, err := fxRate(conv, p.Currency, base)
	if err != nil {
		return rep, fmt.Errorf("Cashflows: %w", err)
	}
	rep.FXRate = rate
	if rep.NPV != nil {
		rep.NPVBase = fptr(*rep.NPV * rate)
	}
	return rep, nil
}

// FixingsTable breaks the period's rate sensitivity into one row per index
// fixing: the notional of the overnight deposit spanning that observation
// which replicates a one basis point move. IBOR periods reduce to a single
// row on the fixing date carrying the full notional.
func (p *FloatPeriod) FixingsTable(crv RateCurve) ([]FixingExposure, error) {
	const op = "FixingsTable"
	if p.FixingMethod == IBOR {
		fixingDate := calendar.AddBusinessDays(curveCalendar(crv), p.Start, -p.MethodParam)
		var r float64
		if s, ok := p.Fixings.(SingleFixing); ok {
			r = float64(s)
		} else {
			var err error
			if r, err = p.iborRate(crv); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		return []FixingExposure{{Date: fixingDate, Notional: -p.Notional, Rate: r}}, nil
	}

	rows, err := observationSchedule(op, p.Start, p.End, p.obsConvention(crv), curveCalendar(crv), p.FixingMethod, p.MethodParam)
	if err != nil {
		return nil, err
	}
	var raw []float64
	var warns []Warning
	if s, ok := p.Fixings.(SingleFixing); ok {
		raw = make([]float64, len(rows))
		for i := range raw {
			raw[i] = float64(s)
		}
	} else {
		raw, warns, err = resolveRFR(op, rows, p.Fixings, crv)
		logWarnings(warns)
		if err != nil {
			return nil, err
		}
	}
	haveCurve := !isNilInterface(crv)
	if p.IsComplex() {
		return complexExposures(op, rows, raw, p.FloatSpread, p.SpreadCompoundMethod, p.DCF(), p.Notional, haveCurve)
	}
	applied, err := appliedRates(op, rows, raw, haveCurve)
	if err != nil {
		return nil, err
	}
	return simpleExposures(rows, applied, p.DCF(), p.Notional), nil
}

// FixingsTableTotal is FixingsTable plus a trailing aggregate row on the
// payment date carrying the period cashflow and rate.
func (p *FloatPeriod) FixingsTableTotal(crv RateCurve) ([]FixingExposure, error) {
	rows, err := p.FixingsTable(crv)
	if err != nil {
		return nil, err
	}
	r, err := p.Rate(crv)
	if err != nil {
		return nil, err
	}
	return append(rows, FixingExposure{
		Date:     p.Payment,
		Notional: -p.Notional * p.DCF() * r / 100,
		Rate:     r,
	}), nil
}

func curveCalendar(crv RateCurve) calendar.CalendarID {
	if isNilInterface(crv) {
		return calendar.All
	}
	return crv.Calendar()
}

func (p *FloatPeriod) obsConvention(crv RateCurve) daycount.Convention {
	if isNilInterface(crv) {
		return p.Convention
	}
	return crv.Convention()
}
