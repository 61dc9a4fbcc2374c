package period

import (
	"fmt"
	"time"

	"github.com/albertvillanova/rateslib/daycount"
	"github.com/albertvillanova/rateslib/defaults"
)

// Period is the cashflow contract shared by every period kind. Fixed and
// nominal periods ignore the projection curve; it is part of the signature so
// legs can price mixed period lists uniformly.
type Period interface {
	NPV(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (float64, error)
	AnalyticDelta(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (float64, error)
	Cashflows(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (CashflowReport, error)
}

// basePeriod carries the accrual frame shared by all period kinds.
type basePeriod struct {
	Start       time.Time
	End         time.Time
	Payment     time.Time
	Notional    float64
	Currency    string
	Convention  daycount.Convention
	Termination time.Time

	// FrequencyMonths tags the leg payment frequency the period belongs to.
	FrequencyMonths int

	// Stub marks periods shorter or longer than the leg's regular frequency.
	Stub bool
}

func newBasePeriod(op string, start, end, payment time.Time, notional float64, currency string, convention daycount.Convention, termination time.Time, freqMonths int, stub bool) (basePeriod, error) {
	d := defaults.GetConfig()
	if notional == 0 {
		notional = d.Notional
	}
	if currency == "" {
		currency = d.Currency
	}
	if convention == "" {
		convention = d.Convention
	}
	if !start.Before(end) {
		return basePeriod{}, fmt.Errorf("%s: %w: accrual start %s must precede end %s", op, ErrConfig, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return basePeriod{
		Start:           start,
		End:             end,
		Payment:         payment,
		Notional:        notional,
		Currency:        currency,
		Convention:      convention,
		Termination:     termination,
		FrequencyMonths: freqMonths,
		Stub:            stub,
	}, nil
}

// DCF returns the accrual day count fraction under the period convention.
func (b *basePeriod) DCF() float64 {
	return daycount.Fraction(b.Start, b.End, b.Convention)
}

func (b *basePeriod) stubLabel() string {
	if b.Stub {
		return "Stub"
	}
	return "Regular"
}

// baseAnalyticDelta is the present value of a one basis point rate move,
// before any spread-compounding scaling.
func (b *basePeriod) baseAnalyticDelta(d DiscountCurve) float64 {
	return b.Notional * b.DCF() * d.DF(b.Payment) / 1e4
}

// discounter picks the discounting curve: an explicit discount curve wins,
// else a projection curve that can itself discount.
func discounter(op string, proj RateCurve, disc DiscountCurve) (DiscountCurve, error) {
	if !isNilInterface(disc) {
		return disc, nil
	}
	if isNilInterface(proj) {
		return nil, fmt.Errorf("%s: %w", op, ErrNilCurve)
	}
	if dc, ok := proj.(DiscountCurve); ok {
		return dc, nil
	}
	return nil, fmt.Errorf("%s: %w: projection curve cannot discount and no discount curve was supplied", op, ErrCurveType)
}

// fxRate resolves the conversion rate into the requested base currency. A nil
// converter reports in local currency at rate 1.
func fxRate(conv FXConverter, currency, base string) (float64, error) {
	if isNilInterface(conv) {
		return 1.0, nil
	}
	if base == "" {
		if br, ok := conv.(interface{ BaseCurrency() string }); ok {
			base = br.BaseCurrency()
		}
	}
	if base == "" {
		base = currency
	}
	return conv.Rate(currency, base)
}

// FixedPeriodParams defines inputs to construct a fixed-rate period. Zero
// values fall back to the library defaults; FixedRate may stay nil for a
// period whose coupon is not yet struck.
type FixedPeriodParams struct {
	Start           time.Time
	End             time.Time
	Payment         time.Time
	Notional        float64
	Currency        string
	Convention      daycount.Convention
	Termination     time.Time
	FrequencyMonths int
	Stub            bool

	// FixedRate is the coupon in percent.
	FixedRate *float64
}

// FixedPeriod accrues a fixed coupon over the period frame.
type FixedPeriod struct {
	basePeriod

	// FixedRate is the coupon in percent, nil while unset.
	FixedRate *float64
}

// NewFixedPeriod validates params and builds a fixed-rate period.
func NewFixedPeriod(p FixedPeriodParams) (*FixedPeriod, error) {
	base, err := newBasePeriod("NewFixedPeriod", p.Start, p.End, p.Payment, p.Notional, p.Currency, p.Convention, p.Termination, p.FrequencyMonths, p.Stub)
	if err != nil {
		return nil, err
	}
	return &FixedPeriod{basePeriod: base, FixedRate: p.FixedRate}, nil
}

// Cashflow returns the coupon cashflow, or false while the rate is unset.
func (p *FixedPeriod) Cashflow() (float64, bool) {
	if p.FixedRate == nil {
		return 0, false
	}
	return -p.Notional * p.DCF() * *p.FixedRate / 100, true
}

// NPV discounts the coupon cashflow to the curve base date, converted into
// the requested currency.
func (p *FixedPeriod) NPV(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (float64, error) {
	d, err := discounter("NPV", proj, disc)
	if err != nil {
		return 0, err
	}
	cf, ok := p.Cashflow()
	if !ok {
		return 0, fmt.Errorf("NPV: %w: fixed rate is unset", ErrData)
	}
	rate, err := fxRate(conv, p.Currency, base)
	if err != nil {
		return 0, fmt.Errorf("NPV: %w", err)
	}
	return cf * d.DF(p.Payment) * rate, nil
}

// AnalyticDelta returns the present value of a one basis point coupon move.
func (p *FixedPeriod) AnalyticDelta(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (float64, error) {
	d, err := discounter("AnalyticDelta", proj, disc)
	if err != nil {
		return 0, err
	}
	rate, err := fxRate(conv, p.Currency, base)
	if err != nil {
		return 0, fmt.Errorf("AnalyticDelta: %w", err)
	}
	return p.baseAnalyticDelta(d) * rate, nil
}

// Cashflows assembles the flat period record. Values undeterminable without a
// curve stay nil. On an fx lookup failure the local-currency record is still
// returned alongside the error.
func (p *FixedPeriod) Cashflows(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (CashflowReport, error) {
	rep := CashflowReport{
		Type:       "FixedPeriod",
		StubType:   p.stubLabel(),
		Currency:   upper(p.Currency),
		AccStart:   tptr(p.Start),
		AccEnd:     tptr(p.End),
		Payment:    p.Payment,
		Convention: string(p.Convention),
		DCF:        fptr(p.DCF()),
		Notional:   p.Notional,
		Rate:       p.FixedRate,
		FXRate:     1.0,
	}
	if cf, ok := p.Cashflow(); ok {
		rep.Cashflow = fptr(cf)
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

// CashflowParams defines inputs to construct a nominal cashflow exchange.
type CashflowParams struct {
	Notional float64
	Payment  time.Time
	Currency string
}

// Cashflow is a single nominal exchange with no accrual.
type Cashflow struct {
	Notional float64
	Payment  time.Time
	Currency string
}

// NewCashflow builds a nominal cashflow period.
func NewCashflow(p CashflowParams) *Cashflow {
	if p.Currency == "" {
		p.Currency = defaults.GetConfig().Currency
	}
	return &Cashflow{Notional: p.Notional, Payment: p.Payment, Currency: p.Currency}
}

// Cashflow returns the nominal flow. Sign follows the notional convention of
// accrual periods: a positive notional pays out.
func (c *Cashflow) Cashflow() float64 {
	return -c.Notional
}

// NPV discounts the nominal flow to the curve base date, converted into the
// requested currency.
func (c *Cashflow) NPV(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (float64, error) {
	d, err := discounter("NPV", proj, disc)
	if err != nil {
		return 0, err
	}
	rate, err := fxRate(conv, c.Currency, base)
	if err != nil {
		return 0, fmt.Errorf("NPV: %w", err)
	}
	return c.Cashflow() * d.DF(c.Payment) * rate, nil
}

// AnalyticDelta is zero: a nominal exchange carries no rate sensitivity.
func (c *Cashflow) AnalyticDelta(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (float64, error) {
	return 0, nil
}

// Cashflows assembles the flat period record; accrual fields stay absent.
func (c *Cashflow) Cashflows(proj RateCurve, disc DiscountCurve, conv FXConverter, base string) (CashflowReport, error) {
	rep := CashflowReport{
		Type:     "Cashflow",
		Currency: upper(c.Currency),
		Payment:  c.Payment,
		Notional: c.Notional,
		Cashflow: fptr(c.Cashflow()),
		FXRate:   1.0,
	}
	if d, err := discounter("Cashflows", proj, disc); err == nil {
		rep.DF = fptr(d.DF(c.Payment))
		rep.NPV = fptr(*rep.Cashflow * *rep.DF)
	}
	rate, err := fxRate(conv, c.Currency, base)
	if err != nil {
		return rep, fmt.Errorf("Cashflows: %w", err)
	}
	rep.FXRate = rate
	if rep.NPV != nil {
		rep.NPVBase = fptr(*rep.NPV * rate)
	}
	return rep, nil
}
