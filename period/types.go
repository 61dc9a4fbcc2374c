package period

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/albertvillanova/rateslib/calendar"
	"github.com/albertvillanova/rateslib/daycount"
)

var (
	// ErrConfig reports an invalid period configuration: a bad enum value,
	// a non-positive lockout parameter, a malformed fixings shape, or
	// inverted accrual dates.
	ErrConfig = errors.New("invalid period configuration")

	// ErrData reports market data that cannot support the requested
	// computation, such as a curve unable to produce a projection or an
	// unusable fixing series.
	ErrData = errors.New("market data error")

	// ErrCurveType reports a curve argument lacking the capability the
	// operation needs.
	ErrCurveType = errors.New("unsupported curve type")

	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
)

// WarningCode classifies non-fatal data degradations.
type WarningCode string

const (
	// WarnMissingFixing flags a gap inside a fixing series' covered range;
	// the curve projection was used for the missing date.
	WarnMissingFixing WarningCode = "missing_fixing"

	// WarnSpreadOnFixing flags a non-zero spread compounded on top of a
	// realized fixing override.
	WarnSpreadOnFixing WarningCode = "spread_on_fixing"
)

// Warning is a non-fatal notice emitted during fixing resolution. Warnings
// never stop a computation; the degraded path falls back to curve projection.
type Warning struct {
	Code    WarningCode
	Message string
}

// RateCurve is the projection capability floating periods consume: a forward
// rate for an observation window plus the calendar and accrual convention
// observations follow. SetADOrder is caller-synchronized state on the curve;
// the engine never mutates it.
type RateCurve interface {
	ForwardRate(start, end time.Time) float64
	Calendar() calendar.CalendarID
	Convention() daycount.Convention
	SetADOrder(n int)
	ADOrder() int
}

// DiscountCurve yields discount factors for cashflow discounting.
type DiscountCurve interface {
	DF(t time.Time) float64
}

// ValueCurve is implemented by direct-rate curves that quote a rate at a
// single date; term fixings sample it instead of deriving a factor ratio.
type ValueCurve interface {
	ValueAt(t time.Time) float64
}

// FXConverter converts reported values between currencies.
type FXConverter interface {
	Rate(from, to string) (float64, error)
}

// FixingMethod selects how floating observations map onto the accrual window.
type FixingMethod string

const (
	RFRPaymentDelay     FixingMethod = "rfr_payment_delay"
	RFRLockout          FixingMethod = "rfr_lockout"
	RFRLookback         FixingMethod = "rfr_lookback"
	RFRObservationShift FixingMethod = "rfr_observation_shift"
	IBOR                FixingMethod = "ibor"
)

func (m FixingMethod) valid() bool {
	switch m {
	case RFRPaymentDelay, RFRLockout, RFRLookback, RFRObservationShift, IBOR:
		return true
	}
	return false
}

// SpreadCompound selects how the float spread combines with the compounded
// base rate.
type SpreadCompound string

const (
	NoneSimple          SpreadCompound = "none_simple"
	ISDACompounding     SpreadCompound = "isda_compounding"
	ISDAFlatCompounding SpreadCompound = "isda_flat_compounding"
)

func (s SpreadCompound) valid() bool {
	switch s {
	case NoneSimple, ISDACompounding, ISDAFlatCompounding:
		return true
	}
	return false
}

// Fixings is the closed set of historical fixing overrides a floating period
// accepts: a single scalar, an ordered list, or a date-indexed series.
type Fixings interface {
	fixingsVariant()
}

// SingleFixing overrides the whole period with one realized rate in percent.
type SingleFixing float64

// FixingValues override the leading observation dates in order, oldest first;
// later dates fall through to curve projection.
type FixingValues []float64

// FixingSeries is a date-indexed fixing table. Order is preserved exactly as
// supplied; resolution rejects series whose dates are not strictly increasing.
type FixingSeries struct {
	dates  []time.Time
	values []float64
}

func (SingleFixing) fixingsVariant()  {}
func (FixingValues) fixingsVariant()  {}
func (*FixingSeries) fixingsVariant() {}

// NewFixingSeries pairs fixing dates with their values, as given.
func NewFixingSeries(dates []time.Time, values []float64) (*FixingSeries, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("NewFixingSeries: %w: %d dates against %d values", ErrConfig, len(dates), len(values))
	}
	return &FixingSeries{dates: dates, values: values}, nil
}

// SeriesFromMap builds a date-sorted fixing series from a date->rate map.
func SeriesFromMap(m map[time.Time]float64) *FixingSeries {
	dates := make([]time.Time, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	values := make([]float64, len(dates))
	for i, d := range dates {
		values[i] = m[d]
	}
	return &FixingSeries{dates: dates, values: values}
}

// Len returns the number of entries.
func (s *FixingSeries) Len() int {
	return len(s.dates)
}

func (s *FixingSeries) increasing() bool {
	for i := 1; i < len(s.dates); i++ {
		if !s.dates[i-1].Before(s.dates[i]) {
			return false
		}
	}
	return true
}

func (s *FixingSeries) lookup(t time.Time) (float64, bool) {
	for i, d := range s.dates {
		if d.Equal(t) {
			return s.values[i], true
		}
	}
	return 0, false
}

func (s *FixingSeries) lastDate() time.Time {
	if len(s.dates) == 0 {
		return time.Time{}
	}
	return s.dates[len(s.dates)-1]
}

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
