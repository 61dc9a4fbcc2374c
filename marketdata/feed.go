package marketdata

import (
	"time"

	"github.com/albertvillanova/rateslib/period"
)

// Feed supplies published reference-rate fixings by date.
type Feed interface {
	RateOn(date time.Time) (float64, bool)
}

// StaticFeed is a map-backed feed for development and testing.
type StaticFeed struct {
	rates map[string]float64
}

func NewStaticFeed(rates map[string]float64) *StaticFeed {
	return &StaticFeed{rates: rates}
}

func (f *StaticFeed) RateOn(date time.Time) (float64, bool) {
	val, ok := f.rates[date.Format("2006-01-02")]
	return val, ok
}

// Series exports the full feed as a date-ordered fixing series.
func (f *StaticFeed) Series() *period.FixingSeries {
	return f.SeriesTo(time.Time{})
}

// SeriesTo exports fixings published up to and including cutoff, which
// simulates the history available on a given pricing date. A zero cutoff
// exports everything.
func (f *StaticFeed) SeriesTo(cutoff time.Time) *period.FixingSeries {
	m := make(map[time.Time]float64, len(f.rates))
	for k, v := range f.rates {
		d, err := time.Parse("2006-01-02", k)
		if err != nil {
			continue
		}
		if !cutoff.IsZero() && d.After(cutoff) {
			continue
		}
		m[d] = v
	}
	return period.SeriesFromMap(m)
}

// DefaultFeed builds a feed over the bundled overnight fixings.
func DefaultFeed() *StaticFeed {
	return &StaticFeed{rates: SOFRFixings}
}
