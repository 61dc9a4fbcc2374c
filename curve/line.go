package curve

import (
	"math"
	"sort"
	"time"

	"github.com/albertvillanova/rateslib/calendar"
	"github.com/albertvillanova/rateslib/daycount"
)

// LineCurve quotes rates directly at dated nodes, linearly interpolated in
// time and clamped to the end values outside the node range. It carries no
// discount factors, so it can project floating rates but cannot discount.
type LineCurve struct {
	nodes      []Node
	convention daycount.Convention
	cal        calendar.CalendarID
	interp     InterpFunc
	adOrder    int
}

// NewLine builds a direct-rate curve from date->rate% nodes.
func NewLine(nodes map[time.Time]float64, p Params) *LineCurve {
	if p.Convention == "" {
		p.Convention = daycount.Act360
	}
	if p.Calendar == "" {
		p.Calendar = calendar.All
	}
	return &LineCurve{
		nodes:      sortNodes(nodes),
		convention: p.Convention,
		cal:        p.Calendar,
		interp:     p.Interp,
	}
}

// ValueAt returns the quoted rate at t in percent.
func (c *LineCurve) ValueAt(t time.Time) float64 {
	if c.interp != nil {
		return c.interp(t, c.nodes)
	}
	if len(c.nodes) == 0 {
		return math.NaN()
	}
	if !t.After(c.nodes[0].Date) {
		return c.nodes[0].Value
	}
	last := c.nodes[len(c.nodes)-1]
	if !t.Before(last.Date) {
		return last.Value
	}
	idx := sort.Search(len(c.nodes), func(i int) bool {
		return !c.nodes[i].Date.Before(t)
	})
	if c.nodes[idx].Date.Equal(t) {
		return c.nodes[idx].Value
	}
	n1, n2 := c.nodes[idx-1], c.nodes[idx]
	span := daycount.Days(n1.Date, n2.Date)
	return n1.Value + (n2.Value-n1.Value)*daycount.Days(n1.Date, t)/span
}

// ForwardRate returns the quote fixed at the window start; direct-rate curves
// quote the rate applying from that date rather than deriving it from factor
// ratios.
func (c *LineCurve) ForwardRate(start, _ time.Time) float64 {
	return c.ValueAt(start)
}

// Convention returns the accrual convention the quoted rates assume.
func (c *LineCurve) Convention() daycount.Convention {
	return c.convention
}

// Calendar returns the curve's business-day calendar.
func (c *LineCurve) Calendar() calendar.CalendarID {
	return c.cal
}

// SetADOrder records the numeric-derivative order callers want curve queries
// evaluated at. Plain values are unaffected; mutation is caller-synchronized.
func (c *LineCurve) SetADOrder(n int) {
	c.adOrder = n
}

// ADOrder returns the current numeric-derivative order.
func (c *LineCurve) ADOrder() int {
	return c.adOrder
}
