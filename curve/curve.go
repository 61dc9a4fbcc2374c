package curve

import (
	"math"
	"sort"
	"time"

	"github.com/albertvillanova/rateslib/calendar"
	"github.com/albertvillanova/rateslib/daycount"
)

// Node is a single curve pillar.
type Node struct {
	Date  time.Time
	Value float64
}

// InterpFunc overrides a curve's interpolation scheme. It receives the query
// date and the sorted pillars and returns the interpolated value, or NaN when
// the scheme defines no value at t.
type InterpFunc func(t time.Time, nodes []Node) float64

// Params configures curve construction. Zero values fall back to ACT/360 and
// the all-days calendar, matching overnight curve defaults.
type Params struct {
	Convention daycount.Convention
	Calendar   calendar.CalendarID
	Interp     InterpFunc
}

// Curve is a discount-factor curve over dated nodes. Factors are log-linearly
// interpolated between pillars; beyond the last pillar the final forward is
// extended, and before the first pillar the factor is undefined (zero), so
// projections degrade to NaN rather than inventing a value.
type Curve struct {
	nodes      []Node
	convention daycount.Convention
	cal        calendar.CalendarID
	interp     InterpFunc
	adOrder    int
}

// New builds a discount-factor curve from date->factor nodes. The earliest
// node defines the curve start and normally carries a factor of 1.0.
func New(nodes map[time.Time]float64, p Params) *Curve {
	if p.Convention == "" {
		p.Convention = daycount.Act360
	}
	if p.Calendar == "" {
		p.Calendar = calendar.All
	}
	return &Curve{
		nodes:      sortNodes(nodes),
		convention: p.Convention,
		cal:        p.Calendar,
		interp:     p.Interp,
	}
}

func sortNodes(m map[time.Time]float64) []Node {
	nodes := make([]Node, 0, len(m))
	for d, v := range m {
		nodes = append(nodes, Node{Date: d, Value: v})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Date.Before(nodes[j].Date) })
	return nodes
}

// bracket finds the two adjacent pillars around target, clamping to the
// nearest boundary pair outside the node range.
func bracket(nodes []Node, target time.Time) (Node, Node) {
	idx := sort.Search(len(nodes), func(i int) bool {
		return !nodes[i].Date.Before(target)
	})
	if idx <= 0 {
		return nodes[0], nodes[1]
	}
	if idx >= len(nodes) {
		return nodes[len(nodes)-2], nodes[len(nodes)-1]
	}
	return nodes[idx-1], nodes[idx]
}

// DF returns the discount factor at t.
func (c *Curve) DF(t time.Time) float64 {
	if c.interp != nil {
		return c.interp(t, c.nodes)
	}
	if len(c.nodes) == 0 {
		return math.NaN()
	}
	if t.Before(c.nodes[0].Date) {
		return 0.0
	}
	idx := sort.Search(len(c.nodes), func(i int) bool {
		return !c.nodes[i].Date.Before(t)
	})
	if idx < len(c.nodes) && c.nodes[idx].Date.Equal(t) {
		return c.nodes[idx].Value
	}
	if len(c.nodes) == 1 {
		return c.nodes[0].Value
	}
	n1, n2 := bracket(c.nodes, t)
	t1 := daycount.Days(c.nodes[0].Date, n1.Date)
	t2 := daycount.Days(c.nodes[0].Date, n2.Date)
	tt := daycount.Days(c.nodes[0].Date, t)
	forward := math.Log(n1.Value/n2.Value) / (t2 - t1)
	return n1.Value * math.Exp(-forward*(tt-t1))
}

// ForwardRate returns the simple annualized rate in percent implied by the
// discount factors over [start, end), measured at the curve's convention.
// Undefined factors propagate as NaN.
func (c *Curve) ForwardRate(start, end time.Time) float64 {
	d1 := c.DF(start)
	d2 := c.DF(end)
	if d1 == 0 || d2 == 0 || math.IsNaN(d1) || math.IsNaN(d2) {
		return math.NaN()
	}
	frac := daycount.Fraction(start, end, c.convention)
	if frac == 0 {
		return math.NaN()
	}
	return (d1/d2 - 1) / frac * 100
}

// Calendar returns the curve's business-day calendar.
func (c *Curve) Calendar() calendar.CalendarID {
	return c.cal
}

// Convention returns the curve's day count convention.
func (c *Curve) Convention() daycount.Convention {
	return c.convention
}

// SetADOrder records the numeric-derivative order callers want curve queries
// evaluated at. Plain values are unaffected; mutation is caller-synchronized
// (single writer, no concurrent pricing against the same curve while set).
func (c *Curve) SetADOrder(n int) {
	c.adOrder = n
}

// ADOrder returns the current numeric-derivative order.
func (c *Curve) ADOrder() int {
	return c.adOrder
}

// Nodes returns the sorted curve pillars. For diagnostics.
func (c *Curve) Nodes() []Node {
	out := make([]Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}
