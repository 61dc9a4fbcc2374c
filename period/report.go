package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/albertvillanova/rateslib/defaults"
)

// CashflowReport is a flat record of a single period for tabular output.
// Pointer fields are nil when the value cannot be determined from the inputs,
// for example a discount factor without a discount curve.
type CashflowReport struct {
	Type       string
	StubType   string
	Currency   string
	AccStart   *time.Time
	AccEnd     *time.Time
	Payment    time.Time
	Convention string
	DCF        *float64
	Notional   float64
	DF         *float64
	Rate       *float64
	Spread     *float64
	Cashflow   *float64
	NPV        *float64
	FXRate     float64
	NPVBase    *float64
}

// Row formats the record for the given header keys, in order. Unknown keys and
// absent values render as empty cells.
func (r CashflowReport) Row(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = r.cell(k)
	}
	return out
}

func (r CashflowReport) cell(key string) string {
	switch key {
	case "type":
		return r.Type
	case "stub_type":
		return r.StubType
	case "currency":
		return r.Currency
	case "a_acc_start":
		return fmtDate(r.AccStart)
	case "a_acc_end":
		return fmtDate(r.AccEnd)
	case "payment":
		return r.Payment.Format("2006-01-02")
	case "convention":
		return r.Convention
	case "dcf":
		return fmtRate(r.DCF)
	case "notional":
		return fmt.Sprintf("%.2f", r.Notional)
	case "df":
		return fmtRate(r.DF)
	case "rate":
		return fmtRate(r.Rate)
	case "spread":
		return fmtRate(r.Spread)
	case "cashflow":
		return fmtMoney(r.Cashflow)
	case "npv":
		return fmtMoney(r.NPV)
	case "fx":
		return fmt.Sprintf("%.6f", r.FXRate)
	case "npv_fx":
		return fmtMoney(r.NPVBase)
	}
	return ""
}

// HeaderRow returns the display names for the default column order.
func HeaderRow() []string {
	out := make([]string, len(defaults.HeaderOrder))
	for i, k := range defaults.HeaderOrder {
		out[i] = defaults.Headers[k]
	}
	return out
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtRate(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.6f", *v)
}

func fmtMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func fptr(v float64) *float64 { return &v }

func tptr(t time.Time) *time.Time { return &t }

func upper(s string) string { return strings.ToUpper(s) }
