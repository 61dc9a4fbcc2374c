package defaults

import (
	"os"
	"strconv"
	"strings"

	"github.com/albertvillanova/rateslib/daycount"
)

// Config holds library-wide pricing defaults applied when period parameters
// are left unset.
type Config struct {
	// Notional is the default period notional in currency units.
	Notional float64

	// Currency is the default settlement currency (lowercase ISO code).
	Currency string

	// Convention is the default accrual day count convention.
	Convention daycount.Convention

	// FixingMethod is the default floating fixing method tag.
	FixingMethod string

	// SpreadCompoundMethod is the default spread compounding tag.
	SpreadCompoundMethod string

	// MethodParam is the default business-day parameter for fixing methods
	// that take one. Lockout periods must set it explicitly.
	MethodParam int
}

// DefaultConfig provides market-standard default values.
var DefaultConfig = Config{
	Notional:             1e6,
	Currency:             "usd",
	Convention:           daycount.Act360,
	FixingMethod:         "rfr_payment_delay",
	SpreadCompoundMethod: "none_simple",
	MethodParam:          0,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}

// FromEnv returns the active configuration with RATESLIB_* environment
// overrides applied. Call godotenv.Load (or equivalent) first when defaults
// live in a .env file.
func FromEnv() Config {
	c := cfg
	if v := os.Getenv("RATESLIB_NOTIONAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Notional = f
		}
	}
	if v := os.Getenv("RATESLIB_CURRENCY"); v != "" {
		c.Currency = strings.ToLower(v)
	}
	if v := os.Getenv("RATESLIB_CONVENTION"); v != "" {
		c.Convention = daycount.Convention(strings.ToUpper(v))
	}
	if v := os.Getenv("RATESLIB_FIXING_METHOD"); v != "" {
		c.FixingMethod = strings.ToLower(v)
	}
	if v := os.Getenv("RATESLIB_SPREAD_COMPOUND_METHOD"); v != "" {
		c.SpreadCompoundMethod = strings.ToLower(v)
	}
	return c
}

// Headers maps cashflow record fields to their display labels.
var Headers = map[string]string{
	"type":        "Type",
	"stub_type":   "Period",
	"a_acc_start": "Acc Start",
	"a_acc_end":   "Acc End",
	"payment":     "Payment",
	"notional":    "Notional",
	"currency":    "Ccy",
	"convention":  "Convention",
	"dcf":         "DCF",
	"df":          "DF",
	"rate":        "Rate",
	"spread":      "Spread",
	"cashflow":    "Cashflow",
	"npv":         "NPV",
	"fx":          "FX Rate",
	"npv_fx":      "NPV Ccy",
}

// HeaderOrder lists record fields in display order.
var HeaderOrder = []string{
	"type", "stub_type", "currency", "a_acc_start", "a_acc_end", "payment",
	"convention", "dcf", "df", "notional", "rate", "spread", "cashflow",
	"npv", "fx", "npv_fx",
}
