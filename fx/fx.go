package fx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPair reports a currency pair with no quoted or derivable rate.
var ErrNoPair = errors.New("fx pair not available")

// Rates holds spot FX rates keyed by concatenated lowercase pairs
// ("usdnok" -> 10 means 1 USD buys 10 NOK). Inverse pairs and one-hop
// crosses through a shared currency are derived on lookup.
type Rates struct {
	rates map[string]float64

	// Base is the default reporting currency for callers that do not
	// request one explicitly.
	Base string
}

// NewRates builds an FX rate set from pair->rate quotes.
func NewRates(pairs map[string]float64, base string) *Rates {
	r := &Rates{
		rates: make(map[string]float64, len(pairs)),
		Base:  strings.ToLower(base),
	}
	for pair, v := range pairs {
		r.rates[strings.ToLower(pair)] = v
	}
	return r
}

// BaseCurrency returns the default reporting currency.
func (r *Rates) BaseCurrency() string {
	return r.Base
}

// Rate returns the conversion rate from one currency into another.
func (r *Rates) Rate(from, to string) (float64, error) {
	from = strings.ToLower(from)
	to = strings.ToLower(to)
	if from == to {
		return 1.0, nil
	}
	if v, ok := r.rates[from+to]; ok {
		return v, nil
	}
	if v, ok := r.rates[to+from]; ok {
		return 1.0 / v, nil
	}
	for _, mid := range r.currencies() {
		if mid == from || mid == to {
			continue
		}
		leg1, ok1 := r.direct(from, mid)
		leg2, ok2 := r.direct(mid, to)
		if ok1 && ok2 {
			return leg1 * leg2, nil
		}
	}
	return 0, fmt.Errorf("Rate %s/%s: %w", from, to, ErrNoPair)
}

// Convert converts an amount between currencies.
func (r *Rates) Convert(amount float64, from, to string) (float64, error) {
	rate, err := r.Rate(from, to)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}

func (r *Rates) direct(from, to string) (float64, bool) {
	if v, ok := r.rates[from+to]; ok {
		return v, true
	}
	if v, ok := r.rates[to+from]; ok {
		return 1.0 / v, true
	}
	return 0, false
}

func (r *Rates) currencies() []string {
	seen := make(map[string]struct{}, 2*len(r.rates))
	var out []string
	for pair := range r.rates {
		if len(pair) != 6 {
			continue
		}
		for _, ccy := range []string{pair[:3], pair[3:]} {
			if _, ok := seen[ccy]; !ok {
				seen[ccy] = struct{}{}
				out = append(out, ccy)
			}
		}
	}
	return out
}

// Scalar is a fixed conversion multiplier applied regardless of the pair,
// for callers that pass a bare float as the fx argument.
type Scalar float64

// Rate returns the multiplier for any pair.
func (s Scalar) Rate(_, _ string) (float64, error) {
	return float64(s), nil
}
