package daycount_test

import (
	"math"
	"testing"
	"time"

	"github.com/albertvillanova/rateslib/daycount"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValid(t *testing.T) {
	t.Parallel()

	for _, c := range []daycount.Convention{
		daycount.Act360, daycount.Act365F, daycount.Thirty360, daycount.ThirtyE360,
	} {
		if !daycount.Valid(c) {
			t.Fatalf("%q should be valid", c)
		}
	}
	if daycount.Valid("ACT/ACT") {
		t.Fatal("unsupported convention reported valid")
	}
}

func TestDays(t *testing.T) {
	t.Parallel()

	if got := daycount.Days(date(2022, 1, 1), date(2022, 1, 31)); got != 30 {
		t.Fatalf("days = %v, want 30", got)
	}
	if got := daycount.Days(date(2022, 1, 1), date(2023, 1, 1)); got != 365 {
		t.Fatalf("days = %v, want 365", got)
	}
}

func TestFraction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		start, end time.Time
		conv       daycount.Convention
		want       float64
	}{
		{"act360 quarter", date(2022, 1, 1), date(2022, 4, 1), daycount.Act360, 90.0 / 360},
		{"act365f quarter", date(2022, 1, 1), date(2022, 4, 1), daycount.Act365F, 90.0 / 365},
		{"act360 single day", date(2022, 1, 1), date(2022, 1, 2), daycount.Act360, 1.0 / 360},
		{"30/360 full year", date(2022, 1, 15), date(2023, 1, 15), daycount.Thirty360, 1.0},
		{"30/360 month end", date(2022, 1, 31), date(2022, 2, 28), daycount.Thirty360, 28.0 / 360},
		{"30e/360 both ends capped", date(2022, 7, 31), date(2022, 8, 31), daycount.ThirtyE360, 30.0 / 360},
		{"30/360 across year", date(2022, 11, 30), date(2023, 2, 28), daycount.Thirty360, 88.0 / 360},
	}
	for _, tc := range cases {
		got := daycount.Fraction(tc.start, tc.end, tc.conv)
		if math.Abs(got-tc.want) > 1e-15 {
			t.Fatalf("%s: fraction = %.12f, want %.12f", tc.name, got, tc.want)
		}
	}

	// Unknown conventions degrade to actual/365.
	got := daycount.Fraction(date(2022, 1, 1), date(2022, 1, 2), "BOGUS")
	if math.Abs(got-1.0/365) > 1e-15 {
		t.Fatalf("fallback fraction = %v", got)
	}
}
