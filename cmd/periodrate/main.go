package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/albertvillanova/rateslib/calendar"
	"github.com/albertvillanova/rateslib/curve"
	"github.com/albertvillanova/rateslib/daycount"
	"github.com/albertvillanova/rateslib/defaults"
	"github.com/albertvillanova/rateslib/marketdata"
	"github.com/albertvillanova/rateslib/period"
)

type periodInput struct {
	TaskID               string          `json:"task_id,omitempty"`
	Start                string          `json:"start"`
	End                  string          `json:"end"`
	Payment              string          `json:"payment"`
	Notional             float64         `json:"notional,omitempty"`
	Currency             string          `json:"currency,omitempty"`
	Convention           string          `json:"convention,omitempty"`
	Stub                 bool            `json:"stub,omitempty"`
	FixingMethod         string          `json:"fixing_method,omitempty"`
	MethodParam          int             `json:"method_param,omitempty"`
	SpreadCompoundMethod string          `json:"spread_compound_method,omitempty"`
	FloatSpread          float64         `json:"float_spread,omitempty"`
	Fixings              json.RawMessage `json:"fixings,omitempty"`

	// UsePublishedFixings loads the bundled overnight prints published up to
	// the period start as a fixings series.
	UsePublishedFixings bool `json:"use_published_fixings,omitempty"`

	Curve *curveJSON `json:"curve,omitempty"`

	// Table requests the per-fixing exposure breakdown with the aggregate row.
	Table bool `json:"table,omitempty"`
}

type curveJSON struct {
	// Type selects "df" for discount factor nodes or "line" for direct rate
	// values. Defaults to "df".
	Type       string             `json:"type,omitempty"`
	Nodes      map[string]float64 `json:"nodes"`
	Convention string             `json:"convention,omitempty"`
	Calendar   string             `json:"calendar,omitempty"`
}

type tableRowJSON struct {
	Date     string   `json:"date"`
	Notional float64  `json:"notional"`
	DCF      *float64 `json:"dcf,omitempty"`
	Rate     float64  `json:"rate"`
}

type periodOutput struct {
	TaskID        string         `json:"task_id,omitempty"`
	Rate          *float64       `json:"rate,omitempty"`
	Cashflow      *float64       `json:"cashflow,omitempty"`
	NPV           *float64       `json:"npv,omitempty"`
	AnalyticDelta *float64       `json:"analytic_delta,omitempty"`
	Table         []tableRowJSON `json:"table,omitempty"`
	Error         string         `json:"error,omitempty"`
}

func main() {
	_ = godotenv.Load()
	defaults.SetConfig(defaults.FromEnv())

	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	verbose := flag.Bool("v", false, "Log fixing warnings to stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: periodrate -input <path>")
		fmt.Fprintln(os.Stderr, "Price a floating rate period: rate, cashflow, NPV and fixing exposure table.")
		return
	}

	if *verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		period.SetLogger(logger)
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: periodrate -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]periodOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			outputs = append(outputs, periodOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in periodInput) (*periodOutput, error) {
	start, err := time.Parse("2006-01-02", in.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %v", err)
	}
	end, err := time.Parse("2006-01-02", in.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %v", err)
	}
	payment := end
	if in.Payment != "" {
		if payment, err = time.Parse("2006-01-02", in.Payment); err != nil {
			return nil, fmt.Errorf("invalid payment: %v", err)
		}
	}

	fixings, err := parseFixings(in, start)
	if err != nil {
		return nil, err
	}

	p, err := period.NewFloatPeriod(period.FloatPeriodParams{
		Start:                start,
		End:                  end,
		Payment:              payment,
		Notional:             in.Notional,
		Currency:             in.Currency,
		Convention:           daycount.Convention(in.Convention),
		Stub:                 in.Stub,
		FloatSpread:          in.FloatSpread,
		FixingMethod:         period.FixingMethod(in.FixingMethod),
		MethodParam:          in.MethodParam,
		SpreadCompoundMethod: period.SpreadCompound(in.SpreadCompoundMethod),
		Fixings:              fixings,
	})
	if err != nil {
		return nil, err
	}

	crv, err := buildCurve(in.Curve)
	if err != nil {
		return nil, err
	}

	out := &periodOutput{TaskID: in.TaskID}
	rate, err := p.Rate(crv)
	if err != nil {
		return nil, err
	}
	out.Rate = &rate
	if cf, err := p.Cashflow(crv); err == nil {
		out.Cashflow = &cf
	}
	if npv, err := p.NPV(crv, nil, nil, ""); err == nil {
		out.NPV = &npv
	}
	if delta, err := p.AnalyticDelta(crv, nil, nil, ""); err == nil {
		out.AnalyticDelta = &delta
	}
	if in.Table {
		rows, err := p.FixingsTableTotal(crv)
		if err != nil {
			return nil, err
		}
		out.Table = make([]tableRowJSON, len(rows))
		for i, r := range rows {
			out.Table[i] = tableRowJSON{
				Date:     r.Date.Format("2006-01-02"),
				Notional: r.Notional,
				DCF:      r.DCF,
				Rate:     r.Rate,
			}
		}
	}
	return out, nil
}

// parseFixings accepts a scalar, an ordered array, or a date-keyed object,
// mirroring the fixings shapes the period engine takes.
func parseFixings(in periodInput, start time.Time) (period.Fixings, error) {
	if in.UsePublishedFixings {
		if len(in.Fixings) != 0 {
			return nil, fmt.Errorf("fixings and use_published_fixings are mutually exclusive")
		}
		return marketdata.DefaultFeed().SeriesTo(start), nil
	}
	raw := bytes.TrimSpace(in.Fixings)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch raw[0] {
	case '[':
		var vals []float64
		if err := json.Unmarshal(raw, &vals); err != nil {
			return nil, fmt.Errorf("invalid fixings array: %v", err)
		}
		return period.FixingValues(vals), nil
	case '{':
		var byDate map[string]float64
		if err := json.Unmarshal(raw, &byDate); err != nil {
			return nil, fmt.Errorf("invalid fixings object: %v", err)
		}
		m := make(map[time.Time]float64, len(byDate))
		for k, v := range byDate {
			d, err := time.Parse("2006-01-02", k)
			if err != nil {
				return nil, fmt.Errorf("invalid fixings date %s: %v", k, err)
			}
			m[d] = v
		}
		return period.SeriesFromMap(m), nil
	default:
		var val float64
		if err := json.Unmarshal(raw, &val); err != nil {
			return nil, fmt.Errorf("invalid fixings value: %v", err)
		}
		return period.SingleFixing(val), nil
	}
}

func buildCurve(cj *curveJSON) (period.RateCurve, error) {
	if cj == nil {
		return nil, nil
	}
	nodes := make(map[time.Time]float64, len(cj.Nodes))
	for k, v := range cj.Nodes {
		d, err := time.Parse("2006-01-02", k)
		if err != nil {
			return nil, fmt.Errorf("invalid curve node date %s: %v", k, err)
		}
		nodes[d] = v
	}
	params := curve.Params{
		Convention: daycount.Convention(cj.Convention),
		Calendar:   calendar.CalendarID(cj.Calendar),
	}
	if cj.Type == "line" {
		return curve.NewLine(nodes, params), nil
	}
	return curve.New(nodes, params), nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]periodInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []periodInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input periodInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []periodInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(periodOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
