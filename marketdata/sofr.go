package marketdata

// SOFRFixings is a bundled snapshot of published SOFR prints for the first
// quarter of 2023, keyed by publication date. Month ends and the February and
// March policy moves are visible in the data.
var SOFRFixings = map[string]float64{
	"2023-01-03": 4.30,
	"2023-01-04": 4.31,
	"2023-01-05": 4.31,
	"2023-01-06": 4.31,
	"2023-01-09": 4.31,
	"2023-01-10": 4.30,
	"2023-01-11": 4.30,
	"2023-01-12": 4.30,
	"2023-01-13": 4.30,
	"2023-01-17": 4.31,
	"2023-01-18": 4.31,
	"2023-01-19": 4.30,
	"2023-01-20": 4.30,
	"2023-01-23": 4.30,
	"2023-01-24": 4.30,
	"2023-01-25": 4.30,
	"2023-01-26": 4.30,
	"2023-01-27": 4.30,
	"2023-01-30": 4.30,
	"2023-01-31": 4.31,
	"2023-02-01": 4.31,
	"2023-02-02": 4.55,
	"2023-02-03": 4.55,
	"2023-02-06": 4.55,
	"2023-02-07": 4.55,
	"2023-02-08": 4.55,
	"2023-02-09": 4.55,
	"2023-02-10": 4.55,
	"2023-02-13": 4.55,
	"2023-02-14": 4.55,
	"2023-02-15": 4.55,
	"2023-02-16": 4.55,
	"2023-02-17": 4.55,
	"2023-02-21": 4.55,
	"2023-02-22": 4.55,
	"2023-02-23": 4.55,
	"2023-02-24": 4.55,
	"2023-02-27": 4.55,
	"2023-02-28": 4.56,
	"2023-03-01": 4.55,
	"2023-03-02": 4.55,
	"2023-03-03": 4.55,
	"2023-03-06": 4.55,
	"2023-03-07": 4.55,
	"2023-03-08": 4.55,
	"2023-03-09": 4.55,
	"2023-03-10": 4.55,
	"2023-03-13": 4.55,
	"2023-03-14": 4.55,
	"2023-03-15": 4.57,
	"2023-03-16": 4.57,
	"2023-03-17": 4.55,
	"2023-03-20": 4.55,
	"2023-03-21": 4.55,
	"2023-03-22": 4.55,
	"2023-03-23": 4.80,
	"2023-03-24": 4.80,
	"2023-03-27": 4.80,
	"2023-03-28": 4.80,
	"2023-03-29": 4.80,
	"2023-03-30": 4.82,
	"2023-03-31": 4.87,
}
