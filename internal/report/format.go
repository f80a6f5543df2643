package report

import (
	"strconv"
)

func outcome(value *int64, kind string) string {
	if value != nil {
		return strconv.FormatInt(*value, 10)
	}
	if kind != "" {
		return kind
	}
	return "-"
}

func fmtMicros(us float64) string {
	switch {
	case us == 0:
		return "-"
	case us < 1000:
		return strconv.FormatFloat(us, 'f', 1, 64) + "µs"
	case us < 1_000_000:
		return strconv.FormatFloat(us/1000, 'f', 2, 64) + "ms"
	default:
		return strconv.FormatFloat(us/1_000_000, 'f', 2, 64) + "s"
	}
}
