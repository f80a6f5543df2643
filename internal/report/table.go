package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Suite: %s ===\n", r.Meta.Suite)
	if r.Meta.Description != "" {
		fmt.Fprintf(tw, "%s\n", r.Meta.Description)
	}
	fmt.Fprintln(tw)

	writeCaseTable(tw, r)
	writeLatencyTable(tw, r)

	fmt.Fprintf(tw, "Passed %d/%d (%.2f%%), runs per case: %d, warmup: %d\n",
		r.Summary.Passed, r.Summary.Total, r.Summary.PassRate, r.Config.Runs, r.Config.WarmupRuns)

	return tw.Flush()
}

func writeCaseTable(tw *tabwriter.Writer, r *Report) {
	header := []string{"Case", "Expression", "Expected", "Actual", "RPN", "p50", "Status"}
	writeHeader(tw, header)

	for _, e := range r.Cases {
		status := "PASS"
		if !e.Passed {
			status = "FAIL"
		}
		row := []string{
			e.CaseID,
			quote(e.Expression),
			e.Expected,
			e.Actual,
			orDash(e.RPN),
			fmtMicros(e.Latency.Percentiles[50]),
			status,
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeLatencyTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Latency (all runs)\n\n")

	ps := make([]int, 0, len(r.Latency.Percentiles))
	for p := range r.Latency.Percentiles {
		ps = append(ps, p)
	}
	slices.Sort(ps)

	header := []string{"Min"}
	for _, p := range ps {
		header = append(header, fmt.Sprintf("p%d", p))
	}
	header = append(header, "Max", "Mean", "Stddev", "Samples")
	writeHeader(tw, header)

	s := r.Latency
	row := []string{fmtMicros(s.MinUs)}
	for _, p := range ps {
		row = append(row, fmtMicros(s.Percentiles[p]))
	}
	row = append(row, fmtMicros(s.MaxUs), fmtMicros(s.MeanUs), fmtMicros(s.StddevUs), fmt.Sprintf("%d", s.Samples))
	fmt.Fprintln(tw, strings.Join(row, "\t"))

	fmt.Fprintln(tw)
}

func writeHeader(tw *tabwriter.Writer, header []string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

// quote keeps empty and whitespace-only expressions visible in the table.
func quote(s string) string {
	return `"` + s + `"`
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
