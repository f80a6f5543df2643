package report

import (
	"runtime"
	"time"

	"github.com/sdsdsdw/shunting-yard-algo/internal/runner"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/utils"
)

type Report struct {
	Meta    Meta           `json:"meta"`
	Summary Summary        `json:"summary"`
	Config  runner.Config  `json:"config"`
	Latency LatencySummary `json:"latency"`
	Cases   []Entry        `json:"cases"`
}

type Meta struct {
	Suite       string          `json:"suite"`
	Description string          `json:"description,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`
}

// LatencySummary is LatencyStats flattened to microseconds for readers of the JSON.
type LatencySummary struct {
	MinUs       float64         `json:"min_us"`
	MaxUs       float64         `json:"max_us"`
	MeanUs      float64         `json:"mean_us"`
	MedianUs    float64         `json:"median_us"`
	StddevUs    float64         `json:"stddev_us"`
	Percentiles map[int]float64 `json:"percentiles_us"`
	Samples     int             `json:"samples"`
}

type Entry struct {
	CaseID     string         `json:"case_id"`
	Expression string         `json:"expression"`
	Expected   string         `json:"expected"`
	Actual     string         `json:"actual"`
	RPN        string         `json:"rpn,omitempty"`
	Error      string         `json:"error,omitempty"`
	Passed     bool           `json:"passed"`
	Latency    LatencySummary `json:"latency"`
}

// Build turns a runner result into its printable form.
func Build(res *runner.SuiteResult) *Report {
	r := &Report{
		Meta: Meta{
			Suite:       res.SuiteName,
			Description: res.Description,
			Timestamp:   res.StartedAt,
			Environment: NewEnvironmentInfo(),
		},
		Config:  res.Config,
		Latency: summarize(res.Latency),
	}

	for _, c := range res.Cases {
		r.Cases = append(r.Cases, Entry{
			CaseID:     c.CaseID,
			Expression: c.Expression,
			Expected:   outcome(c.Expected, c.ExpectedKind),
			Actual:     outcome(c.Actual, c.ActualKind),
			RPN:        c.RPN,
			Error:      c.Error,
			Passed:     c.Passed,
			Latency:    summarize(c.Latency),
		})
	}

	r.Summary = Summary{
		Total:  len(res.Cases),
		Passed: res.Passed(),
		Failed: res.Failed(),
	}
	if r.Summary.Total > 0 {
		r.Summary.PassRate = utils.RoundDecimal(float64(r.Summary.Passed)/float64(r.Summary.Total)*100, 2)
	}

	return r
}

func summarize(s runner.LatencyStats) LatencySummary {
	ls := LatencySummary{
		MinUs:       micros(s.Min),
		MaxUs:       micros(s.Max),
		MeanUs:      micros(s.Mean),
		MedianUs:    micros(s.Median),
		StddevUs:    micros(s.Stddev),
		Percentiles: make(map[int]float64, len(s.Percentiles)),
		Samples:     s.SampleCount,
	}
	for p, d := range s.Percentiles {
		ls.Percentiles[p] = micros(d)
	}
	return ls
}

func micros(d time.Duration) float64 {
	return utils.RoundDecimal(float64(d.Nanoseconds())/1000, 3)
}
