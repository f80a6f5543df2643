package runner

import "time"

type CaseResult struct {
	CaseID       string       `json:"case_id"`
	Expression   string       `json:"expression"`
	Expected     *int64       `json:"expected,omitempty"`
	ExpectedKind string       `json:"expected_kind,omitempty"`
	Actual       *int64       `json:"actual,omitempty"`
	ActualKind   string       `json:"actual_kind,omitempty"`
	Error        string       `json:"error,omitempty"`
	RPN          string       `json:"rpn,omitempty"`
	Passed       bool         `json:"passed"`
	Latency      LatencyStats `json:"latency"`
}

type SuiteResult struct {
	SuiteName   string        `json:"suite_name"`
	Description string        `json:"description,omitempty"`
	Config      Config        `json:"config"`
	Cases       []CaseResult  `json:"cases"`
	Latency     LatencyStats  `json:"latency"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

func (r *SuiteResult) Passed() int {
	n := 0
	for _, c := range r.Cases {
		if c.Passed {
			n++
		}
	}
	return n
}

func (r *SuiteResult) Failed() int {
	return len(r.Cases) - r.Passed()
}

func (r *SuiteResult) AllPassed() bool {
	return r.Failed() == 0
}
