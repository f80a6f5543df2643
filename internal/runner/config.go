package runner

var DefaultPercentiles = []int{50, 75, 90, 95, 99}

const (
	DefaultWarmupRuns = 0
	DefaultRuns       = 1
)

type Config struct {
	WarmupRuns  int   `json:"warmup_runs"`
	Runs        int   `json:"runs"`
	Percentiles []int `json:"percentiles"`
}

func DefaultConfig() Config {
	return Config{
		WarmupRuns:  DefaultWarmupRuns,
		Runs:        DefaultRuns,
		Percentiles: DefaultPercentiles,
	}
}

func (c Config) normalize() Config {
	if c.Runs < 1 {
		c.Runs = DefaultRuns
	}
	if c.WarmupRuns < 0 {
		c.WarmupRuns = 0
	}
	if len(c.Percentiles) == 0 {
		c.Percentiles = DefaultPercentiles
	}
	return c
}
