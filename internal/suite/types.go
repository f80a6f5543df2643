package suite

import "github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"

// Suite is a named list of expressions with their expected outcomes.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cases       []Case `yaml:"cases"`
}

// Case expects either a value or an error kind, never both.
type Case struct {
	ID          string        `yaml:"id"`
	Description string        `yaml:"description,omitempty"`
	Expression  string        `yaml:"expression"`
	Expect      *int64        `yaml:"expect,omitempty"`
	Error       *exprerr.Kind `yaml:"error,omitempty"`
}

func (c *Case) ExpectsError() bool {
	return c.Error != nil
}

// Expressions returns the expression of every case in suite order.
func (s *Suite) Expressions() []string {
	out := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		out[i] = c.Expression
	}
	return out
}
