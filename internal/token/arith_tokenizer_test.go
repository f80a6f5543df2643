package token

import (
	"errors"
	"strings"
	"testing"

	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokWant struct {
	typ   Type
	value string
}

func wantsOf(tokens []Token) []tokWant {
	out := make([]tokWant, len(tokens))
	for i, tok := range tokens {
		out[i] = tokWant{tok.Type, tok.Value}
	}
	return out
}

func TestArithTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokWant
	}{
		{
			name:  "leading unary minus",
			input: "-5 + 3",
			expected: []tokWant{
				{OPERATOR, "~"}, {NUMBER, "5"}, {OPERATOR, "+"}, {NUMBER, "3"},
			},
		},
		{
			name:  "binary minus",
			input: "5 - 3",
			expected: []tokWant{
				{NUMBER, "5"}, {OPERATOR, "-"}, {NUMBER, "3"},
			},
		},
		{
			name:  "binary then unary minus",
			input: "5 - -3",
			expected: []tokWant{
				{NUMBER, "5"}, {OPERATOR, "-"}, {OPERATOR, "~"}, {NUMBER, "3"},
			},
		},
		{
			name:  "minus after left paren",
			input: "(-2)",
			expected: []tokWant{
				{LPAREN, "("}, {OPERATOR, "~"}, {NUMBER, "2"}, {RPAREN, ")"},
			},
		},
		{
			name:  "minus after right paren is binary",
			input: "(2)-1",
			expected: []tokWant{
				{LPAREN, "("}, {NUMBER, "2"}, {RPAREN, ")"}, {OPERATOR, "-"}, {NUMBER, "1"},
			},
		},
		{
			name:  "multi digit numbers keep leading zeros",
			input: "007*120/4",
			expected: []tokWant{
				{NUMBER, "007"}, {OPERATOR, "*"}, {NUMBER, "120"}, {OPERATOR, "/"}, {NUMBER, "4"},
			},
		},
		{
			name:  "tabs and newline are separators",
			input: "1\t+\t2\r\n",
			expected: []tokWant{
				{NUMBER, "1"}, {OPERATOR, "+"}, {NUMBER, "2"},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []tokWant{},
		},
		{
			name:     "whitespace only",
			input:    "   \t ",
			expected: []tokWant{},
		},
	}

	tokenizer := NewArithTokenizer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tokenizer.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, wantsOf(tokens))
		})
	}
}

func TestArithTokenizer_OperatorKinds(t *testing.T) {
	tokens, err := Tokenize("1+2-3*4/-5")
	require.NoError(t, err)

	var ops []Op
	for _, tok := range tokens {
		if tok.IsOperator() {
			ops = append(ops, tok.Op)
		}
	}
	assert.Equal(t, []Op{Add, Sub, Mul, Div, Neg}, ops)
}

func TestArithTokenizer_Positions(t *testing.T) {
	tokens, err := Tokenize(" 12 +(3)")
	require.NoError(t, err)

	positions := make([]int, len(tokens))
	for i, tok := range tokens {
		positions[i] = tok.Pos
	}
	assert.Equal(t, []int{1, 4, 5, 6, 7}, positions)
}

func TestArithTokenizer_InvalidCharacter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		char  rune
		pos   int
	}{
		{"letter", "3 + x", 'x', 4},
		{"caret", "2^3", '^', 1},
		{"decimal point", "1.5", '.', 1},
		{"tilde is not accepted as input", "~5", '~', 0},
		{"non ascii rune", "2 × 3", '×', 2},
		{"non ascii digit", "١+1", '١', 0},
		{"vertical tab", "1\v+1", '\v', 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.True(t, errors.Is(err, exprerr.ErrInvalidCharacter))

			var exprErr *exprerr.Error
			require.True(t, errors.As(err, &exprErr))
			assert.Equal(t, tt.char, exprErr.Char)
			assert.Equal(t, tt.pos, exprErr.Pos)
		})
	}
}

func TestArithTokenizer_Reusable(t *testing.T) {
	tokenizer := NewArithTokenizer()

	_, err := tokenizer.Tokenize("1 + a")
	require.Error(t, err)

	tokens, err := tokenizer.Tokenize("-1")
	require.NoError(t, err)
	assert.Equal(t, []tokWant{{OPERATOR, "~"}, {NUMBER, "1"}}, wantsOf(tokens))
}

func TestSource_RetokenizesToSameSequence(t *testing.T) {
	inputs := []string{
		"-5 + 3",
		"5 - -3",
		"(3 + 4) * 2",
		"--(1)/-(2*3)",
		"10 / 2 - 3 * -(4 + 1)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Tokenize(input)
			require.NoError(t, err)

			compact := strings.ReplaceAll(Source(first), " ", "")
			second, err := Tokenize(compact)
			require.NoError(t, err)

			assert.Equal(t, wantsOf(first), wantsOf(second))
		})
	}
}

func TestFormat(t *testing.T) {
	tokens, err := Tokenize("-5+3")
	require.NoError(t, err)

	assert.Equal(t, "~ 5 + 3", Format(tokens))
	assert.Equal(t, "- 5 + 3", Source(tokens))
	assert.Equal(t, "", Format(nil))
}
