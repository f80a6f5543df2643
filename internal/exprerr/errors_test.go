package exprerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *exprerr.Error
		expected string
	}{
		{"invalid character", exprerr.NewInvalidCharacter('x', 3), `invalid character 'x' at position 3`},
		{"mismatched", exprerr.ErrMismatchedParentheses, "mismatched parentheses"},
		{"custom message", exprerr.New(exprerr.InvalidExpression, "operator + needs 2 operands"), "operator + needs 2 operands"},
		{"formatted", exprerr.Newf(exprerr.NumericOverflow, "literal %s out of range", "99"), "literal 99 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_IsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("evaluate: %w", exprerr.New(exprerr.DivisionByZero, "cannot divide 10 by zero"))

	assert.True(t, errors.Is(err, exprerr.ErrDivisionByZero))
	assert.False(t, errors.Is(err, exprerr.ErrInvalidExpression))
	assert.Equal(t, exprerr.DivisionByZero, exprerr.KindOf(err))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, exprerr.Unknown, exprerr.KindOf(errors.New("boom")))
	assert.Equal(t, exprerr.Unknown, exprerr.KindOf(nil))
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range []exprerr.Kind{
		exprerr.InvalidCharacter,
		exprerr.MismatchedParentheses,
		exprerr.InvalidExpression,
		exprerr.DivisionByZero,
		exprerr.NumericOverflow,
	} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var parsed exprerr.Kind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, k, parsed)
	}
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := exprerr.ParseKind("unknown")
	assert.Error(t, err)

	_, err = exprerr.ParseKind("overflow")
	assert.Error(t, err)
}
