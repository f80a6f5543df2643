package calc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTrace_Success(t *testing.T) {
	r, err := Run("-5 + 3")

	var buf bytes.Buffer
	WriteTrace(&buf, r, err)
	out := buf.String()

	assert.Contains(t, out, "Expression:")
	assert.Contains(t, out, "-5 + 3")
	assert.Contains(t, out, "operator (unary)")
	assert.Contains(t, out, "number")
	assert.Contains(t, out, "5 ~ 3 +")
	assert.Contains(t, out, "Result:")
	assert.Contains(t, out, "-2")
}

func TestWriteTrace_Failure(t *testing.T) {
	r, err := Run("(1 + 2")

	var buf bytes.Buffer
	WriteTrace(&buf, r, err)
	out := buf.String()

	assert.Contains(t, out, "paren")
	assert.NotContains(t, out, "RPN:")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "mismatched parentheses")
}
