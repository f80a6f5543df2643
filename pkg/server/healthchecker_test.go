package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedHealth bool

func (f fixedHealth) Healthy(context.Context) bool {
	return bool(f)
}

func TestCompositeHealthChecker(t *testing.T) {
	ctx := context.Background()

	hc := NewCompositeHealthChecker()
	assert.True(t, hc.Healthy(ctx))

	hc.Register(NewOkHealthChecker())
	assert.True(t, hc.Healthy(ctx))

	hc.Register(fixedHealth(false))
	assert.False(t, hc.Healthy(ctx))
}
