package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHealth bool

func (h staticHealth) Healthy(context.Context) bool {
	return bool(h)
}

func testConfig() *Config {
	return &Config{Port: "8080", CorsOrigins: []string{"*"}, MaxExpressionLength: 16}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV_PATH", "testdata/missing.env")
	t.Setenv("ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("USE_HTTP2", "true")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("MAX_EXPRESSION_LENGTH", "128")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.UseHttp2)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
	assert.Equal(t, 128, cfg.MaxExpressionLength)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_PATH", "testdata/missing.env")
	t.Setenv("ENV", "test")
	t.Setenv("PORT", "")
	t.Setenv("USE_HTTP2", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("MAX_EXPRESSION_LENGTH", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.UseHttp2)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.Equal(t, DefaultMaxExpressionLength, cfg.MaxExpressionLength)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port not a number", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"max length zero", "MAX_EXPRESSION_LENGTH", "0"},
		{"max length garbage", "MAX_EXPRESSION_LENGTH", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV_PATH", "testdata/missing.env")
			t.Setenv("ENV", "test")
			t.Setenv("PORT", "8080")
			t.Setenv("MAX_EXPRESSION_LENGTH", "")
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name         string
		healthy      bool
		expectedCode int
		expectedBody string
	}{
		{"healthy", true, http.StatusOK, `"status":"ok"`},
		{"unhealthy", false, http.StatusServiceUnavailable, `"status":"unhealthy"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testConfig(), staticHealth(tt.healthy)).
				SetupMiddlewares().
				SetupErrorHandler().
				SetupHealthChecks("/health")

			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := New(testConfig(), staticHealth(true)).SetupMiddlewares().SetupErrorHandler()
	s.Echo.POST("/echo", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	big := strings.Repeat("1", 8*1024)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(big))
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "2K", bodyLimit(16))
}

func TestShutdownSignal(t *testing.T) {
	s := New(testConfig(), staticHealth(true))

	select {
	case <-s.ShutdownSignal():
		t.Fatal("shutdown signalled before start")
	default:
	}

	s.cancel()
	<-s.ShutdownSignal()
	assert.Error(t, s.Context().Err())
}
