package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CALC_TEST_PORT=9191\nCALC_TEST_KEEP=fromfile\n"), 0o644))

	t.Setenv("ENV_PATH", path)
	t.Setenv("CALC_TEST_PORT", "")
	require.NoError(t, os.Unsetenv("CALC_TEST_PORT"))
	t.Setenv("CALC_TEST_KEEP", "fromenv")

	require.NoError(t, LoadDotEnv("local", "ignored.env"))
	assert.Equal(t, "9191", os.Getenv("CALC_TEST_PORT"))
	assert.Equal(t, "fromenv", os.Getenv("CALC_TEST_KEEP"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	t.Setenv("ENV_PATH", "")
	missing := filepath.Join(t.TempDir(), "missing.env")

	assert.Error(t, LoadDotEnv("local", missing))
	assert.Error(t, LoadDotEnv("", missing))
	assert.NoError(t, LoadDotEnv("production", missing))
}
