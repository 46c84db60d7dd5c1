package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`
# scene
SVGFLOW_TEST_CONFIG="config/other.yaml"
export SVGFLOW_TEST_LOG='logs/x.txt'
SVGFLOW_TEST_KEEP=fromfile
=nokey
garbage
`), 0644))
	t.Setenv("SVGFLOW_TEST_KEEP", "fromenv")
	t.Setenv("SVGFLOW_TEST_CONFIG", "")
	t.Setenv("SVGFLOW_TEST_LOG", "")
	os.Unsetenv("SVGFLOW_TEST_CONFIG")
	os.Unsetenv("SVGFLOW_TEST_LOG")

	require.NoError(t, Load(path))
	assert.Equal(t, "config/other.yaml", os.Getenv("SVGFLOW_TEST_CONFIG"))
	assert.Equal(t, "logs/x.txt", os.Getenv("SVGFLOW_TEST_LOG"))
	assert.Equal(t, "fromenv", os.Getenv("SVGFLOW_TEST_KEEP"))
}

func TestLoadMissing(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))
}

func TestGet(t *testing.T) {
	t.Setenv("SVGFLOW_TEST_GET", "")
	assert.Equal(t, "def", Get("SVGFLOW_TEST_GET", "def"))
	t.Setenv("SVGFLOW_TEST_GET", "v")
	assert.Equal(t, "v", Get("SVGFLOW_TEST_GET", "def"))
}
