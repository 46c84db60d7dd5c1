package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingOrInvalid(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(filepath.Join(dir, "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	p, err = Load(bad)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
	_, err = os.Stat(filepath.Join(dir, "nope.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "viewer.json")
	want := Prefs{ShowFPS: true, ShowMode: true, Wireframe: true}
	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"show_fps": true}`), 0644))
	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, got.ShowFPS)
	assert.True(t, got.ShowAxes)
}
