package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.svg")
	require.NoError(t, os.WriteFile(path, []byte("<svg/>"), 0644))

	data, err := Get(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	data, err = Get(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = Get(context.Background(), filepath.Join(t.TempDir(), "missing.svg"))
	assert.Error(t, err)
	_, err = Get(context.Background(), "")
	assert.Error(t, err)
}

func TestGetHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paths.svg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	data, err := Get(context.Background(), srv.URL+"/paths.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = Get(context.Background(), srv.URL+"/nope.svg")
	assert.ErrorContains(t, err, "HTTP 404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Get(ctx, srv.URL+"/paths.svg")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("HTTPS://example.com/a.svg"))
	assert.True(t, IsRemote("http://example.com/a.svg"))
	assert.False(t, IsRemote("paths/paths.svg"))
	assert.False(t, IsRemote("file:///tmp/a.svg"))
}
