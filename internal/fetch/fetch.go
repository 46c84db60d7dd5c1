package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultUserAgent = "svgflow/1.0"
	defaultTimeout   = 60 * time.Second
	// maxBody caps remote assets; the drawings and textures this loads are small.
	maxBody = 64 << 20
)

// IsRemote reports whether src is an http(s) URL rather than a local path.
func IsRemote(src string) bool {
	s := strings.ToLower(src)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Get returns the bytes behind src: an http(s) URL, a file:// URL or a plain file path.
// Remote fetches honour ctx cancellation.
func Get(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("fetch: empty source")
	}
	if !IsRemote(src) {
		path := strings.TrimPrefix(src, "file://")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		return data, nil
	}

	client := &http.Client{Timeout: defaultTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: %s: HTTP %d", src, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if len(data) > maxBody {
		return nil, fmt.Errorf("fetch: %s: body larger than %d bytes", src, maxBody)
	}
	return data, nil
}
