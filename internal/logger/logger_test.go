package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.txt")
	l := New(path)
	assert.Equal(t, path, l.Path())

	l.Log("loaded 2 curves")
	l.Logf("replaced id %q", "path1")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[0], "] loaded 2 curves"))
	assert.True(t, strings.HasSuffix(lines[1], `replaced id "path1"`))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(lines, "\n")+"\n", string(data))

	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Lines()[0])
}

func TestConcurrentLog(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "log.txt"))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Logf("line %d", i)
		}()
	}
	wg.Wait()
	assert.Len(t, l.Lines(), 20)
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	l := New("")
	assert.Equal(t, LogFilePath, l.Path())
	_, err := os.Stat(filepath.Join(dir, "logs"))
	assert.NoError(t, err)
}
