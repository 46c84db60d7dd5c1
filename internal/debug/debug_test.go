package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinesHiddenByDefault(t *testing.T) {
	d := New()
	assert.Empty(t, d.Lines(60, Status{Mode: "auto"}))
}

func TestLines(t *testing.T) {
	d := &Debug{ShowFPS: true, ShowMemAlloc: true, ShowMode: true}
	lines := d.Lines(60, Status{Path: "path1", Mode: "manual", Offset: 0.25})
	assert.Len(t, lines, 3)
	assert.Equal(t, "FPS: 60", lines[0])
	assert.Contains(t, lines[1], "MiB")
	assert.Equal(t, "path1 manual 0.250", lines[2])

	// FPS text is cached between refreshes
	lines = d.Lines(30, Status{Path: "path1", Mode: "auto", Offset: 0.5})
	assert.Equal(t, "FPS: 60", lines[0])
	assert.Equal(t, "path1 auto 0.500", lines[2])

	for i := 0; i < updateInterval; i++ {
		lines = d.Lines(30, Status{})
	}
	assert.Equal(t, "FPS: 30", lines[0])
}
