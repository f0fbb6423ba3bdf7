package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" Warning "))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLevelsFilterOutput(t *testing.T) {
	Init(Options{Level: "info"})
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden line")
	Info("planner bound", "columns", 7)
	Error("submit failed", errors.New("boom"), "id", "a1")

	out := buf.String()
	assert.NotContains(t, out, "hidden line")
	assert.Contains(t, out, "planner bound")
	assert.Contains(t, out, "columns=7")
	assert.Contains(t, out, "err=boom")
	assert.Contains(t, out, "id=a1")

	buf.Reset()
	SetLevel(LevelDebug)
	Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitplanner.log")
	Init(Options{Level: "debug", File: path})
	t.Cleanup(func() { Init(Options{}) })

	Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
