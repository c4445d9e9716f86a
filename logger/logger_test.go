package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureEntry(t *testing.T, fn func()) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}) })

	fn()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log output: %s", buf.String())
	return entry
}

func TestLogErr_ReturnsErrorAndRecordsCaller(t *testing.T) {
	want := errors.New("boom")
	var got error
	entry := captureEntry(t, func() { got = LogErr(want) })

	assert.Same(t, want, got)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["message"])
	assert.Contains(t, entry["caller"], "logger_test.go:")
	assert.Contains(t, entry["caller"], "TestLogErr_ReturnsErrorAndRecordsCaller")
}

func TestLogErr_Nil(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	assert.NoError(t, LogErr(nil))
	Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogError_Formats(t *testing.T) {
	var err error
	entry := captureEntry(t, func() { err = LogError("redis: %s", "down") })

	assert.EqualError(t, err, "redis: down")
	assert.Equal(t, "redis: down", entry["message"])
}

func TestWarnInfoDebug_Levels(t *testing.T) {
	tests := []struct {
		level string
		fn    func()
	}{
		{"warn", func() { Warn("w %d", 1) }},
		{"info", func() { Info("i %d", 1) }},
		{"debug", func() { Debug("d %d", 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			entry := captureEntry(t, tt.fn)
			assert.Equal(t, tt.level, entry["level"])
			assert.Contains(t, entry["caller"], "logger_test.go:")
		})
	}
}

func TestConfigure_InvalidLevel(t *testing.T) {
	err := Configure(Config{Level: "chatty"})
	require.Error(t, err)
}

func TestConfigure_FileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "oauthdb.log")

	require.NoError(t, Configure(Config{Environment: "production", Level: "info", File: path, MaxSizeMB: 1}))
	Info("written to file")
	require.NoError(t, Close())

	assert.FileExists(t, path)
	SetOutput(&bytes.Buffer{})
}
