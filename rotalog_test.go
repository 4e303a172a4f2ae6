package rotalog

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, false)

	tests := []struct {
		name    string
		logFunc func()
		tag     string
	}{
		{"Trace", func() { logger.Trace("trace message") }, "[TRACE]"},
		{"Debug", func() { logger.Debug("debug message") }, "[DEBUG]"},
		{"Info", func() { logger.Info("info message") }, "[INFO ]"},
		{"Warn", func() { logger.Warn("warn message") }, "[WARN ]"},
		{"Error", func() { logger.Error("error message") }, "[ERROR]"},
		{"Fatal", func() { logger.Fatal("fatal message") }, "[FATAL]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()
			assert.Contains(t, buf.String(), tt.tag)
			assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "exactly one line per call")
		})
	}
}

func TestMinimumLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, WARN, false)

	logger.Trace("below")
	logger.Debug("below")
	logger.Info("below")
	assert.Zero(t, buf.Len(), "levels below the minimum must produce zero output")

	logger.Warn("at minimum")
	logger.Error("above minimum")
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestSetLogLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, ERROR, false)
	assert.Equal(t, ERROR, logger.GetLogLevel())

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.SetLogLevel(INFO)
	assert.Equal(t, INFO, logger.GetLogLevel())

	logger.Info("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestColorOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, true)
	require.True(t, logger.ColorsEnabled())

	tests := []struct {
		name    string
		logFunc func()
		want    string
	}{
		{"Trace", func() { logger.Trace("x") }, "\033[36m[TRACE]\033[0m"},
		{"Debug", func() { logger.Debug("x") }, "\033[34m[DEBUG]\033[0m"},
		{"Info", func() { logger.Info("x") }, "\033[37m[INFO ]\033[0m"},
		{"Warn", func() { logger.Warn("x") }, "\033[33m[WARN ]\033[0m"},
		{"Error", func() { logger.Error("x") }, "\033[31m[ERROR]\033[0m"},
		{"Fatal", func() { logger.Fatal("x") }, "\033[35m[FATAL]\033[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNoColorCodesWhenDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, false)
	require.False(t, logger.ColorsEnabled())

	logger.Error("plain")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestLineFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, false)
	logger.Info("System ready")

	line := buf.String()
	assert.Regexp(t,
		regexp.MustCompile(`^\[INFO \]: \d{2}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3} \[goroutine: \d+\] rotalog_test\.go - `+"`"+`\w+`+"`"+` \(\d+\) : System ready\n$`),
		line)
}

func TestCallerAttribution(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, false)

	logger.Info("from method")
	assert.Contains(t, buf.String(), "rotalog_test.go", "call site must point at the caller, not the logger internals")
	assert.Contains(t, buf.String(), "`TestCallerAttribution`")

	buf.Reset()
	logger.Logf(DEBUG, "from {}", "Logf")
	assert.Contains(t, buf.String(), "rotalog_test.go")
}

func TestShortFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/a/b/c/file.ext", "file.ext"},
		{`C:\a\b\c\file.ext`, "file.ext"},
		{`/mixed/style\file.ext`, "file.ext"},
		{"file.ext", "file.ext"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shortFileName(tt.path), "path %q", tt.path)
	}
}

func TestGoroutineID(t *testing.T) {
	t.Parallel()

	id := goroutineID()
	_, err := strconv.Atoi(id)
	assert.NoError(t, err, "goroutine ID should be numeric, got %q", id)
}

func TestExpandTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		args     []interface{}
		want     string
		wantErr  bool
	}{
		{"SingleValue", "value={}", []interface{}{42}, "value=42", false},
		{"TwoValues", "{} and {}", []interface{}{"a", 1}, "a and 1", false},
		{"NoPlaceholders", "plain message", nil, "plain message", false},
		{"MissingArgument", "value={}", nil, "", true},
		{"ExtraArgument", "value={}", []interface{}{1, 2}, "", true},
		{"NamedPlaceholder", "value={name}", []interface{}{1}, "", true},
		{"UnterminatedBrace", "value={", []interface{}{1}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(tt.template, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogfFormatsTemplate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, false)

	logger.Logf(DEBUG, "value={}", 42)
	assert.Contains(t, buf.String(), "value=42")
	assert.Contains(t, buf.String(), "[DEBUG]")
}

func TestLogfMismatchEmitsFallback(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, false)

	// One placeholder short: the line must still come out, unformatted.
	assert.NotPanics(t, func() {
		logger.Logf(INFO, "value={} {}", 42)
	})
	assert.Contains(t, buf.String(), "value={} {}")
	assert.Contains(t, buf.String(), "42")

	buf.Reset()
	assert.NotPanics(t, func() {
		logger.Infof("no placeholder", 1, 2)
	})
	assert.Contains(t, buf.String(), "no placeholder")
}

func TestFormattedLevelVariants(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, false)

	tests := []struct {
		name    string
		logFunc func()
		want    string
	}{
		{"Tracef", func() { logger.Tracef("t={}", 1) }, "t=1"},
		{"Debugf", func() { logger.Debugf("d={}", 2) }, "d=2"},
		{"Infof", func() { logger.Infof("i={}", 3) }, "i=3"},
		{"Warnf", func() { logger.Warnf("w={}", 4) }, "w=4"},
		{"Errorf", func() { logger.Errorf("e={}", 5) }, "e=5"},
		{"Fatalf", func() { logger.Fatalf("f={}", 6) }, "f=6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"TRACE", TRACE, false},
		{"debug", DEBUG, false},
		{"Info", INFO, false},
		{"WARN", WARN, false},
		{"warning", WARN, false},
		{"ERROR", ERROR, false},
		{"fatal", FATAL, false},
		{"bogus", TRACE, true},
	}

	for _, tt := range tests {
		got, err := ParseLogLevel(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TRACE", TRACE.String())
	assert.Equal(t, "FATAL", FATAL.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestRateLimitDropsExcess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, TRACE, false)
	require.NoError(t, logger.Configure(FileSettings{MaxLogRate: 1}))

	for i := 0; i < 100; i++ {
		logger.Info("burst")
	}

	lines := strings.Count(buf.String(), "\n")
	assert.GreaterOrEqual(t, lines, 1)
	assert.Less(t, lines, 100, "rate cap should drop most of a tight burst")
}

func TestFileLoggerWritesAndCloses(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewFileLogger(path, TRACE)
	require.NoError(t, err)

	logger.Info("first")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(content, []byte{'\n'}), "line visible before the next call")
	assert.Contains(t, string(content), "first")
	assert.NotContains(t, string(content), "\033[", "file mode must not emit colors")

	logger.Info("second")
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(content, []byte{'\n'}))

	require.NoError(t, logger.Close())
	assert.NoError(t, logger.Close(), "second close is a no-op")

	// Lines after close are discarded, not appended.
	logger.Info("after close")
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "after close")
}

func TestFileLoggerAppendsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewFileLogger(path, TRACE)
	require.NoError(t, err)
	logger.Info("run one")
	require.NoError(t, logger.Close())

	logger, err = NewFileLogger(path, TRACE)
	require.NoError(t, err)
	logger.Info("run two")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "run one")
	assert.Contains(t, string(content), "run two")
}

func TestNewFileLoggerOpenFailure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "app.log")
	logger, err := NewFileLogger(path, TRACE)
	assert.Nil(t, logger)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileOpen))
}

func TestConsoleColorsDetection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, consoleColors(&buf), "non-file writers are assumed color-capable")
	assert.True(t, consoleColors(io.MultiWriter(&buf)))

	f, err := os.CreateTemp(t.TempDir(), "notatty")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, consoleColors(f), "a regular file is not a terminal")
}
