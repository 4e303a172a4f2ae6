package rotalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// Logger writes leveled, timestamped, call-site-attributed lines to a
// console stream or to an exclusively-owned rotating file.
//
// A single mutex serializes the check-rotation/format/write sequence, so
// concurrent calls never interleave partial lines and never observe the
// file handle mid-swap during rotation. The minimum level is atomic and
// read lock-free on every call.
type Logger struct {
	mu            sync.Mutex // serializes rotation check and writes
	out           io.Writer  // current destination; tracks the file across rotations
	file          *os.File   // owned file handle, nil in console mode
	filename      string     // active file path, file mode only
	level         atomic.Int32
	colorsEnabled bool
	settings      FileSettings // guarded by mu
	limiter       atomic.Pointer[rate.Limiter]
	bufferPool    sync.Pool
}

func newBufferPool() sync.Pool {
	return sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, 256))
		},
	}
}

// NewConsoleLogger returns a logger that writes to w, which stays owned
// by the caller. File rotation never applies in console mode.
func NewConsoleLogger(w io.Writer, level LogLevel, enableColors bool) *Logger {
	l := &Logger{
		out:           w,
		colorsEnabled: enableColors,
		bufferPool:    newBufferPool(),
	}
	l.level.Store(int32(level))
	return l
}

// NewFileLogger returns a logger that owns the file at filename, opened
// for append (created if absent). Colors are disabled in file mode. The
// returned error wraps ErrFileOpen when the file cannot be opened.
func NewFileLogger(filename string, level LogLevel) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrFileOpen, filename, err)
	}

	l := &Logger{
		out:        file,
		file:       file,
		filename:   filename,
		bufferPool: newBufferPool(),
	}
	l.level.Store(int32(level))
	return l, nil
}

// Configure validates and applies file-mode settings. ClearOnStartup
// truncates the active file immediately; rotation settings take effect
// on the next emission; MaxLogRate > 0 caps emitted messages per second.
// Safe to call concurrently with logging.
func (l *Logger) Configure(settings FileSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.settings = settings

	if settings.MaxLogRate > 0 {
		l.limiter.Store(rate.NewLimiter(rate.Limit(settings.MaxLogRate), settings.MaxLogRate))
	} else {
		l.limiter.Store(nil)
	}

	if settings.ClearOnStartup && l.file != nil {
		if err := l.file.Truncate(0); err != nil {
			return fmt.Errorf("failed to clear log file: %w", err)
		}
		if _, err := l.file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to clear log file: %w", err)
		}
	}
	return nil
}

// SetLogLevel updates the minimum log level at runtime.
func (l *Logger) SetLogLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// GetLogLevel returns the current minimum log level.
func (l *Logger) GetLogLevel() LogLevel {
	return LogLevel(l.level.Load())
}

// ColorsEnabled reports whether lines carry ANSI color escapes.
func (l *Logger) ColorsEnabled() bool {
	return l.colorsEnabled
}

// log is the single emission path behind every logging method. calldepth
// is the number of stack frames between the user's call and callerInfo.
//
// Messages below the minimum level return before any formatting or I/O.
// In file mode the rotation check runs on every emitted line, then the
// composed line is written under the mutex and is visible to readers
// before log returns.
func (l *Logger) log(level LogLevel, message string, calldepth int) {
	if level < LogLevel(l.level.Load()) {
		return
	}
	if lim := l.limiter.Load(); lim != nil && !lim.Allow() {
		return
	}

	site := callerInfo(calldepth)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if _, err := l.rotateLogFiles(); err != nil {
			if errors.Is(err, ErrFileOpen) {
				// No durable destination remains for this instance.
				panic(fmt.Errorf("log rotation failed: %v", err))
			}
			fmt.Fprintf(os.Stderr, "rotalog: rotation failed: %v\n", err)
		}
	}

	buf := l.bufferPool.Get().(*bytes.Buffer)
	defer l.bufferPool.Put(buf)
	buf.Reset()
	l.formatLine(buf, level, message, site)

	if _, err := l.out.Write(buf.Bytes()); err != nil {
		// Reporting through the logger itself would recurse; use stderr.
		fmt.Fprintf(os.Stderr, "rotalog: write failed: %v\nrotalog: dropped line: %s", err, buf.String())
	}
}

// expand renders a "{}" placeholder template. Template mistakes never
// crash the caller: the error is reported on stderr and the raw template
// plus its arguments become an unformatted fallback message.
func (l *Logger) expand(template string, args []interface{}) string {
	message, err := expandTemplate(template, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rotalog: %v\n", err)
		if len(args) == 0 {
			return template
		}
		return template + " " + fmt.Sprint(args...)
	}
	return message
}

// Log emits message at the given level, attributing it to the caller.
func (l *Logger) Log(level LogLevel, message string) {
	l.log(level, message, 3)
}

// Logf emits a templated message at the given level. Arguments replace
// "{}" placeholders in order: Logf(DEBUG, "value={}", 42) emits
// "value=42".
func (l *Logger) Logf(level LogLevel, template string, args ...interface{}) {
	l.log(level, l.expand(template, args), 3)
}

// Trace logs a message at TRACE level.
func (l *Logger) Trace(v ...interface{}) {
	l.log(TRACE, fmt.Sprint(v...), 3)
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(v ...interface{}) {
	l.log(DEBUG, fmt.Sprint(v...), 3)
}

// Info logs a message at INFO level.
func (l *Logger) Info(v ...interface{}) {
	l.log(INFO, fmt.Sprint(v...), 3)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(v ...interface{}) {
	l.log(WARN, fmt.Sprint(v...), 3)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(v ...interface{}) {
	l.log(ERROR, fmt.Sprint(v...), 3)
}

// Fatal logs a message at FATAL level. FATAL is the highest severity; it
// does not terminate the process.
func (l *Logger) Fatal(v ...interface{}) {
	l.log(FATAL, fmt.Sprint(v...), 3)
}

// Tracef logs a "{}"-templated message at TRACE level.
func (l *Logger) Tracef(template string, args ...interface{}) {
	l.log(TRACE, l.expand(template, args), 3)
}

// Debugf logs a "{}"-templated message at DEBUG level.
func (l *Logger) Debugf(template string, args ...interface{}) {
	l.log(DEBUG, l.expand(template, args), 3)
}

// Infof logs a "{}"-templated message at INFO level.
func (l *Logger) Infof(template string, args ...interface{}) {
	l.log(INFO, l.expand(template, args), 3)
}

// Warnf logs a "{}"-templated message at WARN level.
func (l *Logger) Warnf(template string, args ...interface{}) {
	l.log(WARN, l.expand(template, args), 3)
}

// Errorf logs a "{}"-templated message at ERROR level.
func (l *Logger) Errorf(template string, args ...interface{}) {
	l.log(ERROR, l.expand(template, args), 3)
}

// Fatalf logs a "{}"-templated message at FATAL level.
func (l *Logger) Fatalf(template string, args ...interface{}) {
	l.log(FATAL, l.expand(template, args), 3)
}

// Close flushes and releases the owned log file. Closing a console
// logger is a no-op. Lines logged after Close are discarded.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	err := l.file.Sync()
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	l.out = io.Discard
	return err
}
