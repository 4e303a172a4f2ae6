package rotalog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// The process-wide logger. The mutex guarantees at most one Initialize
// constructs it; the atomic pointer publishes the finished instance with
// a happens-before edge for every later Instance call, so no reader can
// observe a partially constructed logger.
//
// A failed file-mode Initialize leaves the pointer unset, so a later
// call may retry. sync.Once cannot express that retry, hence the
// mutex-guarded construction here.
var (
	initMu   sync.Mutex
	instance atomic.Pointer[Logger]
)

// Initialize sets up the shared logger writing to w. The first successful
// Initialize or InitializeFile wins; every later call, with any
// arguments, only prints a warning on stderr and leaves the existing
// logger untouched.
//
// Colors are enabled unless w is an *os.File that is not a terminal, so
// piped or redirected output stays free of escape sequences.
func Initialize(w io.Writer, level LogLevel) {
	initMu.Lock()
	defer initMu.Unlock()

	if instance.Load() != nil {
		fmt.Fprintf(os.Stderr, "rotalog: %v\n", ErrAlreadyInitialized)
		return
	}
	instance.Store(NewConsoleLogger(w, level, consoleColors(w)))
}

// InitializeFile sets up the shared logger writing to the file at path,
// opened for append. On open failure the returned error wraps ErrFileOpen
// and the singleton stays unset, so a later initialization may succeed.
func InitializeFile(path string, level LogLevel) error {
	initMu.Lock()
	defer initMu.Unlock()

	if instance.Load() != nil {
		fmt.Fprintf(os.Stderr, "rotalog: %v\n", ErrAlreadyInitialized)
		return nil
	}

	l, err := NewFileLogger(path, level)
	if err != nil {
		return err
	}
	instance.Store(l)
	return nil
}

// consoleColors reports whether w can take ANSI escapes: writers that
// are not files (buffers, sockets) are assumed capable, files must be
// real terminals.
func consoleColors(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return true
}

// Instance returns the shared logger, or ErrNotInitialized before the
// first successful initialization. Safe from any number of goroutines.
func Instance() (*Logger, error) {
	l := instance.Load()
	if l == nil {
		return nil, ErrNotInitialized
	}
	return l, nil
}

// mustInstance backs the package-level logging functions, which have no
// error return: using them before initialization fails loudly.
func mustInstance() *Logger {
	l := instance.Load()
	if l == nil {
		panic(ErrNotInitialized)
	}
	return l
}

// Configure applies file-mode settings to the shared logger. It panics
// with ErrNotInitialized before initialization.
func Configure(settings FileSettings) error {
	return mustInstance().Configure(settings)
}

// SetLogLevel updates the shared logger's minimum level.
func SetLogLevel(level LogLevel) {
	mustInstance().SetLogLevel(level)
}

// GetLogLevel returns the shared logger's minimum level.
func GetLogLevel() LogLevel {
	return mustInstance().GetLogLevel()
}

// Trace logs at TRACE level on the shared logger. Like all package-level
// logging functions it panics with ErrNotInitialized when called before
// Initialize.
func Trace(v ...interface{}) {
	mustInstance().log(TRACE, fmt.Sprint(v...), 3)
}

// Debug logs at DEBUG level on the shared logger.
func Debug(v ...interface{}) {
	mustInstance().log(DEBUG, fmt.Sprint(v...), 3)
}

// Info logs at INFO level on the shared logger.
func Info(v ...interface{}) {
	mustInstance().log(INFO, fmt.Sprint(v...), 3)
}

// Warn logs at WARN level on the shared logger.
func Warn(v ...interface{}) {
	mustInstance().log(WARN, fmt.Sprint(v...), 3)
}

// Error logs at ERROR level on the shared logger.
func Error(v ...interface{}) {
	mustInstance().log(ERROR, fmt.Sprint(v...), 3)
}

// Fatal logs at FATAL level on the shared logger.
func Fatal(v ...interface{}) {
	mustInstance().log(FATAL, fmt.Sprint(v...), 3)
}

// Tracef logs a "{}"-templated message at TRACE level on the shared
// logger.
func Tracef(template string, args ...interface{}) {
	l := mustInstance()
	l.log(TRACE, l.expand(template, args), 3)
}

// Debugf logs a "{}"-templated message at DEBUG level on the shared
// logger.
func Debugf(template string, args ...interface{}) {
	l := mustInstance()
	l.log(DEBUG, l.expand(template, args), 3)
}

// Infof logs a "{}"-templated message at INFO level on the shared logger.
func Infof(template string, args ...interface{}) {
	l := mustInstance()
	l.log(INFO, l.expand(template, args), 3)
}

// Warnf logs a "{}"-templated message at WARN level on the shared logger.
func Warnf(template string, args ...interface{}) {
	l := mustInstance()
	l.log(WARN, l.expand(template, args), 3)
}

// Errorf logs a "{}"-templated message at ERROR level on the shared
// logger.
func Errorf(template string, args ...interface{}) {
	l := mustInstance()
	l.log(ERROR, l.expand(template, args), 3)
}

// Fatalf logs a "{}"-templated message at FATAL level on the shared
// logger.
func Fatalf(template string, args ...interface{}) {
	l := mustInstance()
	l.log(FATAL, l.expand(template, args), 3)
}
