package rotalog

import "errors"

// Sentinel errors surfaced by the package. Errors returned from exported
// functions wrap these, so callers can test them with errors.Is.
var (
	// ErrAlreadyInitialized marks a duplicate Initialize call. The first
	// caller's logger is retained; duplicates only warn on stderr.
	ErrAlreadyInitialized = errors.New("logger already initialized")

	// ErrNotInitialized is returned by Instance, and raised by the
	// package-level logging functions, before a successful Initialize
	// or InitializeFile.
	ErrNotInitialized = errors.New("logger not initialized: call Initialize or InitializeFile first")

	// ErrFileOpen wraps failures to open the log file, both at
	// construction time and when reopening after rotation. The former is
	// recoverable by retrying; the latter is fatal for the instance.
	ErrFileOpen = errors.New("cannot open log file")

	// ErrFormat wraps template/argument mismatches in Logf and the
	// per-level formatted variants.
	ErrFormat = errors.New("malformed log template")
)
