// Package rotalog provides a process-wide, leveled, timestamped logger
// with optional ANSI colors, goroutine identification, call-site
// attribution, and size-based log file rotation with numbered backup
// generations.
//
// Overview:
// A program initializes the shared logger exactly once, either against a
// console stream or a log file, and logs through the package-level
// functions or through the *Logger returned by Instance. Initialization
// is race-free: any number of goroutines may call Initialize
// concurrently, exactly one constructs the logger, and everyone observes
// the same fully-built instance afterwards.
//
// Getting started:
//
//	package main
//
//	import (
//	    "os"
//
//	    "github.com/arlund/rotalog"
//	)
//
//	func main() {
//	    rotalog.Initialize(os.Stdout, rotalog.TRACE)
//
//	    rotalog.Info("application starting")
//	    rotalog.Debugf("initialized with value: {}", 42)
//	}
//
// File mode with rotation:
//
//	if err := rotalog.InitializeFile("app.log", rotalog.INFO); err != nil {
//	    panic(err)
//	}
//	err := rotalog.Configure(rotalog.FileSettings{
//	    EnableRotation: true,
//	    MaxFileSize:    1024 * 1024, // 1 MB
//	    MaxBackups:     5,
//	})
//
// Once the active file reaches MaxFileSize, it is renamed to app_1.log,
// app_1.log to app_2.log and so on, the generation past MaxBackups is
// discarded, and logging continues into a fresh empty app.log. The
// rotation check runs on every emitted line, so the active file never
// grows meaningfully past the threshold.
//
// Line format:
//
//	[INFO ]: 25-07-25 14:33:12.123 [goroutine: 7] main.go - `main` (15) : System ready
//
// Console loggers prefix the level tag with a per-level ANSI color when
// the destination is a terminal. File loggers never emit colors.
//
// Message templates:
// The formatted variants (Logf, Infof, ...) substitute arguments into
// "{}" placeholders in order. A template/argument mismatch is contained:
// the line is emitted unformatted and the mistake is reported on stderr.
//
// Errors:
// Exported failures wrap the package sentinels ErrAlreadyInitialized,
// ErrNotInitialized, ErrFileOpen, and ErrFormat, and can be tested with
// errors.Is.
//
// Thread safety:
// Every operation is safe for concurrent use. Emission is serialized per
// logger, so lines from different goroutines never interleave and a
// rotation cannot swap the file handle under an in-flight write.
package rotalog
