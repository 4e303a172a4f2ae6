// Demo program exercising console logging, templated messages, and
// file-mode rotation.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arlund/rotalog"
)

func main() {
	rotalog.Initialize(os.Stdout, rotalog.TRACE)

	// A second initialization is ignored with a warning on stderr.
	rotalog.Initialize(os.Stderr, rotalog.ERROR)

	rotalog.Trace("Starting application...")
	rotalog.Debugf("Initializing system with value: {}", 42)
	rotalog.Info("System ready")
	rotalog.Warn("Low battery")
	rotalog.Error("System failure")

	runFileDemo()
}

// runFileDemo builds a standalone file logger (the singleton is already
// bound to stdout) and pushes it past the rotation threshold.
func runFileDemo() {
	dir, err := os.MkdirTemp("", "rotalog-demo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	logPath := filepath.Join(dir, "app.log")
	logger, err := rotalog.NewFileLogger(logPath, rotalog.TRACE)
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		return
	}
	defer logger.Close()

	if err := logger.Configure(rotalog.FileSettings{
		EnableRotation: true,
		MaxFileSize:    256,
		MaxBackups:     2,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		return
	}

	for i := 0; i < 20; i++ {
		logger.Infof("message number {} of the file demo", i)
	}

	backups, _ := filepath.Glob(filepath.Join(dir, "app_*.log"))
	rotalog.Infof("file demo wrote {} and {} backup(s)", logPath, len(backups))
}
