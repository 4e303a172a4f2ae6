package rotalog

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// backupName returns filename with "_<idx>" inserted immediately before
// the last dot, or appended when the name has no extension:
// "app.log" -> "app_1.log", "app" -> "app_1". Tooling that collects
// rotated logs relies on this exact placement.
func backupName(filename string, idx int) string {
	suffix := "_" + strconv.Itoa(idx)
	if dot := strings.LastIndexByte(filename, '.'); dot >= 0 {
		return filename[:dot] + suffix + filename[dot:]
	}
	return filename + suffix
}

// shouldRotate reports whether the active file has reached the size
// threshold. A zero threshold rotates on every check.
func shouldRotate(currentSize, maxSize int64) bool {
	return currentSize >= maxSize
}

// rotateLogFiles shifts backup generations and reopens an empty active
// file once the size threshold is reached, returning whether a rotation
// actually happened. The check runs on every file-mode emission but does
// nothing until rotation has been enabled via Configure.
//
// Generations are numbered by recency: the previous active file becomes
// <base>_1, _1 becomes _2, and so on; whatever sat past MaxBackups is
// overwritten by the shift. A reopen failure wraps ErrFileOpen and is
// unrecoverable for this instance.
//
// Caller must hold mu.
func (l *Logger) rotateLogFiles() (bool, error) {
	if !l.settings.EnableRotation {
		return false, nil
	}

	// Seek to the end for an authoritative size reading; the handle is in
	// append mode, so the write position is unaffected.
	size, err := l.file.Seek(0, io.SeekEnd)
	if err != nil {
		return false, fmt.Errorf("failed to determine log file size: %w", err)
	}
	if !shouldRotate(size, l.settings.MaxFileSize) {
		return false, nil
	}

	if err := l.file.Close(); err != nil {
		return false, fmt.Errorf("failed to close log file: %w", err)
	}

	// Shift older generations up one slot, highest index first, so each
	// rename lands on a freed (or expendable) name.
	for i := l.settings.MaxBackups - 1; i >= 1; i-- {
		oldName := backupName(l.filename, i)
		if _, err := os.Stat(oldName); err == nil {
			_ = os.Rename(oldName, backupName(l.filename, i+1))
		}
	}

	if l.settings.MaxBackups >= 1 {
		if err := os.Rename(l.filename, backupName(l.filename, 1)); err != nil {
			// The old content is still under the active name; keep
			// appending to it rather than truncating it away.
			file, openErr := os.OpenFile(l.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if openErr != nil {
				return false, fmt.Errorf("%w %s: reopen after rename failure (%v): %v", ErrFileOpen, l.filename, err, openErr)
			}
			l.file = file
			l.out = file
			return false, fmt.Errorf("failed to rename log file: %w", err)
		}
	}

	file, err := os.OpenFile(l.filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return false, fmt.Errorf("%w %s: %v", ErrFileOpen, l.filename, err)
	}
	l.file = file
	l.out = file
	return true, nil
}
