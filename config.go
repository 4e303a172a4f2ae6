package rotalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileSettings controls the behavior of a file-backed logger: startup
// truncation, size-based rotation with a bounded number of retained
// backup generations, and an optional cap on emitted messages per second.
//
// The zero value leaves rotation disabled entirely: a logger never
// rotates until a settings record with EnableRotation arrives. With
// rotation enabled, MaxFileSize is the threshold in bytes at which the
// active file is rotated out; a threshold of zero rotates on every
// check. MaxBackups is the number of rotated generations to keep,
// numbered <base>_1 (newest) through <base>_N (oldest).
type FileSettings struct {
	ClearOnStartup bool  `json:"clear_on_startup" toml:"clear_on_startup"`
	EnableRotation bool  `json:"enable_rotation" toml:"enable_rotation"`
	MaxFileSize    int64 `json:"max_file_size" toml:"max_file_size"`
	MaxBackups     int   `json:"max_backups" toml:"max_backups"`
	MaxLogRate     int   `json:"max_log_rate" toml:"max_log_rate"`
}

// Validate checks the settings for impossible values.
func (s *FileSettings) Validate() error {
	if s.MaxFileSize < 0 {
		return fmt.Errorf("MaxFileSize cannot be negative")
	}
	if s.MaxBackups < 0 {
		return fmt.Errorf("MaxBackups cannot be negative")
	}
	if s.MaxLogRate < 0 {
		return fmt.Errorf("MaxLogRate cannot be negative")
	}
	return nil
}

// LoadFileSettings reads and validates a FileSettings record from a TOML
// file.
//
// Example settings file:
//
//	clear_on_startup = false
//	enable_rotation = true
//	max_file_size = 1048576
//	max_backups = 5
func LoadFileSettings(path string) (FileSettings, error) {
	var settings FileSettings

	settingsFile := filepath.Clean(path)
	content, err := os.ReadFile(settingsFile)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := toml.Unmarshal(content, &settings); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return settings, fmt.Errorf("failed to parse settings file %s (line %d, column %d): %w", settingsFile, row, col, err)
		}
		return settings, fmt.Errorf("failed to parse settings file %s: %w", settingsFile, err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings in %s: %w", settingsFile, err)
	}
	return settings, nil
}

// FileSettingsFromJSON parses and validates a FileSettings record from
// JSON, for callers that embed logger settings in a larger JSON config.
func FileSettingsFromJSON(data []byte) (FileSettings, error) {
	var settings FileSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings JSON: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
