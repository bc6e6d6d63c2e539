// Package config holds shelltab's own application directories — where run
// logs are written — independent of the user-authored scripts configuration
// that internal/configfile loads.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	BaseDir string
	LogDir  string
)

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		panic("cannot determine home directory: " + err.Error())
	}
	BaseDir = filepath.Join(home, ".shelltab")
	LogDir = filepath.Join(BaseDir, "logs")
}

// EnsureLogDir creates the log directory if it doesn't already exist.
func EnsureLogDir() error {
	if err := os.MkdirAll(LogDir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	return nil
}
