package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// configCandidates are the filenames discoverConfig looks for in the
// current working directory when --config isn't given, checked in order.
var configCandidates = []string{"shelltab.yaml", "shelltab.yml"}

// discoverConfig resolves the config file path: explicit flag wins, else
// the first of configCandidates found in the current directory.
func discoverConfig(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	for _, name := range configCandidates {
		candidate := filepath.Join(cwd, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no config file found — looked for %v in %s, or pass --config", configCandidates, cwd)
}

// validScriptName checks that name contains only letters, digits, hyphens,
// underscores, and at most one namespace separator.
func validScriptName(name string) bool {
	if name == "" {
		return false
	}
	colons := 0
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		case c == ':':
			colons++
		default:
			return false
		}
	}
	return colons <= 1
}

// friendlyError converts common OS errors into user-friendly messages.
func friendlyError(err error) string {
	if errors.Is(err, os.ErrPermission) {
		return "permission denied — check directory permissions"
	}
	if errors.Is(err, os.ErrNotExist) {
		return "no such file or directory"
	}
	return err.Error()
}
