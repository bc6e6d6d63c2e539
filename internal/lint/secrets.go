// Package lint scans parsed scripts for warnings a shelltab author would
// want surfaced before running them: embedded-looking secrets and other
// questionable patterns that are valid but probably unintended.
package lint

import (
	"fmt"
	"regexp"

	"github.com/shelltab/shelltab/internal/scriptparser"
)

// secretPatterns maps a human-readable description to a regex that matches
// common secrets or credentials accidentally embedded in shell commands.
var secretPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"AWS access key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"secret assignment", regexp.MustCompile(`(?i)(api_key|secret|token|password)\s*=\s*"?[A-Za-z0-9_/+=\-]{8,}`)},
	{"URL with credentials", regexp.MustCompile(`://[^:]+:[^@]+@`)},
	{"private key header", regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`)},
	{"GitHub token", regexp.MustCompile(`ghp_[A-Za-z0-9]{36}`)},
	{"GitLab token", regexp.MustCompile(`glpat-[A-Za-z0-9\-]{20,}`)},
	{"Bearer token", regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-._~+/]+=*`)},
}

// detectSecrets scans one command's shell text for embedded secrets.
func detectSecrets(cmd scriptparser.Command) []string {
	var findings []string
	for _, sp := range secretPatterns {
		if sp.pattern.MatchString(cmd.Shell) {
			findings = append(findings, sp.name)
		}
	}
	return findings
}

// SecretWarnings returns a warning for every command that appears to embed
// a secret literally, since a dynamic variable or dotenv entry should carry
// it instead.
func SecretWarnings(commands []scriptparser.Command) []string {
	var warns []string
	for _, cmd := range commands {
		findings := detectSecrets(cmd)
		if len(findings) == 0 {
			continue
		}
		warns = append(warns, fmt.Sprintf(
			"line %q: possible secret detected (%s) — consider a dynamic variable or dotenv entry instead",
			cmd.Line, findings[0],
		))
	}
	return warns
}
