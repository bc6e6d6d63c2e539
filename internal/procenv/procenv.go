// Package procenv builds the Process Environment: the merged view of
// constants, dynamic variables, dotenv files, and templates that the
// executor renders shell commands and templates against, plus the
// os/exec.Cmd factory used to run them.
package procenv

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/shelltab/shelltab/internal/model"
	"github.com/shelltab/shelltab/internal/valueprovider"
)

// Environment is the Process Environment for one script run.
type Environment struct {
	Constants  map[string]valueprovider.Provider
	Variables  map[string]valueprovider.Provider
	Dotenv     map[string]valueprovider.Provider
	Templates  []*model.Template
	WorkingDir string
	// Params are the CLI's trailing positional arguments, exposed to every
	// shell command this Environment runs as $1, $2, ... (sh -c's first
	// trailing arg after the script becomes $0, so a placeholder is always
	// inserted ahead of Params).
	Params []string
}

// New builds an Environment from already-resolved value-provider sets.
func New(constants, variables, dotenv map[string]valueprovider.Provider, templates []*model.Template, workingDir string, params []string) *Environment {
	return &Environment{Constants: constants, Variables: variables, Dotenv: dotenv, Templates: templates, WorkingDir: workingDir, Params: params}
}

// GetAllValues returns the merged name->provider view, highest precedence
// last: dotenv < constants < variables. A host environment variable of the
// same name overrides the dotenv entry specifically — dotenv is a default
// value, not an enforced one — but never overrides a constant or variable.
func (e *Environment) GetAllValues() map[string]valueprovider.Provider {
	out := make(map[string]valueprovider.Provider, len(e.Dotenv)+len(e.Constants)+len(e.Variables))
	for k, v := range e.Dotenv {
		out[k] = v
	}
	for k := range e.Dotenv {
		if hostVal, ok := os.LookupEnv(k); ok {
			out[k] = valueprovider.Simple{Value: hostVal}
		}
	}
	for k, v := range e.Constants {
		out[k] = v
	}
	for k, v := range e.Variables {
		out[k] = v
	}
	return out
}

// GetTemplates returns the environment-level templates to render before any
// command runs.
func (e *Environment) GetTemplates() []*model.Template {
	return e.Templates
}

// CreateProcess builds a child process ready to run commandLine through the
// host shell, rooted at WorkingDir, with no timeout. Params are appended as
// positional arguments ($1, $2, ...) visible to commandLine.
func (e *Environment) CreateProcess(commandLine string) (*exec.Cmd, error) {
	env, err := e.BuildEnv()
	if err != nil {
		return nil, err
	}
	args := append([]string{"-c", commandLine, "shelltab"}, e.Params...)
	cmd := exec.Command("sh", args...)
	cmd.Dir = e.WorkingDir
	cmd.Env = env
	return cmd, nil
}

// BuildEnv renders GetAllValues() into a process environment slice layered
// on top of the host's own environment (os.Environ), so resolved values
// take precedence over whatever's already in the host env without losing
// unrelated host variables (PATH, HOME, and so on). A value provider that
// fails to resolve (a failing dynamic-variable shell expression) aborts the
// whole build, since a partially-populated environment could mask the
// failure from the running script.
func (e *Environment) BuildEnv() ([]string, error) {
	env := os.Environ()
	for name, provider := range e.GetAllValues() {
		value, err := provider.GetValue()
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", name, err)
		}
		env = append(env, name+"="+value)
	}
	return env, nil
}
