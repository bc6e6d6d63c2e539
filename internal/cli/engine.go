package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shelltab/shelltab/internal/configfile"
	"github.com/shelltab/shelltab/internal/model"
	"github.com/shelltab/shelltab/internal/procenv"
	"github.com/shelltab/shelltab/internal/resolver"
	"github.com/shelltab/shelltab/internal/scripts"
)

// loadConfig resolves and loads the config file, including its import tree.
func loadConfig(configFlag string, params []string) (*model.Config, error) {
	path, err := discoverConfig(configFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := configfile.Load(path, params)
	if err != nil {
		return nil, fmt.Errorf("%s", friendlyError(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// owningEnvironment returns the ConfigEnvironment a script belongs to: its
// namespace names an environment directly, except the default environment,
// whose scripts carry no namespace.
func owningEnvironment(cfg *model.Config, script model.Script) *model.ConfigEnvironment {
	if script.Namespace == "" {
		return cfg.Environments[cfg.DefaultEnvironment]
	}
	return cfg.Environments[script.Namespace]
}

// buildEnvironment resolves one ConfigEnvironment's value providers and
// templates into a procenv.Environment ready to run script's commands.
// workingDir is the directory containing the loaded config file — the
// "application directory" the commands run rooted at.
func buildEnvironment(env *model.ConfigEnvironment, workingDir string, params []string) (*procenv.Environment, error) {
	dotenv, err := resolver.ResolveDotenvVariables(env.DotenvPaths)
	if err != nil {
		return nil, err
	}
	constants := resolver.ResolveConstants(env.Constants)
	variables := resolver.ResolveVariables(env.DynamicVariables)
	templates := resolver.ResolveTemplates(env.Templates)
	return procenv.New(constants, variables, dotenv, templates, workingDir, params), nil
}

// finderLoader adapts a scripts.Finder into the scriptparser.Loader
// interface: ACTION: resolves by logical name through the Finder,
// INCLUDE: reads an arbitrary file path directly.
type finderLoader struct {
	finder *scripts.Finder
}

func (l finderLoader) LoadByName(name string) (model.Script, string, error) {
	script, err := l.finder.FindScriptByName(name)
	if err != nil {
		return model.Script{}, "", err
	}
	content, err := os.ReadFile(script.Path())
	if err != nil {
		return model.Script{}, "", fmt.Errorf("reading script %q: %w", script.Path(), err)
	}
	return *script, string(content), nil
}

func (l finderLoader) LoadByPath(path string) (model.Script, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return model.Script{}, "", fmt.Errorf("reading included file %q: %w", path, err)
	}
	script := model.Script{Directory: filepath.Dir(path), Filename: filepath.Base(path)}
	return script, string(content), nil
}

// suggestNames formats fuzzy matches for a "did you mean" hint.
func suggestNames(matches []model.Script) string {
	if len(matches) == 0 {
		return ""
	}
	s := " — did you mean "
	for i, m := range matches {
		if i > 0 {
			s += ", "
		}
		s += m.Name()
	}
	return s + "?"
}
