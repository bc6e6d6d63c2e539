// Package configfile loads shelltab configuration files from disk and
// merges them under override/import semantics. It is the Go realisation of
// the Config Loader and Config Merger.
package configfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/shelltab/shelltab/internal/model"
	"gopkg.in/yaml.v3"
)

// configSuffix matches the recognised config filename suffixes: .yaml/.yml,
// with an optional .dist or .override segment in between (config.dist.yaml,
// config.override.yml, config.yaml all qualify).
var configSuffix = regexp.MustCompile(`(?i)(\.(dist|override))?\.(yaml|yml)$`)

// isSupported reports whether filename looks like a config file this loader
// can parse.
func isSupported(filename string) bool {
	return configSuffix.MatchString(filename)
}

type rawTemplate struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

type rawEnvironment struct {
	Paths       []string              `yaml:"paths"`
	Dynamic     *model.OrderedStrings `yaml:"dynamic"`
	Const       *model.OrderedStrings `yaml:"const"`
	Templates   []rawTemplate         `yaml:"templates"`
	Dotenv      []string              `yaml:"dotenv"`
	Hidden      bool                  `yaml:"hidden"`
	Description string                `yaml:"description"`
}

type rawConfig struct {
	Header             string                    `yaml:"header"`
	DefaultEnvironment string                    `yaml:"default_environment"`
	Import             []string                  `yaml:"import"`
	Paths              []string                  `yaml:"paths"`
	Dynamic            *model.OrderedStrings     `yaml:"dynamic"`
	Const              *model.OrderedStrings     `yaml:"const"`
	Templates          []rawTemplate             `yaml:"templates"`
	Dotenv             []string                  `yaml:"dotenv"`
	Environments       map[string]rawEnvironment `yaml:"environments"`
}

// Load reads path, recursively resolving its import: list, and returns the
// fully merged Config. params is stored verbatim on the result for the
// executor to expose as positional script arguments.
func Load(path string, params []string) (*model.Config, error) {
	return loadFile(path, params, map[string]bool{})
}

func loadFile(path string, params []string, visiting map[string]bool) (*model.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %q: %w", path, err)
	}
	if visiting[absPath] {
		return nil, fmt.Errorf("import cycle detected at %q", path)
	}
	visiting[absPath] = true
	defer delete(visiting, absPath)

	if !isSupported(filepath.Base(absPath)) {
		return nil, fmt.Errorf("unsupported config file %q: expected a .yaml or .yml file", path)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	rc, envOrder, err := decodeRaw(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}

	cfg, err := buildConfig(rc, envOrder, absPath, params)
	if err != nil {
		return nil, fmt.Errorf("building config %q: %w", path, err)
	}

	for _, importRef := range rc.Import {
		importPath, err := fixPath(importRef, absPath, true)
		if err != nil {
			return nil, fmt.Errorf("resolving import %q in %q: %w", importRef, path, err)
		}
		imported, err := loadFile(importPath, params, visiting)
		if err != nil {
			return nil, err
		}
		cfg = Import(cfg, imported)
	}

	return cfg, nil
}

// decodeRaw parses data into a rawConfig, additionally extracting the
// declaration order of the `environments` mapping — gopkg.in/yaml.v3 doesn't
// expose that from a plain struct decode, only from a yaml.Node.
func decodeRaw(data []byte) (*rawConfig, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	var rc rawConfig
	if len(doc.Content) > 0 {
		if err := doc.Content[0].Decode(&rc); err != nil {
			return nil, nil, err
		}
	}
	return &rc, environmentOrder(&doc), nil
}

func environmentOrder(doc *yaml.Node) []string {
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "environments" {
			continue
		}
		envNode := root.Content[i+1]
		if envNode.Kind != yaml.MappingNode {
			return nil
		}
		order := make([]string, 0, len(envNode.Content)/2)
		for j := 0; j+1 < len(envNode.Content); j += 2 {
			order = append(order, envNode.Content[j].Value)
		}
		return order
	}
	return nil
}

func buildConfig(rc *rawConfig, envOrder []string, baseFile string, params []string) (*model.Config, error) {
	defaultName := rc.DefaultEnvironment
	if defaultName == "" {
		defaultName = model.DefaultEnvironmentName
	}

	cfg := &model.Config{
		Header:             rc.Header,
		DefaultEnvironment: defaultName,
		Environments:       map[string]*model.ConfigEnvironment{},
		EnvironmentOrder:   []string{},
		Params:             params,
	}

	defaultEnv := cfg.EnsureEnvironment(defaultName)
	if err := populateEnvironment(defaultEnv, rc.Paths, rc.Dynamic, rc.Const, rc.Templates, rc.Dotenv, false, "", baseFile); err != nil {
		return nil, err
	}

	for _, name := range envOrder {
		raw := rc.Environments[name]
		env := cfg.EnsureEnvironment(name)
		if err := populateEnvironment(env, raw.Paths, raw.Dynamic, raw.Const, raw.Templates, raw.Dotenv, raw.Hidden, name, baseFile); err != nil {
			return nil, err
		}
		env.Description = raw.Description
	}

	return cfg, nil
}

func populateEnvironment(
	env *model.ConfigEnvironment,
	paths []string,
	dynamic, constants *model.OrderedStrings,
	templates []rawTemplate,
	dotenv []string,
	hidden bool,
	namespace string,
	baseFile string,
) error {
	env.Hidden = hidden
	for _, p := range paths {
		// Not required to exist yet: script paths are validated lazily by the
		// Finder at scan time, not here — an environment the current
		// invocation never touches must not fail config load.
		resolved, err := fixPath(p, baseFile, false)
		if err != nil {
			return fmt.Errorf("script path %q: %w", p, err)
		}
		env.ScriptsPaths = append(env.ScriptsPaths, model.ScriptsPath{Path: resolved, Namespace: namespace, Hidden: hidden})
	}
	if dynamic != nil {
		env.DynamicVariables = dynamic
	}
	if constants != nil {
		env.Constants = constants
	}
	for _, t := range templates {
		source, err := fixPath(t.Source, baseFile, true)
		if err != nil {
			return fmt.Errorf("template source %q: %w", t.Source, err)
		}
		destination, err := fixPath(t.Destination, baseFile, false)
		if err != nil {
			return fmt.Errorf("template destination %q: %w", t.Destination, err)
		}
		env.Templates = append(env.Templates, model.TemplateDecl{Source: source, Destination: destination})
	}
	for _, d := range dotenv {
		resolved, err := fixPath(d, baseFile, false)
		if err != nil {
			return fmt.Errorf("dotenv path %q: %w", d, err)
		}
		env.DotenvPaths = append(env.DotenvPaths, resolved)
	}
	return nil
}

// fixPath resolves raw relative to baseFile's directory, returning it
// unchanged if already absolute. When required is true, the resolved path
// must exist or fixPath returns an error — used for script directories and
// template sources, which must be readable at load time; dotenv files and
// template destinations may not exist yet, so required is false for those.
func fixPath(raw, baseFile string, required bool) (string, error) {
	resolved := raw
	if !filepath.IsAbs(raw) {
		resolved = filepath.Join(filepath.Dir(baseFile), raw)
	}
	if required {
		if _, err := os.Stat(resolved); err != nil {
			return "", fmt.Errorf("path does not exist: %w", err)
		}
	}
	return resolved, nil
}
