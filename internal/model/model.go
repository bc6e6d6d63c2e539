// Package model defines the in-memory shapes shared by config loading,
// script resolution, and execution: scripts paths, the merged Config tree,
// dotenv references, and lazily-loaded file templates.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ScriptsPath is one directory of scripts, optionally namespaced to an
// environment. Path is validated lazily — at Finder-construction time, not
// here — so a ScriptsPath can be built for a directory that doesn't exist
// yet.
type ScriptsPath struct {
	Path      string
	Namespace string
	Hidden    bool
}

// Validate checks that Path refers to a readable directory.
func (p ScriptsPath) Validate() error {
	info, err := os.Stat(p.Path)
	if err != nil {
		return fmt.Errorf("script path %q: %w", p.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("script path %q: not a directory", p.Path)
	}
	return nil
}

// scriptExtensions are the recognised executable script extensions.
var scriptExtensions = map[string]bool{".sh": true, ".psh": true}

// IsScriptFile reports whether filename has a recognised script extension.
func IsScriptFile(filename string) bool {
	return scriptExtensions[filepath.Ext(filename)]
}

// Script is one discovered executable script file.
type Script struct {
	Directory   string
	Filename    string
	Hidden      bool
	Namespace   string
	Description string
}

// Name is the script's logical name: the filename without extension,
// prefixed by "<namespace>:" when namespaced.
func (s Script) Name() string {
	base := strings.TrimSuffix(s.Filename, filepath.Ext(s.Filename))
	if s.Namespace == "" {
		return base
	}
	return s.Namespace + ":" + base
}

// Path is the absolute path to the script file.
func (s Script) Path() string {
	return filepath.Join(s.Directory, s.Filename)
}

// TemplateDecl is a source/destination pair as declared in configuration,
// before path resolution.
type TemplateDecl struct {
	Source      string
	Destination string
}

// Template is a resolved source/destination pair with lazily-loaded content.
type Template struct {
	Source      string
	Destination string

	once    sync.Once
	content string
	loadErr error
}

// NewTemplate builds a Template for an already-resolved absolute source and
// destination path.
func NewTemplate(source, destination string) *Template {
	return &Template{Source: source, Destination: destination}
}

// Content returns the source file's contents, reading it on first access and
// memoising the result (or the read error) for subsequent calls.
func (t *Template) Content() (string, error) {
	t.once.Do(func() {
		data, err := os.ReadFile(t.Source)
		if err != nil {
			t.loadErr = fmt.Errorf("reading template %q: %w", t.Source, err)
			return
		}
		t.content = string(data)
	})
	return t.content, t.loadErr
}

// ConfigEnvironment is one named slice of configuration: script paths,
// variables, constants, templates, and dotenv files.
type ConfigEnvironment struct {
	Hidden           bool
	Description      string
	ScriptsPaths     []ScriptsPath
	DynamicVariables *OrderedStrings
	Constants        *OrderedStrings
	Templates        []TemplateDecl
	DotenvPaths      []string
}

// NewConfigEnvironment returns a ConfigEnvironment with initialised ordered
// maps, ready to be populated.
func NewConfigEnvironment() *ConfigEnvironment {
	return &ConfigEnvironment{
		DynamicVariables: NewOrderedStrings(nil, nil),
		Constants:        NewOrderedStrings(nil, nil),
	}
}

// DefaultEnvironmentName is used when a config declares no default_environment.
const DefaultEnvironmentName = "default"

// Config is the top-level merged configuration.
type Config struct {
	Header             string
	DefaultEnvironment string
	Environments       map[string]*ConfigEnvironment
	// EnvironmentOrder preserves the YAML declaration order of Environments,
	// since Go map iteration order is not stable and script discovery order
	// must be deterministic.
	EnvironmentOrder []string
	Params           []string
}

// NewConfig returns an empty Config with the default environment registered.
func NewConfig() *Config {
	return &Config{
		DefaultEnvironment: DefaultEnvironmentName,
		Environments:       map[string]*ConfigEnvironment{DefaultEnvironmentName: NewConfigEnvironment()},
		EnvironmentOrder:   []string{DefaultEnvironmentName},
	}
}

// Validate checks the invariant that the default environment exists and its
// namespace is empty.
func (c *Config) Validate() error {
	if c.DefaultEnvironment == "" {
		return fmt.Errorf("config: default_environment must not be empty")
	}
	env, ok := c.Environments[c.DefaultEnvironment]
	if !ok {
		return fmt.Errorf("config: default environment %q not defined", c.DefaultEnvironment)
	}
	for _, sp := range env.ScriptsPaths {
		if sp.Namespace != "" {
			return fmt.Errorf("config: default environment %q must not declare a namespace, got %q", c.DefaultEnvironment, sp.Namespace)
		}
	}
	return nil
}

// EnsureEnvironment returns the named environment, creating it (and
// registering it in EnvironmentOrder) if absent.
func (c *Config) EnsureEnvironment(name string) *ConfigEnvironment {
	if env, ok := c.Environments[name]; ok {
		return env
	}
	env := NewConfigEnvironment()
	if c.Environments == nil {
		c.Environments = make(map[string]*ConfigEnvironment)
	}
	c.Environments[name] = env
	c.EnvironmentOrder = append(c.EnvironmentOrder, name)
	return env
}
