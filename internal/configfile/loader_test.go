package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIsSupported(t *testing.T) {
	t.Parallel()
	require.True(t, isSupported("config.yaml"))
	require.True(t, isSupported("config.yml"))
	require.True(t, isSupported("config.dist.yaml"))
	require.True(t, isSupported("config.override.yml"))
	require.False(t, isSupported("config.json"))
	require.False(t, isSupported("config"))
}

func TestLoad_TopLevelPathsGoToDefaultEnvironment(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	path := writeFile(t, dir, "config.yaml", "paths:\n  - ./scripts\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "default", cfg.DefaultEnvironment)
	def := cfg.Environments["default"]
	require.Len(t, def.ScriptsPaths, 1)
	require.Equal(t, "", def.ScriptsPaths[0].Namespace)
	require.Equal(t, filepath.Join(dir, "scripts"), def.ScriptsPaths[0].Path)
}

func TestLoad_EnvironmentsInheritNamespace(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0o755))
	path := writeFile(t, dir, "config.yaml", `
paths:
  - ./a
environments:
  staging:
    paths:
      - ./b
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"default", "staging"}, cfg.EnvironmentOrder)
	staging := cfg.Environments["staging"]
	require.Len(t, staging.ScriptsPaths, 1)
	require.Equal(t, "staging", staging.ScriptsPaths[0].Namespace)
	require.Len(t, cfg.Environments["default"].ScriptsPaths, 1)
}

func TestLoad_ConstDynamicPreserveOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
const:
  FOO: one
  BAR: two
dynamic:
  BAZ: "echo hi"
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	def := cfg.Environments["default"]
	require.Equal(t, []string{"FOO", "BAR"}, def.Constants.Keys())
	v, ok := def.DynamicVariables.Get("BAZ")
	require.True(t, ok)
	require.Equal(t, "echo hi", v)
}

func TestLoad_TemplatesResolvedRelativeToConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "tmpl.src", "content")
	path := writeFile(t, dir, "config.yaml", `
templates:
  - source: ./tmpl.src
    destination: ./out/rendered
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	def := cfg.Environments["default"]
	require.Len(t, def.Templates, 1)
	require.Equal(t, filepath.Join(dir, "tmpl.src"), def.Templates[0].Source)
	require.Equal(t, filepath.Join(dir, "out", "rendered"), def.Templates[0].Destination)
}

func TestLoad_MissingScriptPathIsNotAnError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
paths:
  - ./does-not-exist
environments:
  staging:
    paths:
      - ./also-missing
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "does-not-exist"), cfg.Environments["default"].ScriptsPaths[0].Path)
}

func TestLoad_MissingTemplateSourceIsAnError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
templates:
  - source: ./missing.src
    destination: ./out/rendered
`)

	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestLoad_ImportMergesAdditively(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "base"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "extra"), 0o755))
	writeFile(t, dir, "extra.yaml", `
paths:
  - ./extra
const:
  FROM_EXTRA: yes
`)
	path := writeFile(t, dir, "config.yaml", `
paths:
  - ./base
const:
  FOO: base
import:
  - ./extra.yaml
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	def := cfg.Environments["default"]
	require.Len(t, def.ScriptsPaths, 2)
	v, ok := def.Constants.Get("FROM_EXTRA")
	require.True(t, ok)
	require.Equal(t, "yes", v)
}

func TestLoad_ImportCycleIsDetected(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.yaml")
	pathB := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(pathA, []byte("import:\n  - ./b.yaml\n"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("import:\n  - ./a.yaml\n"), 0o644))

	_, err := Load(pathA, nil)
	require.Error(t, err)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{}`)

	_, err := Load(path, nil)
	require.Error(t, err)
}
