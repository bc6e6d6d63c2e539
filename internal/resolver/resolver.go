// Package resolver builds value providers and templates from the raw
// configuration shapes in internal/model. It is pure function-style: every
// operation returns a new mapping and shares no mutable state with its
// inputs.
package resolver

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/shelltab/shelltab/internal/model"
	"github.com/shelltab/shelltab/internal/valueprovider"
)

// ResolveConstants wraps each constant as an already-resolved Simple value
// provider, identity-wrapping the literal string.
func ResolveConstants(constants *model.OrderedStrings) map[string]valueprovider.Provider {
	out := make(map[string]valueprovider.Provider, constants.Len())
	constants.Range(func(key, value string) {
		out[key] = valueprovider.Simple{Value: value}
	})
	return out
}

// ResolveVariables wraps each value as a shell expression: the provider
// executes it lazily, the first time it's asked for a value.
func ResolveVariables(dynamic *model.OrderedStrings) map[string]valueprovider.Provider {
	out := make(map[string]valueprovider.Provider, dynamic.Len())
	dynamic.Range(func(key, expr string) {
		out[key] = valueprovider.NewDeferred(expr)
	})
	return out
}

// ResolveTemplates converts template declarations (already path-resolved by
// the Config Loader) into lazily-loaded Template values.
func ResolveTemplates(decls []model.TemplateDecl) []*model.Template {
	out := make([]*model.Template, 0, len(decls))
	for _, d := range decls {
		out = append(out, model.NewTemplate(d.Source, d.Destination))
	}
	return out
}

// ResolveDotenvVariables parses each dotenv file in order and returns a
// single map of Simple value providers. Later files overwrite earlier ones
// on key collision — this function owns that precedence; callers never see
// partial per-file maps.
func ResolveDotenvVariables(paths []string) (map[string]valueprovider.Provider, error) {
	out := make(map[string]valueprovider.Provider)
	for _, path := range paths {
		vars, err := parseDotenvFile(path)
		if err != nil {
			return nil, fmt.Errorf("resolving dotenv %q: %w", path, err)
		}
		for k, v := range vars {
			out[k] = valueprovider.Simple{Value: v}
		}
	}
	return out, nil
}

// parseDotenvFile reads KEY=VALUE lines from a dotenv file. Blank lines and
// lines starting with # are ignored. Values may be surrounded by matching
// single or double quotes.
func parseDotenvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	vars := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			continue
		}
		value = unquote(value)
		vars[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// unquote strips a single layer of matching single or double quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
