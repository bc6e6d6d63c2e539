package configfile

import (
	"dario.cat/mergo"

	"github.com/shelltab/shelltab/internal/model"
)

// scalars is merged via mergo for every pair of Config/ConfigEnvironment
// scalar fields: mergo.WithOverride only copies a non-zero field from the
// override side into the (pre-seeded with base) destination, which is
// exactly "override wins if non-empty" for strings and "OR" for bools (false
// is the zero value, so a true on either side survives).
type scalars struct {
	Header             string
	DefaultEnvironment string
}

type envScalars struct {
	Hidden      bool
	Description string
}

// Override merges two Configs under override semantics: override wins
// header/default_environment/description when non-empty and OR-combines
// hidden; scriptsPaths/templates are replaced wholesale by override when
// override declares any; dynamicVariables/constants/dotenvPaths are merged
// key-by-key (or path-by-path) with override winning on collision.
func Override(base, override *model.Config) *model.Config {
	return mergeConfig(base, override, false)
}

// Import merges two Configs under import semantics: scriptsPaths, templates,
// and dotenvPaths are concatenated (both sides kept) rather than replaced;
// dynamicVariables and constants are still merged the same way as Override.
func Import(base, imp *model.Config) *model.Config {
	return mergeConfig(base, imp, true)
}

func mergeConfig(base, other *model.Config, concatenate bool) *model.Config {
	if base == nil {
		return other
	}
	if other == nil {
		return base
	}

	sc := scalars{Header: base.Header, DefaultEnvironment: base.DefaultEnvironment}
	if err := mergo.Merge(&sc, scalars{Header: other.Header, DefaultEnvironment: other.DefaultEnvironment}, mergo.WithOverride); err != nil {
		// mergo only fails here on type mismatches, which can't happen for two
		// identically-typed literal structs; fall back to the override value
		// directly rather than propagate an error this function can't return.
		sc = scalars{Header: other.Header, DefaultEnvironment: other.DefaultEnvironment}
	}

	result := &model.Config{
		Header:             sc.Header,
		DefaultEnvironment: sc.DefaultEnvironment,
		Environments:       map[string]*model.ConfigEnvironment{},
		EnvironmentOrder:   mergeOrder(base.EnvironmentOrder, other.EnvironmentOrder),
		Params:             base.Params,
	}
	if len(other.Params) > 0 {
		result.Params = other.Params
	}

	for _, name := range result.EnvironmentOrder {
		result.Environments[name] = mergeEnvironment(base.Environments[name], other.Environments[name], concatenate)
	}
	return result
}

func mergeOrder(base, other []string) []string {
	seen := make(map[string]bool, len(base)+len(other))
	order := make([]string, 0, len(base)+len(other))
	for _, n := range base {
		if !seen[n] {
			seen[n] = true
			order = append(order, n)
		}
	}
	for _, n := range other {
		if !seen[n] {
			seen[n] = true
			order = append(order, n)
		}
	}
	return order
}

func mergeEnvironment(base, other *model.ConfigEnvironment, concatenate bool) *model.ConfigEnvironment {
	if base == nil && other == nil {
		return model.NewConfigEnvironment()
	}
	if base == nil {
		return other
	}
	if other == nil {
		return base
	}

	es := envScalars{Hidden: base.Hidden, Description: base.Description}
	if err := mergo.Merge(&es, envScalars{Hidden: other.Hidden, Description: other.Description}, mergo.WithOverride); err != nil {
		es = envScalars{Hidden: other.Hidden, Description: other.Description}
	}

	result := model.NewConfigEnvironment()
	result.Hidden = es.Hidden
	result.Description = es.Description
	result.DynamicVariables = base.DynamicVariables.Merge(other.DynamicVariables)
	result.Constants = base.Constants.Merge(other.Constants)

	if concatenate {
		result.ScriptsPaths = append(append([]model.ScriptsPath{}, base.ScriptsPaths...), other.ScriptsPaths...)
		result.Templates = append(append([]model.TemplateDecl{}, base.Templates...), other.Templates...)
		result.DotenvPaths = append(append([]string{}, base.DotenvPaths...), other.DotenvPaths...)
		return result
	}

	result.ScriptsPaths = base.ScriptsPaths
	if len(other.ScriptsPaths) > 0 {
		result.ScriptsPaths = other.ScriptsPaths
	}
	result.Templates = base.Templates
	if len(other.Templates) > 0 {
		result.Templates = other.Templates
	}
	result.DotenvPaths = mergeStringSet(base.DotenvPaths, other.DotenvPaths)
	return result
}

// mergeStringSet returns base's entries in order followed by any entry in
// other not already present — the override-mode "MERGED" rule applied to a
// plain ordered list rather than a name->value map.
func mergeStringSet(base, other []string) []string {
	seen := make(map[string]bool, len(base)+len(other))
	out := make([]string, 0, len(base)+len(other))
	for _, s := range base {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range other {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
