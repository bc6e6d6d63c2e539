package configfile

import (
	"testing"

	"github.com/shelltab/shelltab/internal/model"
	"github.com/stretchr/testify/require"
)

func envWithConst(pairs map[string]string, order []string) *model.ConfigEnvironment {
	env := model.NewConfigEnvironment()
	env.Constants = model.NewOrderedStrings(order, pairs)
	return env
}

func TestOverride_ConstantsMergeWithOverrideWinning(t *testing.T) {
	t.Parallel()
	base := &model.Config{
		DefaultEnvironment: "default",
		EnvironmentOrder:   []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": envWithConst(map[string]string{"FOO": "1", "BAR": "2"}, []string{"FOO", "BAR"}),
		},
	}
	override := &model.Config{
		DefaultEnvironment: "default",
		EnvironmentOrder:   []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": envWithConst(map[string]string{"BAR": "9", "BAZ": "3"}, []string{"BAR", "BAZ"}),
		},
	}

	merged := Override(base, override)
	def := merged.Environments["default"]
	require.Equal(t, []string{"FOO", "BAR", "BAZ"}, def.Constants.Keys())
	v, _ := def.Constants.Get("FOO")
	require.Equal(t, "1", v)
	v, _ = def.Constants.Get("BAR")
	require.Equal(t, "9", v)
	v, _ = def.Constants.Get("BAZ")
	require.Equal(t, "3", v)
}

func TestOverride_ScriptsPathsReplacedWhenOverrideHasAny(t *testing.T) {
	t.Parallel()
	base := &model.Config{
		EnvironmentOrder: []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": {ScriptsPaths: []model.ScriptsPath{{Path: "/base"}}, Constants: model.NewOrderedStrings(nil, nil), DynamicVariables: model.NewOrderedStrings(nil, nil)},
		},
	}
	override := &model.Config{
		EnvironmentOrder: []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": {ScriptsPaths: []model.ScriptsPath{{Path: "/override"}}, Constants: model.NewOrderedStrings(nil, nil), DynamicVariables: model.NewOrderedStrings(nil, nil)},
		},
	}

	merged := Override(base, override)
	require.Equal(t, []model.ScriptsPath{{Path: "/override"}}, merged.Environments["default"].ScriptsPaths)
}

func TestOverride_ScriptsPathsFallBackToBaseWhenOverrideEmpty(t *testing.T) {
	t.Parallel()
	base := &model.Config{
		EnvironmentOrder: []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": {ScriptsPaths: []model.ScriptsPath{{Path: "/base"}}, Constants: model.NewOrderedStrings(nil, nil), DynamicVariables: model.NewOrderedStrings(nil, nil)},
		},
	}
	override := &model.Config{
		EnvironmentOrder: []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": model.NewConfigEnvironment(),
		},
	}

	merged := Override(base, override)
	require.Equal(t, []model.ScriptsPath{{Path: "/base"}}, merged.Environments["default"].ScriptsPaths)
}

func TestImport_ScriptsPathsAreConcatenated(t *testing.T) {
	t.Parallel()
	base := &model.Config{
		EnvironmentOrder: []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": {ScriptsPaths: []model.ScriptsPath{{Path: "/base"}}, Constants: model.NewOrderedStrings(nil, nil), DynamicVariables: model.NewOrderedStrings(nil, nil)},
		},
	}
	imp := &model.Config{
		EnvironmentOrder: []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": {ScriptsPaths: []model.ScriptsPath{{Path: "/extra"}}, Constants: model.NewOrderedStrings(nil, nil), DynamicVariables: model.NewOrderedStrings(nil, nil)},
		},
	}

	merged := Import(base, imp)
	require.Equal(t, []model.ScriptsPath{{Path: "/base"}, {Path: "/extra"}}, merged.Environments["default"].ScriptsPaths)
}

func TestOverride_IsIdempotentWhenOverrideEqualsBase(t *testing.T) {
	t.Parallel()
	base := &model.Config{
		Header:             "h",
		DefaultEnvironment: "default",
		EnvironmentOrder:   []string{"default"},
		Environments: map[string]*model.ConfigEnvironment{
			"default": envWithConst(map[string]string{"FOO": "1"}, []string{"FOO"}),
		},
	}

	merged := Override(base, base)
	require.Equal(t, base.Header, merged.Header)
	require.Equal(t, base.DefaultEnvironment, merged.DefaultEnvironment)
	v, _ := merged.Environments["default"].Constants.Get("FOO")
	require.Equal(t, "1", v)
}

func TestOverride_HeaderWinsIfNonEmpty(t *testing.T) {
	t.Parallel()
	base := &model.Config{Header: "base-header", EnvironmentOrder: []string{}, Environments: map[string]*model.ConfigEnvironment{}}
	override := &model.Config{Header: "", EnvironmentOrder: []string{}, Environments: map[string]*model.ConfigEnvironment{}}

	merged := Override(base, override)
	require.Equal(t, "base-header", merged.Header)

	override.Header = "override-header"
	merged = Override(base, override)
	require.Equal(t, "override-header", merged.Header)
}

func TestMergeEnvironment_HiddenIsOrCombined(t *testing.T) {
	t.Parallel()
	base := model.NewConfigEnvironment()
	base.Hidden = true
	override := model.NewConfigEnvironment()
	override.Hidden = false

	merged := mergeEnvironment(base, override, false)
	require.True(t, merged.Hidden)
}
