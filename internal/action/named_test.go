package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMod = ModInfo{ID: "test", Name: "Test Mod"}

// recorder returns a simple action that logs its name and returns result.
func recorder(log *[]string, name string, result Result) *Simple {
	return NewSimple(testMod, name, func(Context) Result {
		*log = append(*log, name)
		return result
	})
}

func TestSimpleRegistryName(t *testing.T) {
	t.Parallel()

	a := NewSimple(testMod, "doThing", func(Context) Result { return ResultSuccess }).
		WithComment("Does the thing").
		WithDisplayName("Do Thing")

	assert.Equal(t, "test:doThing", a.RegistryName())
	assert.Equal(t, "doThing", a.Name())
	assert.Equal(t, "Do Thing", a.DisplayName())
	assert.Equal(t, TypeSimple, a.Type())
	assert.False(t, a.UserAdded())
	assert.Equal(t, JSONObject{"type": "simple", "name": "test:doThing"}, a.ToJSON())
}

func TestAliasTransparency(t *testing.T) {
	t.Parallel()

	for _, result := range []Result{ResultSuccess, ResultFail, ResultPass} {
		result := result
		t.Run(result.String(), func(t *testing.T) {
			t.Parallel()

			var log []string
			base := recorder(&log, "base", result)
			alias := NewAlias("short", base)

			assert.Equal(t, base.Execute(CommonContext), alias.Execute(CommonContext))
			assert.Equal(t, []string{"base", "base"}, log)
		})
	}
}

func TestAliasMetadata(t *testing.T) {
	t.Parallel()

	base := NewSimple(testMod, "save", func(Context) Result { return ResultSuccess }).WithComment("Saves")
	alias := NewAlias("s", base)

	assert.True(t, alias.UserAdded())
	assert.Equal(t, AliasModInfo, alias.ModInfo())
	assert.NotEqual(t, alias.ModInfo(), base.ModInfo())
	assert.Equal(t, "<alias>:s", alias.RegistryName())
	assert.Equal(t, "Saves", alias.Comment())
	assert.Equal(t, JSONObject{
		"type":   "alias",
		"name":   "<alias>:s",
		"parent": "test:save",
		"alias":  "s",
	}, alias.ToJSON())

	// aliasing an alias targets the original base
	again := CreateAlias("s2", alias)
	assert.Same(t, base, again.Base())
}

func TestMacroTotalExecution(t *testing.T) {
	t.Parallel()

	var log []string
	macro := NewMacro("batch",
		recorder(&log, "m1", ResultFail),
		recorder(&log, "m2", ResultSuccess),
		recorder(&log, "m3", ResultPass),
	)

	assert.Equal(t, ResultSuccess, macro.Execute(CommonContext))
	assert.Equal(t, []string{"m1", "m2", "m3"}, log)
	assert.True(t, macro.UserAdded())
	assert.Equal(t, "<macro>:batch", macro.RegistryName())
}

func TestParameterized(t *testing.T) {
	t.Parallel()

	var got []string
	setter := NewParameterizable(testMod, "setValue", func(_ Context, arg string) Result {
		got = append(got, arg)
		return ResultSuccess
	})

	p := setter.Parameterize("Set to 5", "5")
	assert.Equal(t, ResultSuccess, p.Execute(CommonContext))
	assert.Equal(t, "", p.RegistryName())
	assert.True(t, p.UserAdded())
	assert.Same(t, setter, p.Parent())

	cp := p.CreateCopy("Set to 7", "7")
	require.NotSame(t, p, cp)
	cp.Execute(CommonContext)
	assert.Equal(t, "5", p.Argument(), "copy must not alter the original")
	assert.Equal(t, []string{"5", "7"}, got)

	assert.Equal(t, JSONObject{
		"type":         "parameterized",
		"name":         "test:setValue",
		"display_name": "Set to 7",
		"arg":          "7",
	}, cp.ToJSON())

	setter.Execute(CommonContext)
	assert.Equal(t, "", got[2])
}

func TestUnavailable(t *testing.T) {
	t.Parallel()

	u := NewUnavailable("gone:action")
	assert.Equal(t, ResultPass, u.Execute(CommonContext))
	assert.Equal(t, "gone:action", u.RegistryName())
	assert.Equal(t, UnavailableModInfo, u.ModInfo())
	assert.Equal(t, JSONObject{"type": "unavailable", "name": "gone:action"}, u.ToJSON())
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypeSimple, TypeParameterizable, TypeParameterized, TypeAlias, TypeMacro, TypeUnavailable} {
		assert.Equal(t, typ, ParseType(typ.String()))
	}
	assert.Equal(t, TypeMacro, ParseType(" MACRO "))
	assert.Equal(t, TypeUnknown, ParseType("widget"))
}

func TestHoverInfo(t *testing.T) {
	t.Parallel()

	noop := func(Context) Result { return ResultSuccess }
	members := make([]NamedAction, 0, 10)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		members = append(members, NewSimple(testMod, name, noop))
	}

	lines := HoverInfo(NewMacro("big", members...))
	assert.Contains(t, lines, "Contains 10 actions:")
	assert.Contains(t, lines, "  ... and 2 more")

	// exactly one hidden entry is shown instead
	lines = ContainedActionsInfo(nil, members[:9], 8)
	assert.Len(t, lines, 10)

	alias := NewAlias("x", NewUnavailable("gone:x"))
	assert.Contains(t, HoverInfo(alias), "Base action registry name: gone:x")
	assert.Equal(t, "x (alias of Not available: <N/A>)", WidgetDisplayName(alias))
}
