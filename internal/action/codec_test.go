package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderMacroRoundTrip(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	jump, walk := noopAction("jump"), noopAction("walk")
	say := NewParameterizable(testMod, "say", func(Context, string) Result { return ResultSuccess })
	for _, a := range []NamedAction{jump, walk, say} {
		require.NoError(t, r.Register(a))
	}

	inner := NewMacro("inner", walk, say.Parameterize("Greet", "hello"))
	outer := NewMacro("outer", jump, inner, NewAlias("w", walk))

	loaded := NewLoader(r).LoadAction(outer.ToJSON())
	require.IsType(t, &Macro{}, loaded)
	assert.Equal(t, outer.ToJSON(), loaded.ToJSON())
	assert.NotSame(t, outer, loaded)

	members := loaded.(*Macro).Actions()
	assert.Same(t, jump, members[0])
	require.IsType(t, &Macro{}, members[1])
	assert.Equal(t, "hello", members[1].(*Macro).Actions()[1].(*Parameterized).Argument())
}

func TestLoaderDanglingAliasHeals(t *testing.T) {
	t.Parallel()

	obj := JSONObject{"type": "alias", "name": "<alias>:j", "parent": "other:jump", "alias": "j"}

	r := NewRegistry("")
	alias := NewLoader(r).AliasFromJSON(obj)
	require.NotNil(t, alias)
	assert.IsType(t, &Unavailable{}, alias.Base())
	assert.Equal(t, ResultPass, alias.Execute(CommonContext))

	// the placeholder keeps the reference through a save
	saved := alias.ToJSON()
	assert.Equal(t, "other:jump", saved["parent"])

	jump := NewSimple(ModInfo{ID: "other", Name: "Other"}, "jump", func(Context) Result { return ResultFail })
	require.NoError(t, r.Register(jump))

	healed := NewLoader(r).AliasFromJSON(saved)
	require.NotNil(t, healed)
	assert.Same(t, jump, healed.Base())
	assert.Equal(t, ResultFail, healed.Execute(CommonContext))
}

func TestLoaderReusesRegisteredInstances(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	a := noopAction("a")
	alias := NewAlias("quick", a)
	macro := NewMacro("m", a)
	for _, x := range []NamedAction{a, alias, macro} {
		require.NoError(t, r.Register(x))
	}

	l := NewLoader(r)
	assert.Same(t, alias, l.LoadAction(alias.ToJSON()))
	assert.Same(t, macro, l.LoadAction(macro.ToJSON()))
	assert.Same(t, a, l.LoadAction(a.ToJSON()))
}

func TestLoaderSkipsFailingMacroMembers(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	a := noopAction("a")
	require.NoError(t, r.Register(a))

	macro := NewLoader(r).MacroFromJSON(JSONObject{
		"type": "macro",
		"name": "m",
		"actions": []any{
			JSONObject{"type": "simple", "name": "test:a"},
			JSONObject{"type": "simple", "name": "test:missing"},
			JSONObject{"type": "parameterized", "name": "test:a", "arg": "x"},
			"not an object",
		},
	})
	require.NotNil(t, macro)
	assert.Equal(t, []NamedAction{a}, macro.Actions())
}

func TestLoaderRejects(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	require.NoError(t, r.Register(noopAction("a")))
	l := NewLoader(r)

	tests := []struct {
		name string
		obj  JSONObject
	}{
		{"unknown type", JSONObject{"type": "widget", "name": "test:a"}},
		{"type mismatch", JSONObject{"type": "parameterizable", "name": "test:a"}},
		{"alias without parent", JSONObject{"type": "alias", "alias": "x"}},
		{"macro without actions", JSONObject{"type": "macro", "name": "m"}},
		{"parameterized without arg", JSONObject{"type": "parameterized", "name": "test:a"}},
		{"untyped unknown name", JSONObject{"name": "test:nope"}},
		{"empty object", JSONObject{}},
	}
	for _, tt := range tests {
		assert.Nil(t, l.LoadAction(tt.obj), tt.name)
	}
}

func TestLoaderUntypedPrecedence(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	a := noopAction("a")
	require.NoError(t, r.Register(a))
	l := NewLoader(r)

	assert.IsType(t, &Alias{}, l.LoadAction(JSONObject{"parent": "test:a", "alias": "x"}))
	assert.IsType(t, &Macro{}, l.LoadAction(JSONObject{"name": "m", "actions": []any{}}))
	assert.Same(t, a, l.LoadAction(JSONObject{"name": "test:a"}))
}

func TestLoaderUnavailableResolvesAgain(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	l := NewLoader(r)
	obj := NewUnavailable("test:later").ToJSON()

	assert.IsType(t, &Unavailable{}, l.LoadAction(obj))

	later := noopAction("later")
	require.NoError(t, r.Register(later))
	assert.Same(t, later, l.LoadAction(obj))
}

func TestReadActionsJSONC(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	a := noopAction("a")
	require.NoError(t, r.Register(a))

	data := []byte(`[
		// exported from the clipboard
		{"type": "simple", "name": "test:a"},
		{"type": "alias", "parent": "test:a", "alias": "b"},
	]`)
	actions, err := NewLoader(r).ReadActions(data)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Same(t, a, actions[0])
	assert.Equal(t, "b", actions[1].Name())

	_, err = NewLoader(r).ReadActions([]byte("{not json"))
	require.Error(t, err)
}
