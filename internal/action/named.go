package action

// JSONObject is the decoded form of one persisted action.
type JSONObject = map[string]any

// NamedAction is an action with identity, owner metadata and a JSON form.
//
// The set of implementations is closed: *Simple, *Parameterizable,
// *Parameterized, *Alias, *Macro and *Unavailable. Code that needs
// variant-specific behaviour switches on the concrete type.
type NamedAction interface {
	Type() Type
	Name() string
	DisplayName() string
	// RegistryName is the stable "<modid>:<name>" key, empty for ephemeral actions.
	RegistryName() string
	ModInfo() ModInfo
	// Comment is the help text shown alongside the action.
	Comment() string
	// UserAdded reports whether end-user configuration created this action.
	UserAdded() bool
	Execute(ctx Context) Result
	ToJSON() JSONObject

	namedAction()
}

// base carries the fields shared by all variants.
type base struct {
	typ          Type
	name         string
	displayName  string
	registryName string
	mod          ModInfo
	comment      string
}

func (b *base) Type() Type           { return b.typ }
func (b *base) Name() string         { return b.name }
func (b *base) RegistryName() string { return b.registryName }
func (b *base) ModInfo() ModInfo     { return b.mod }
func (b *base) Comment() string      { return b.comment }
func (b *base) UserAdded() bool      { return false }
func (b *base) namedAction()         {}

func (b *base) DisplayName() string {
	if b.displayName != "" {
		return b.displayName
	}
	return b.name
}

// baseJSON writes the fields every variant shares.
func (b *base) baseJSON() JSONObject {
	obj := JSONObject{"type": b.typ.String()}
	if b.registryName != "" {
		obj["name"] = b.registryName
	}
	return obj
}

// Simple wraps a zero-argument Action.
type Simple struct {
	base
	action Action
}

// NewSimple creates a built-in action registered as "<mod.ID>:<name>".
func NewSimple(mod ModInfo, name string, a Action) *Simple {
	return &Simple{
		base: base{
			typ:          TypeSimple,
			name:         name,
			registryName: RegistryNameFor(mod, name),
			mod:          mod,
		},
		action: a,
	}
}

// WithComment sets the help text and returns the action for chaining.
func (s *Simple) WithComment(comment string) *Simple {
	s.comment = comment
	return s
}

// WithDisplayName sets a display name distinct from the identifier name.
func (s *Simple) WithDisplayName(name string) *Simple {
	s.displayName = name
	return s
}

func (s *Simple) Execute(ctx Context) Result {
	return s.action(ctx)
}

func (s *Simple) ToJSON() JSONObject {
	return s.baseJSON()
}

// Parameterizable wraps an action that takes a string argument.
type Parameterizable struct {
	base
	action ParameterizedAction
}

// NewParameterizable creates a built-in parameterizable action registered as "<mod.ID>:<name>".
func NewParameterizable(mod ModInfo, name string, a ParameterizedAction) *Parameterizable {
	return &Parameterizable{
		base: base{
			typ:          TypeParameterizable,
			name:         name,
			registryName: RegistryNameFor(mod, name),
			mod:          mod,
		},
		action: a,
	}
}

// WithComment sets the help text and returns the action for chaining.
func (p *Parameterizable) WithComment(comment string) *Parameterizable {
	p.comment = comment
	return p
}

// Execute runs the action with an empty argument.
func (p *Parameterizable) Execute(ctx Context) Result {
	return p.action(ctx, "")
}

// ExecuteWithArgument runs the action with the given argument.
func (p *Parameterizable) ExecuteWithArgument(ctx Context, arg string) Result {
	return p.action(ctx, arg)
}

// Parameterize bakes an argument into a new, independent action.
func (p *Parameterizable) Parameterize(name, arg string) *Parameterized {
	if name == "" {
		name = p.name
	}
	return &Parameterized{
		base: base{
			typ:     TypeParameterized,
			name:    name,
			mod:     p.mod,
			comment: p.comment,
		},
		parent: p,
		arg:    arg,
	}
}

func (p *Parameterizable) ToJSON() JSONObject {
	return p.baseJSON()
}

// Parameterized is a Parameterizable with a fixed argument. It has no
// registry name of its own and lives inside macros and hotkeys.
type Parameterized struct {
	base
	parent *Parameterizable
	arg    string
}

func (p *Parameterized) UserAdded() bool { return true }

// Parent returns the parameterizable action this one was created from.
func (p *Parameterized) Parent() *Parameterizable { return p.parent }

// Argument returns the baked-in argument.
func (p *Parameterized) Argument() string { return p.arg }

// CreateCopy returns an independent instance with a new name and argument.
func (p *Parameterized) CreateCopy(newName, newArg string) *Parameterized {
	return p.parent.Parameterize(newName, newArg)
}

func (p *Parameterized) Execute(ctx Context) Result {
	return p.parent.action(ctx, p.arg)
}

func (p *Parameterized) ToJSON() JSONObject {
	obj := p.baseJSON()
	obj["name"] = p.parent.RegistryName()
	obj["display_name"] = p.name
	obj["arg"] = p.arg
	return obj
}

// Unavailable stands in for a reference that did not resolve at load time.
// It keeps the original registry name so the reference survives a save and
// resolves again once the owning module is back.
type Unavailable struct {
	base
}

// NewUnavailable creates a placeholder for the unresolved registry name.
func NewUnavailable(registryName string) *Unavailable {
	return &Unavailable{
		base: base{
			typ:          TypeUnavailable,
			name:         UnavailableModInfo.ID,
			registryName: registryName,
			mod:          UnavailableModInfo,
		},
	}
}

// Execute does nothing.
func (u *Unavailable) Execute(ctx Context) Result {
	return ResultPass
}

func (u *Unavailable) ToJSON() JSONObject {
	return u.baseJSON()
}
