package action

// Alias forwards execution to a base action under a different name.
type Alias struct {
	base
	target NamedAction
}

// NewAlias creates a user-added alias for target, registered as "<alias>:<name>".
func NewAlias(name string, target NamedAction) *Alias {
	return &Alias{
		base: base{
			typ:          TypeAlias,
			name:         name,
			registryName: RegistryNameFor(AliasModInfo, name),
			mod:          AliasModInfo,
			comment:      target.Comment(),
		},
		target: target,
	}
}

// CreateAlias aliases a. Aliasing an alias aliases its base instead, so
// alias chains never form.
func CreateAlias(name string, a NamedAction) *Alias {
	if alias, ok := a.(*Alias); ok {
		return NewAlias(name, alias.target)
	}
	return NewAlias(name, a)
}

func (a *Alias) UserAdded() bool { return true }

// Base returns the action this alias forwards to.
func (a *Alias) Base() NamedAction { return a.target }

// SetName renames the alias. The registry name is left alone; it is derived
// again from the new name on the next load.
func (a *Alias) SetName(name string) { a.name = name }

// Execute returns exactly the base action's result.
func (a *Alias) Execute(ctx Context) Result {
	return a.target.Execute(ctx)
}

func (a *Alias) ToJSON() JSONObject {
	obj := a.baseJSON()
	if parent := a.target.RegistryName(); parent != "" {
		obj["parent"] = parent
	}
	obj["alias"] = a.name
	return obj
}
