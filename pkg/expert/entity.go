package expert

// Entry binds a user-selectable label to the system instruction that frames the model.
type Entry struct {
	Label       string `json:"label"`
	Instruction string `json:"instruction"`
}

// Role is the result of resolving a label against a Registry: either a known
// registry label or the unknown variant.
type Role struct {
	label string
	known bool
}

// Known returns the variant for a registry label.
func Known(label string) Role { return Role{label: label, known: true} }

// Unknown returns the variant used when a label is not registered.
func Unknown() Role { return Role{} }

func (r Role) IsKnown() bool { return r.known }

// Label is empty for the unknown variant.
func (r Role) Label() string { return r.label }

func (r Role) String() string {
	if !r.known {
		return "unknown"
	}
	return r.label
}
