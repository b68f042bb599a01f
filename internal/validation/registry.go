package validation

// Registry holds the error entries of the most recent validation pass, plus
// any surfaced remote-operation failure. Entries keep insertion order; a
// field occurs at most once, and setting it again overwrites the message in
// place. An empty registry is the only "valid" signal the controller reads.
type Registry struct {
	entries []Entry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// SetField inserts or overwrites the entry for a field.
func (r *Registry) SetField(field Field, message string) {
	for i := range r.entries {
		if r.entries[i].Kind == KindField && r.entries[i].Field == field {
			r.entries[i].Message = message
			return
		}
	}
	r.entries = append(r.entries, Entry{Kind: KindField, Field: field, Message: message})
}

// ClearField removes the entry for a field, if present.
func (r *Registry) ClearField(field Field) {
	for i := range r.entries {
		if r.entries[i].Kind == KindField && r.entries[i].Field == field {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// SetOperation records a remote-operation failure. At most one operation
// entry exists at a time; a new one overwrites it.
func (r *Registry) SetOperation(message string) {
	for i := range r.entries {
		if r.entries[i].Kind == KindOperation {
			r.entries[i].Message = message
			return
		}
	}
	r.entries = append(r.entries, Entry{Kind: KindOperation, Message: message})
}

// ClearFields removes every field entry, keeping any operation entry. The
// form calls this when it closes so stale field errors never outlive the
// pass that produced them.
func (r *Registry) ClearFields() {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Kind != KindField {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

func (r *Registry) ClearOperation() {
	for i := range r.entries {
		if r.entries[i].Kind == KindOperation {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Reset empties the registry. Every validation pass starts here: the
// registry is rebuilt, not diffed.
func (r *Registry) Reset() {
	r.entries = nil
}

func (r *Registry) Empty() bool {
	return len(r.entries) == 0
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the current entries in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// FieldMessage returns the message for a field, if one is registered.
func (r *Registry) FieldMessage(field Field) (string, bool) {
	for _, e := range r.entries {
		if e.Kind == KindField && e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// Messages flattens the entries into display strings, in entry order.
func (r *Registry) Messages() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Message)
	}
	return out
}
