package domain

// FormErrors holds at most one error message per form field.
// An empty slot means the field is valid or has not been validated yet.
type FormErrors [numFields]string

// Get returns the message recorded for f, or "".
func (e FormErrors) Get(f Field) string {
	if f >= numFields {
		return ""
	}
	return e[f]
}

// Set records msg for f. Setting "" is the same as Clear.
func (e *FormErrors) Set(f Field, msg string) {
	if f < numFields {
		e[f] = msg
	}
}

// Clear removes any message recorded for f.
func (e *FormErrors) Clear(f Field) {
	e.Set(f, "")
}

// Any reports whether at least one field holds a message.
func (e FormErrors) Any() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// Map returns the recorded messages keyed by wire field name.
// Fields without a message are omitted.
func (e FormErrors) Map() map[string]string {
	out := make(map[string]string)
	for i, msg := range e {
		if msg != "" {
			out[Field(i).String()] = msg
		}
	}
	return out
}
