package forms

import "strings"

// FieldForm keys a form-level message not tied to one input.
const FieldForm = "form"

// FieldError is a validation message for one input.
type FieldError struct {
	Field   string
	Message string
}

// Errors is an ordered list of validation messages. A nil Errors means
// the form is valid.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "invalid form: " + strings.Join(msgs, "; ")
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Has reports whether field has a message; templates use it for styling.
func (e Errors) Has(field string) bool {
	return e.Get(field) != ""
}

// First returns the first message, used for the error toast.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

func (e *Errors) add(field, message string) {
	if e.Has(field) {
		return
	}
	*e = append(*e, FieldError{Field: field, Message: message})
}

// orNil keeps the "nil means valid" contract for callers comparing to nil.
func (e Errors) orNil() Errors {
	if len(e) == 0 {
		return nil
	}
	return e
}
