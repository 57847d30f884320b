package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// Form is the read side of a submitted form. url.Values satisfies it.
type Form interface {
	Get(key string) string
}

// State records how a field value was resolved
type State int

const (
	// StateMissing marks a required field with no usable value
	StateMissing State = iota
	// StatePresent marks a value converted from the form
	StatePresent
	// StateDefaulted marks a field that fell back to its declared default
	StateDefaulted
)

func (s State) String() string {
	switch s {
	case StatePresent:
		return "present"
	case StateDefaulted:
		return "defaulted"
	default:
		return "missing"
	}
}

// Parser converts a raw, non-blank form value into a field value
type Parser func(raw string) (any, error)

// Field declares one bindable parameter of a record
type Field struct {
	Name string
	// Required fields have no default; a blank or unconvertible value is an error
	Required bool
	// Default is used for optional fields when the value is blank or unconvertible
	Default any
	// Parse converts the raw value; nil passes the string through
	Parse Parser
}

// Resolved is the outcome of binding a single field
type Resolved struct {
	Field string
	State State
	Value any
}

// Values holds resolved fields in declaration order
type Values struct {
	fields []Resolved
	index  map[string]int
}

func newValues(n int) Values {
	return Values{
		fields: make([]Resolved, 0, n),
		index:  make(map[string]int, n),
	}
}

func (v *Values) add(r Resolved) {
	v.index[r.Field] = len(v.fields)
	v.fields = append(v.fields, r)
}

// All returns the resolved fields in declaration order
func (v Values) All() []Resolved {
	out := make([]Resolved, len(v.fields))
	copy(out, v.fields)
	return out
}

// Lookup returns the resolution of the named field
func (v Values) Lookup(name string) (Resolved, bool) {
	i, ok := v.index[name]
	if !ok {
		return Resolved{}, false
	}
	return v.fields[i], true
}

// State returns how the named field was resolved
func (v Values) State(name string) State {
	r, _ := v.Lookup(name)
	return r.State
}

// String returns the named field as a string, or "" when it has no string value
func (v Values) String(name string) string {
	r, _ := v.Lookup(name)
	s, _ := r.Value.(string)
	return s
}

// URL returns the named field as a URL, or nil when it has none
func (v Values) URL(name string) *url.URL {
	r, _ := v.Lookup(name)
	u, _ := r.Value.(*url.URL)
	return u
}

// Rule is a cross-field check run after every field is resolved
type Rule func(values Values) []string

// Schema binds a form onto a record of type T
type Schema[T any] struct {
	Fields []Field
	Rules  []Rule
	// Build constructs the record from fully resolved values
	Build func(values Values) T
}

// Bind resolves every field against the form, then applies the rules.
// It returns either the built record and no errors, or the zero T and
// every error found; errors are never short-circuited.
func (s Schema[T]) Bind(form Form) (T, []string) {
	values := s.Resolve(form)

	var errs []string
	for _, r := range values.fields {
		if r.State == StateMissing {
			errs = append(errs, MissingFieldMessage(r.Field))
		}
	}

	for _, rule := range s.Rules {
		errs = append(errs, rule(values)...)
	}

	if len(errs) > 0 {
		var zero T
		return zero, errs
	}

	return s.Build(values), nil
}

// Resolve binds each declared field without running rules or building
func (s Schema[T]) Resolve(form Form) Values {
	values := newValues(len(s.Fields))
	for _, f := range s.Fields {
		values.add(resolveField(f, form))
	}
	return values
}

// MissingFieldMessage formats the error for an absent required field
func MissingFieldMessage(field string) string {
	return fmt.Sprintf("Form value missing for %s", field)
}

func resolveField(f Field, form Form) Resolved {
	raw := form.Get(f.Name)
	if strings.TrimSpace(raw) == "" {
		return fallback(f)
	}

	parse := f.Parse
	if parse == nil {
		parse = ParseString
	}

	value, err := parse(raw)
	if err != nil || value == nil {
		return fallback(f)
	}

	return Resolved{Field: f.Name, State: StatePresent, Value: value}
}

func fallback(f Field) Resolved {
	if f.Required {
		return Resolved{Field: f.Name, State: StateMissing}
	}
	return Resolved{Field: f.Name, State: StateDefaulted, Value: f.Default}
}
