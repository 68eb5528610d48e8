package symbol

import (
	"fmt"
	"strconv"
	"strings"
)

// Annotation is one directive attached to a declaration or property.
// Values keep the raw text of every field; typed accessors interpret it.
type Annotation struct {
	Name   string
	Values map[string]string
	// Qualify rewrites a class name written in the directive into a
	// qualified name. Nil leaves names untouched.
	Qualify func(string) string
}

// Has reports whether field was set.
func (a Annotation) Has(field string) bool {
	_, ok := a.Values[field]
	return ok
}

// String returns the raw value of field, or "" when unset.
func (a Annotation) String(field string) string {
	return a.Values[field]
}

// Strings splits a comma separated field. Empty elements are dropped.
func (a Annotation) Strings(field string) []string {
	raw, ok := a.Values[field]
	if !ok {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Bool returns the boolean value of field, or def when unset.
func (a Annotation) Bool(field string, def bool) (bool, error) {
	raw, ok := a.Values[field]
	if !ok || raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("annotation %s: field %s: %w", a.Name, field, err)
	}
	return b, nil
}

// Int returns the integer value of field, or def when unset.
func (a Annotation) Int(field string, def int) (int, error) {
	raw, ok := a.Values[field]
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("annotation %s: field %s: %w", a.Name, field, err)
	}
	return n, nil
}

// ClassList is the result of reading a class-list field. It is either
// Resolved (Missing is empty) or PartiallyResolved.
type ClassList struct {
	Types   []Declaration
	Missing []string
}

// Partial reports whether some names could not be resolved.
func (c ClassList) Partial() bool { return len(c.Missing) > 0 }

// Classes resolves every class named in field, in declaration order.
func (a Annotation) Classes(r Resolver, field string) ClassList {
	var out ClassList
	for _, name := range a.Strings(field) {
		if a.Qualify != nil {
			name = a.Qualify(name)
		}
		d, ok := r.Lookup(name)
		if !ok {
			out.Missing = append(out.Missing, name)
			continue
		}
		out.Types = append(out.Types, d)
	}
	return out
}
