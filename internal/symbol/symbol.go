// Package symbol is the capability contract the processors consume from a
// source introspection host: declarations, their annotations, supertypes and
// properties, and a resolver that finds declarations by name.
package symbol

import "strings"

// Kind is the declaration kind as far as classification is concerned.
type Kind int

const (
	KindOther Kind = iota
	KindClass
	KindInterface
)

// Declaration is a named type in the scanned source tree.
type Declaration interface {
	// QualifiedName is "<import path>.<Name>".
	QualifiedName() string
	Name() string
	// Package is the import path of the declaring package.
	Package() string
	Kind() Kind
	IsAbstract() bool
	Annotations() []Annotation
	SuperTypes() []TypeRef
	Properties() []Property
	// File is the source file the declaration lives in, empty for
	// declarations known only from compiled export data.
	File() string
}

// Resolver enumerates and resolves declarations for one round.
type Resolver interface {
	// SymbolsWithAnnotation returns the declarations carrying the named
	// annotation, ordered by qualified name.
	SymbolsWithAnnotation(name string) []Declaration
	// Lookup resolves a qualified name. A false result is the
	// "not yet resolvable" signal.
	Lookup(qualifiedName string) (Declaration, bool)
}

// TypeRef is a lazily resolvable reference to another declaration.
type TypeRef struct {
	Name string
}

// Resolve looks the reference up through r.
func (t TypeRef) Resolve(r Resolver) (Declaration, bool) {
	if t.Name == "" {
		return nil, false
	}
	return r.Lookup(t.Name)
}

// Property is a field declared on a class.
type Property struct {
	Name string
	// TypeName is the Go spelling of the field type with the package path
	// qualified, e.g. "string", "[]byte", "example.com/app/svc.Greeter".
	TypeName string
	// Type references the named type behind the field (pointers stripped);
	// it is the zero TypeRef for unnamed and basic types.
	Type        TypeRef
	Annotations []Annotation
}

// Annotation returns the first annotation named name.
func (p Property) Annotation(name string) (Annotation, bool) {
	return Find(p.Annotations, name)
}

// AnnotationOf returns the first annotation of d named name.
func AnnotationOf(d Declaration, name string) (Annotation, bool) {
	return Find(d.Annotations(), name)
}

// Find returns the first annotation in list named name.
func Find(list []Annotation, name string) (Annotation, bool) {
	for _, a := range list {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// SplitQualified splits "path/to/pkg.Name" into its package path and name.
func SplitQualified(q string) (pkg, name string) {
	i := strings.LastIndex(q, ".")
	if i < 0 {
		return "", q
	}
	return q[:i], q[i+1:]
}
