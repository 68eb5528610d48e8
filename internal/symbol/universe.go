package symbol

import "sort"

// Class is a plain in-memory Declaration.
type Class struct {
	Qualified  string
	Abstract   bool
	DeclKind   Kind
	Annots     []Annotation
	Supers     []TypeRef
	Props      []Property
	SourceFile string
}

func (c *Class) QualifiedName() string { return c.Qualified }

func (c *Class) Name() string {
	_, n := SplitQualified(c.Qualified)
	return n
}

func (c *Class) Package() string {
	p, _ := SplitQualified(c.Qualified)
	return p
}

func (c *Class) Kind() Kind                { return c.DeclKind }
func (c *Class) IsAbstract() bool          { return c.Abstract || c.DeclKind == KindInterface }
func (c *Class) Annotations() []Annotation { return c.Annots }
func (c *Class) SuperTypes() []TypeRef     { return c.Supers }
func (c *Class) Properties() []Property    { return c.Props }
func (c *Class) File() string              { return c.SourceFile }

// Universe is an in-memory Resolver.
type Universe struct {
	decls map[string]Declaration
}

func NewUniverse(decls ...Declaration) *Universe {
	u := &Universe{decls: make(map[string]Declaration)}
	for _, d := range decls {
		u.Add(d)
	}
	return u
}

// Add registers d, replacing any declaration with the same qualified name.
func (u *Universe) Add(d Declaration) {
	u.decls[d.QualifiedName()] = d
}

func (u *Universe) Lookup(name string) (Declaration, bool) {
	d, ok := u.decls[name]
	return d, ok
}

func (u *Universe) SymbolsWithAnnotation(name string) []Declaration {
	var out []Declaration
	for _, d := range u.decls {
		if _, ok := AnnotationOf(d, name); ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QualifiedName() < out[j].QualifiedName() })
	return out
}

// Refs builds TypeRefs from qualified names.
func Refs(names ...string) []TypeRef {
	out := make([]TypeRef, len(names))
	for i, n := range names {
		out[i] = TypeRef{Name: n}
	}
	return out
}
