package scanner

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/Alia5/routegen/internal/symbol"
)

// knownInterface is an interface a declaration may list as a supertype
// without embedding it.
type knownInterface struct {
	name  string
	iface *types.Interface
}

// marshalers are the stdlib interfaces that mark a field as serializable.
var marshalers = map[string]*types.Interface{
	"encoding.BinaryMarshaler": marshalerInterface("MarshalBinary", "data", types.NewSlice(types.Typ[types.Byte])),
	"encoding.TextMarshaler":   marshalerInterface("MarshalText", "text", types.NewSlice(types.Typ[types.Byte])),
}

func marshalerInterface(method, result string, typ types.Type) *types.Interface {
	errType := types.Universe.Lookup("error").Type()
	sig := types.NewSignatureType(nil, nil, nil, nil,
		types.NewTuple(
			types.NewVar(token.NoPos, nil, result, typ),
			types.NewVar(token.NoPos, nil, "err", errType),
		), false)
	fn := types.NewFunc(token.NoPos, nil, method, sig)
	return types.NewInterfaceType([]*types.Func{fn}, nil).Complete()
}

// knownInterfaces collects every exported, non-empty interface declared in
// a module package of the load graph, plus the marshaler interfaces.
func knownInterfaces(pkgs []*packages.Package) []knownInterface {
	var out []knownInterface
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		if pkg.Types == nil || pkg.Module == nil {
			return
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() || obj.IsAlias() {
				continue
			}
			iface, ok := obj.Type().Underlying().(*types.Interface)
			if !ok || iface.NumMethods() == 0 {
				continue
			}
			out = append(out, knownInterface{name: qualifiedName(obj), iface: iface})
		}
	})
	for _, name := range []string{"encoding.BinaryMarshaler", "encoding.TextMarshaler"} {
		out = append(out, knownInterface{name: name, iface: marshalers[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// declare builds the declaration of obj. Directives are read only when obj
// belongs to a scanned package.
func (p *Program) declare(obj *types.TypeName) symbol.Declaration {
	qn := qualifiedName(obj)
	c := &symbol.Class{Qualified: qn, DeclKind: symbol.KindOther}

	_, named := obj.Type().(*types.Named)
	switch u := obj.Type().Underlying().(type) {
	case *types.Struct:
		c.DeclKind = symbol.KindClass
		c.Supers = p.supers(qn, obj.Type(), embeddedStruct(u))
	case *types.Interface:
		c.DeclKind = symbol.KindInterface
		c.Supers = p.supers(qn, obj.Type(), embeddedInterface(u))
	default:
		if named {
			c.Supers = p.supers(qn, obj.Type(), nil)
		}
	}

	src, ok := p.sources[obj]
	if !ok {
		return c
	}
	c.SourceFile = src.path
	qualify := p.qualifier(src)
	c.Annots = p.directives(src.doc, qualify)

	if st, ok := obj.Type().Underlying().(*types.Struct); ok {
		fields := fieldDocs(src.spec)
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if f.Embedded() {
				continue
			}
			c.Props = append(c.Props, symbol.Property{
				Name:        f.Name(),
				TypeName:    typeName(f.Type()),
				Type:        typeRef(f.Type()),
				Annotations: p.directives(fields[f.Name()], qualify),
			})
		}
	}
	return c
}

// supers returns the embedded types followed by every known interface
// that t or *t implements, sorted and de-duplicated.
func (p *Program) supers(self string, t types.Type, embedded []string) []symbol.TypeRef {
	set := map[string]bool{}
	for _, e := range embedded {
		set[e] = true
	}
	_, isIface := t.Underlying().(*types.Interface)
	if n, ok := t.(*types.Named); ok && n.TypeParams().Len() > 0 {
		return symbol.Refs(sortedSet(set)...)
	}
	for _, k := range p.known {
		if k.name == self || set[k.name] {
			continue
		}
		if types.Implements(t, k.iface) || (!isIface && types.Implements(types.NewPointer(t), k.iface)) {
			set[k.name] = true
		}
	}
	return symbol.Refs(sortedSet(set)...)
}

func sortedSet(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func embeddedStruct(st *types.Struct) []string {
	var out []string
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		if n := namedOf(f.Type()); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func embeddedInterface(iface *types.Interface) []string {
	var out []string
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if n := namedOf(iface.EmbeddedType(i)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// namedOf returns the qualified name of t with pointers stripped, or "" for
// unnamed types.
func namedOf(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if n, ok := types.Unalias(t).(*types.Named); ok {
		return qualifiedName(n.Obj())
	}
	return ""
}

func typeRef(t types.Type) symbol.TypeRef {
	if n := namedOf(t); n != "" && strings.Contains(n, ".") {
		return symbol.TypeRef{Name: n}
	}
	return symbol.TypeRef{}
}

// typeName spells t with package paths. Named types over a basic type are
// spelled as the basic type.
func typeName(t types.Type) string {
	t = types.Unalias(t)
	if n, ok := t.(*types.Named); ok {
		if b, ok := n.Underlying().(*types.Basic); ok && n.Obj().Pkg() != nil {
			return b.Name()
		}
	}
	return types.TypeString(t, func(pkg *types.Package) string { return pkg.Path() })
}

func fieldDocs(spec *ast.TypeSpec) map[string][]*ast.CommentGroup {
	out := map[string][]*ast.CommentGroup{}
	st, ok := spec.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return out
	}
	for _, f := range st.Fields.List {
		for _, n := range f.Names {
			out[n.Name] = []*ast.CommentGroup{f.Doc, f.Comment}
		}
	}
	return out
}

// directives parses every directive in groups. Malformed type directives
// fail the load while indexing; malformed field directives are dropped.
func (p *Program) directives(groups []*ast.CommentGroup, qualify func(string) string) []symbol.Annotation {
	var out []symbol.Annotation
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			a, ok, err := symbol.ParseDirective(p.names.DirectivePrefix, c.Text)
			if !ok || err != nil {
				if err != nil {
					p.logger.Warn("Ignoring malformed directive", "pos", p.fset.Position(c.Pos()).String(), "error", err)
				}
				continue
			}
			a.Qualify = qualify
			out = append(out, a)
		}
	}
	return out
}

// qualifier resolves class names written in directives of src: names
// without a package are local, "pkg.Name" goes through the file imports and
// anything else is taken as already qualified.
func (p *Program) qualifier(src *typeSource) func(string) string {
	local := src.pkg.PkgPath
	imports := map[string]string{}
	for _, spec := range src.file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		var name string
		switch {
		case spec.Name != nil:
			name = spec.Name.Name
		case src.pkg.Imports[path] != nil:
			name = src.pkg.Imports[path].Name
		default:
			name = path[strings.LastIndex(path, "/")+1:]
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = path
	}
	return func(name string) string {
		pkg, typ := symbol.SplitQualified(name)
		if pkg == "" {
			return local + "." + typ
		}
		if path, ok := imports[pkg]; ok {
			return path + "." + typ
		}
		return name
	}
}
