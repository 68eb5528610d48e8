package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/route"
	"github.com/Alia5/routegen/internal/symbol"
	"github.com/Alia5/routegen/pkg/router"
)

// Planner builds emission requests for one module.
type Planner struct {
	names   *common.Names
	module  string
	suffix  string
	pkgName string
}

// NewPlanner returns a planner for the sanitized module identifier. When
// hashed is set, generated type names carry a digest of the module instead
// of the module itself.
func NewPlanner(n *common.Names, module, pkgName string, hashed bool) *Planner {
	suffix := module
	if hashed {
		suffix = common.HashName(module)
	}
	return &Planner{names: n, module: module, suffix: suffix, pkgName: pkgName}
}

// Module returns the module identifier the planner registers artifacts under.
func (p *Planner) Module() string { return p.module }

func (p *Planner) typeName(prefix string, parts ...string) string {
	return common.TypeName(p.names.Separator, prefix, append([]string{p.suffix}, parts...)...)
}

func (p *Planner) newImports(reserved ...string) *imports {
	return newImports(map[string]string{
		p.names.Runtime: "router",
		"reflect":       "reflect",
	}, reserved...)
}

// GroupTypeName returns the generated loader name for group.
func (p *Planner) GroupTypeName(group string) string {
	return p.typeName(p.names.GroupPrefix, common.SanitizeIdent(group))
}

// RouteState is the accumulated output of the route processor.
type RouteState struct {
	Groups *route.GroupSet
	// Providers maps the provider key (interface or class name) to its route.
	Providers map[string]*route.Meta
	// Prototypes maps a target's qualified name to the provider interfaces
	// it is registered under.
	Prototypes map[string][]string
	Docs       bool
}

// Routes plans the group loaders, the provider loader, the root index and
// optionally the documentation file.
func (p *Planner) Routes(s RouteState) (Plan, error) {
	var plan Plan

	groupTypes := map[string]string{}
	owner := map[string]string{}
	var all []symbol.Declaration
	for _, g := range s.Groups.Groups() {
		name := p.GroupTypeName(g)
		// Generated file names are lowercased.
		fold := strings.ToLower(name)
		if prev, ok := owner[fold]; ok {
			return Plan{}, fmt.Errorf("groups %q and %q map to the same generated type %s", prev, g, name)
		}
		owner[fold] = g
		groupTypes[g] = name

		req, decls := p.group(name, s.Groups.Routes(g))
		all = append(all, decls...)
		plan.Types = append(plan.Types, req)
	}

	if len(s.Providers) > 0 {
		plan.Types = append(plan.Types, p.providers(s.Providers))
	}
	if len(groupTypes) > 0 {
		plan.Types = append(plan.Types, p.root(s.Groups.Groups(), groupTypes, all))
	}

	if s.Docs {
		raw, err := p.docs(s.Groups, s.Prototypes, all)
		if err != nil {
			return Plan{}, err
		}
		plan.Raw = append(plan.Raw, raw)
	}
	return plan, nil
}

func (p *Planner) group(name string, routes []*route.Meta) (TypeRequest, []symbol.Declaration) {
	const param = "atlas"
	im := p.newImports(param)
	body := nilGuard(param)
	var decls []symbol.Declaration
	for _, m := range routes {
		body = append(body, fmt.Sprintf("%s[%s] = %s(%s, %s, %s, %s, %s, %d, %d)",
			param,
			strconv.Quote(m.Path),
			im.qualify(p.names.Runtime, "Build"),
			im.qualify(p.names.Runtime, routeTypeConst(m.Type)),
			typeOf(im, m.Target),
			strconv.Quote(strings.ToLower(m.Path)),
			strconv.Quote(strings.ToLower(m.Group)),
			paramsLiteral(im, p.names.Runtime, m),
			m.Priority,
			m.Extra,
		))
		decls = append(decls, m.Target)
	}
	return TypeRequest{
		Package:   p.pkgName,
		TypeName:  name,
		SuperType: im.qualify(p.names.Runtime, "RouteGroup"),
		Method: Method{
			Name:      "LoadInto",
			Param:     param,
			ParamType: "map[string]*" + im.qualify(p.names.Runtime, "RouteMeta"),
		},
		Body:    body,
		Imports: im.list(),
		Deps:    files(decls...),
	}, decls
}

func (p *Planner) providers(providers map[string]*route.Meta) TypeRequest {
	const param = "providers"
	im := p.newImports(param)
	body := nilGuard(param)
	var decls []symbol.Declaration
	for _, key := range common.SortedKeys(providers) {
		m := providers[key]
		body = append(body, fmt.Sprintf("%s[%s] = %s(%s, %s, %s, %s, nil, %d, %d)",
			param,
			strconv.Quote(key),
			im.qualify(p.names.Runtime, "Build"),
			im.qualify(p.names.Runtime, routeTypeConst(m.Type)),
			typeOf(im, m.Target),
			strconv.Quote(m.Path),
			strconv.Quote(m.Group),
			m.Priority,
			m.Extra,
		))
		decls = append(decls, m.Target)
	}
	name := p.typeName(p.names.ProvidersPrefix)
	return TypeRequest{
		Package:   p.pkgName,
		TypeName:  name,
		SuperType: im.qualify(p.names.Runtime, "ProviderGroup"),
		Method: Method{
			Name:      "LoadInto",
			Param:     param,
			ParamType: "map[string]*" + im.qualify(p.names.Runtime, "RouteMeta"),
		},
		Body:     body,
		Register: fmt.Sprintf("%s(%s, %s{})", im.qualify(p.names.Runtime, "RegisterProviders"), strconv.Quote(p.module), name),
		Imports:  im.list(),
		Deps:     files(decls...),
	}
}

func (p *Planner) root(groups []string, groupTypes map[string]string, decls []symbol.Declaration) TypeRequest {
	const param = "routes"
	im := p.newImports(param)
	body := nilGuard(param)
	for _, g := range groups {
		body = append(body, fmt.Sprintf("%s[%s] = %s{}", param, strconv.Quote(g), groupTypes[g]))
	}
	name := p.typeName(p.names.RootPrefix)
	return TypeRequest{
		Package:   p.pkgName,
		TypeName:  name,
		SuperType: im.qualify(p.names.Runtime, "RouteRoot"),
		Method: Method{
			Name:      "LoadInto",
			Param:     param,
			ParamType: "map[string]" + im.qualify(p.names.Runtime, "RouteGroup"),
		},
		Body:     body,
		Register: fmt.Sprintf("%s(%s, %s{})", im.qualify(p.names.Runtime, "RegisterRoot"), strconv.Quote(p.module), name),
		Imports:  im.list(),
		Deps:     files(decls...),
	}
}

// Services plans the service loader holding every binding of the round.
func (p *Planner) Services(reg *route.ServiceRegistry) TypeRequest {
	const param = "services"
	im := p.newImports(param)
	body := nilGuard(param)
	var decls []symbol.Declaration
	for _, iface := range reg.Interfaces() {
		for _, b := range reg.Bindings(iface) {
			body = append(body, fmt.Sprintf("%s[%s] = %s(%s, %s, %s, %t)",
				param,
				strconv.Quote(router.ServiceKey(iface, b.Key)),
				im.qualify(p.names.Runtime, "NewServiceImpl"),
				typeOf(im, b.Interface),
				strconv.Quote(b.Key),
				typeOf(im, b.Implementation),
				b.Singleton,
			))
			decls = append(decls, b.Implementation)
		}
	}
	name := p.typeName(p.names.ServicePrefix)
	return TypeRequest{
		Package:   p.pkgName,
		TypeName:  name,
		SuperType: im.qualify(p.names.Runtime, "ServiceGroup"),
		Method: Method{
			Name:      "LoadInto",
			Param:     param,
			ParamType: "map[string]*" + im.qualify(p.names.Runtime, "ServiceImpl"),
		},
		Body:     body,
		Register: fmt.Sprintf("%s(%s, %s{})", im.qualify(p.names.Runtime, "RegisterServices"), strconv.Quote(p.module), name),
		Imports:  im.list(),
		Deps:     files(decls...),
	}
}

func nilGuard(param string) []string {
	return []string{"if " + param + " == nil {", "return", "}"}
}

func typeOf(im *imports, d symbol.Declaration) string {
	return fmt.Sprintf("%s[%s]()", im.qualify("reflect", "TypeFor"), im.qualify(d.Package(), d.Name()))
}

func routeTypeConst(t router.RouteType) string {
	switch t {
	case router.TypeActivity:
		return "TypeActivity"
	case router.TypeService:
		return "TypeService"
	case router.TypeProvider:
		return "TypeProvider"
	case router.TypeFragment:
		return "TypeFragment"
	default:
		return "TypeUnknown"
	}
}

func paramsLiteral(im *imports, runtime string, m *route.Meta) string {
	if len(m.Params) == 0 {
		return "nil"
	}
	var b strings.Builder
	b.WriteString("map[string]" + im.qualify(runtime, "TypeKind") + "{")
	for i, prm := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(prm.Key) + ": " + im.qualify(runtime, prm.Kind.GoName()))
	}
	b.WriteString("}")
	return b.String()
}
