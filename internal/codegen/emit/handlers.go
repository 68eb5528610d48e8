package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Alia5/routegen/internal/classify"
	"github.com/Alia5/routegen/internal/symbol"
)

// HandlerKind selects which handler-init contract a plan implements.
type HandlerKind int

const (
	HandlerPage HandlerKind = iota
	HandlerUri
	HandlerRegex
)

func (k HandlerKind) String() string {
	switch k {
	case HandlerUri:
		return "uri"
	case HandlerRegex:
		return "regex"
	default:
		return "page"
	}
}

// HandlerEntry is one registration of a page, uri or regex target.
type HandlerEntry struct {
	Target       symbol.Declaration
	Role         classify.Role
	Scheme       string
	Host         string
	Path         string
	Regex        string
	Exported     bool
	Priority     int
	Interceptors []symbol.Declaration
}

func (e HandlerEntry) sortKey() string {
	return strings.Join([]string{e.Regex, e.Scheme, e.Host, e.Path, e.Target.QualifiedName()}, "\x00")
}

// HandlerInit plans the init type registering every entry with the
// handler of kind.
func (p *Planner) HandlerInit(kind HandlerKind, entries []HandlerEntry) TypeRequest {
	const param = "handler"
	im := p.newImports(param)

	sorted := append([]HandlerEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].sortKey() < sorted[j].sortKey() })

	body := nilGuard(param)
	var decls []symbol.Declaration
	for _, e := range sorted {
		var args []string
		switch kind {
		case HandlerPage:
			args = append(args, strconv.Quote(e.Path), p.target(im, e))
		case HandlerUri:
			args = append(args, strconv.Quote(e.Scheme), strconv.Quote(e.Host), strconv.Quote(e.Path),
				p.target(im, e), strconv.FormatBool(e.Exported))
		case HandlerRegex:
			args = append(args, strconv.Quote(e.Regex), p.target(im, e), strconv.FormatBool(e.Exported),
				strconv.Itoa(e.Priority))
		}
		for _, ic := range e.Interceptors {
			args = append(args, "&"+im.qualify(ic.Package(), ic.Name())+"{}")
			decls = append(decls, ic)
		}
		body = append(body, fmt.Sprintf("%s.Register(%s)", param, strings.Join(args, ", ")))
		decls = append(decls, e.Target)
	}

	var prefix, contract, handlerType, register string
	switch kind {
	case HandlerUri:
		prefix, contract, handlerType, register = p.names.UriInitPrefix, "UriAnnotationInit", "UriAnnotationHandler", "RegisterUriInit"
	case HandlerRegex:
		prefix, contract, handlerType, register = p.names.RegexInitPrefix, "RegexAnnotationInit", "RegexAnnotationHandler", "RegisterRegexInit"
	default:
		prefix, contract, handlerType, register = p.names.PageInitPrefix, "PageAnnotationInit", "PageAnnotationHandler", "RegisterPageInit"
	}
	name := p.typeName(prefix)
	return TypeRequest{
		Package:   p.pkgName,
		TypeName:  name,
		SuperType: im.qualify(p.names.Runtime, contract),
		Method: Method{
			Name:      "Init",
			Param:     param,
			ParamType: im.qualify(p.names.Runtime, handlerType),
		},
		Body:     body,
		Register: fmt.Sprintf("%s(%s, %s{})", im.qualify(p.names.Runtime, register), strconv.Quote(p.module), name),
		Imports:  im.list(),
		Deps:     files(decls...),
	}
}

func (p *Planner) target(im *imports, e HandlerEntry) string {
	qn := e.Target.QualifiedName()
	switch e.Role {
	case classify.RoleActivity:
		return strconv.Quote(qn)
	case classify.RoleFragment, classify.RoleFragmentCompat:
		return fmt.Sprintf("%s(%s)", im.qualify(p.names.Runtime, "NewFragmentTransactionHandler"), strconv.Quote(qn))
	default:
		return "&" + im.qualify(e.Target.Package(), e.Target.Name()) + "{}"
	}
}
