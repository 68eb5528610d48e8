// Package extract reads routing annotations off declarations into typed
// values.
package extract

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/routegen/internal/classify"
	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/symbol"
)

// Route is the content of a route annotation.
type Route struct {
	Paths    []string
	Group    string
	Name     string
	Priority int
	Extra    int
}

// Page is the content of a page annotation.
type Page struct {
	Paths        []string
	Interceptors []symbol.Declaration
}

// Uri is the content of a uri annotation.
type Uri struct {
	Scheme       string
	Host         string
	Paths        []string
	Exported     bool
	Interceptors []symbol.Declaration
}

// Regex is the content of a regex annotation.
type Regex struct {
	Regex        string
	Exported     bool
	Priority     int
	Interceptors []symbol.Declaration
}

// Service is the content of a service annotation.
type Service struct {
	Interfaces  []symbol.Declaration
	Keys        []string
	Singleton   bool
	DefaultImpl bool
}

// Extractor reads annotations for one round.
type Extractor struct {
	resolver   symbol.Resolver
	classifier *classify.Classifier
	names      *common.Names
	logger     *slog.Logger
}

func New(r symbol.Resolver, c *classify.Classifier, n *common.Names, logger *slog.Logger) *Extractor {
	return &Extractor{resolver: r, classifier: c, names: n, logger: logger}
}

// Classes resolves a class-list field. Names that cannot be resolved are
// dropped with a warning; the resolved ones keep their declaration order.
func (e *Extractor) Classes(d symbol.Declaration, ann symbol.Annotation, field string) []symbol.Declaration {
	list := ann.Classes(e.resolver, field)
	if list.Partial() {
		e.logger.Warn("Dropping unresolvable classes",
			"class", d.QualifiedName(),
			"annotation", ann.Name,
			"field", field,
			"missing", list.Missing)
	}
	return list.Types
}

// Interceptors returns the usable interceptors listed on ann: concrete
// classes implementing the interceptor contract.
func (e *Extractor) Interceptors(d symbol.Declaration, ann symbol.Annotation) []symbol.Declaration {
	var out []symbol.Declaration
	for _, ic := range e.Classes(d, ann, "interceptors") {
		if !e.classifier.IsInterceptor(ic) {
			e.logger.Warn("Ignoring interceptor that is abstract or does not implement the interceptor contract",
				"class", d.QualifiedName(),
				"interceptor", ic.QualifiedName())
			continue
		}
		out = append(out, ic)
	}
	return out
}

func (e *Extractor) Route(d symbol.Declaration, ann symbol.Annotation) (Route, error) {
	priority, err := ann.Int("priority", -1)
	if err != nil {
		return Route{}, wrap(d, err)
	}
	extra, err := ann.Int("extra", 0)
	if err != nil {
		return Route{}, wrap(d, err)
	}
	return Route{
		Paths:    ann.Strings("path"),
		Group:    ann.String("group"),
		Name:     ann.String("name"),
		Priority: priority,
		Extra:    extra,
	}, nil
}

func (e *Extractor) Page(d symbol.Declaration, ann symbol.Annotation) (Page, error) {
	return Page{
		Paths:        ann.Strings("path"),
		Interceptors: e.Interceptors(d, ann),
	}, nil
}

func (e *Extractor) Uri(d symbol.Declaration, ann symbol.Annotation) (Uri, error) {
	exported, err := ann.Bool("exported", false)
	if err != nil {
		return Uri{}, wrap(d, err)
	}
	return Uri{
		Scheme:       ann.String("scheme"),
		Host:         ann.String("host"),
		Paths:        ann.Strings("path"),
		Exported:     exported,
		Interceptors: e.Interceptors(d, ann),
	}, nil
}

func (e *Extractor) Regex(d symbol.Declaration, ann symbol.Annotation) (Regex, error) {
	exported, err := ann.Bool("exported", false)
	if err != nil {
		return Regex{}, wrap(d, err)
	}
	priority, err := ann.Int("priority", 0)
	if err != nil {
		return Regex{}, wrap(d, err)
	}
	return Regex{
		Regex:        ann.String("regex"),
		Exported:     exported,
		Priority:     priority,
		Interceptors: e.Interceptors(d, ann),
	}, nil
}

func (e *Extractor) Service(d symbol.Declaration, ann symbol.Annotation) (Service, error) {
	singleton, err := ann.Bool("singleton", false)
	if err != nil {
		return Service{}, wrap(d, err)
	}
	def, err := ann.Bool("default", false)
	if err != nil {
		return Service{}, wrap(d, err)
	}
	return Service{
		Interfaces:  e.Classes(d, ann, "interfaces"),
		Keys:        ann.Strings("key"),
		Singleton:   singleton,
		DefaultImpl: def,
	}, nil
}

func wrap(d symbol.Declaration, err error) error {
	return fmt.Errorf("%s: %w", d.QualifiedName(), err)
}
