package processor

import (
	"github.com/Alia5/routegen/internal/classify"
	"github.com/Alia5/routegen/internal/codegen/emit"
	"github.com/Alia5/routegen/internal/extract"
	"github.com/Alia5/routegen/internal/symbol"
)

// HandlerProcessor handles page, uri and regex annotations. Each kind emits
// one init type registering its targets with the matching handler.
type HandlerProcessor struct {
	base
	kind       emit.HandlerKind
	annotation string
}

func NewPageProcessor(env Environment) (*HandlerProcessor, error) {
	return newHandlerProcessor(env, emit.HandlerPage)
}

func NewUriProcessor(env Environment) (*HandlerProcessor, error) {
	return newHandlerProcessor(env, emit.HandlerUri)
}

func NewRegexProcessor(env Environment) (*HandlerProcessor, error) {
	return newHandlerProcessor(env, emit.HandlerRegex)
}

func newHandlerProcessor(env Environment, kind emit.HandlerKind) (*HandlerProcessor, error) {
	b, err := newBase(env, kind.String())
	if err != nil {
		return nil, err
	}
	p := &HandlerProcessor{base: b, kind: kind}
	switch kind {
	case emit.HandlerUri:
		p.annotation = b.env.Names.UriAnnotation
	case emit.HandlerRegex:
		p.annotation = b.env.Names.RegexAnnotation
	default:
		p.annotation = b.env.Names.PageAnnotation
	}
	return p, nil
}

func (p *HandlerProcessor) Name() string { return p.kind.String() }

func (p *HandlerProcessor) Process(r symbol.Resolver) error {
	elements := r.SymbolsWithAnnotation(p.annotation)
	if len(elements) == 0 {
		return nil
	}
	p.logger.Info("Found annotated handlers", "count", len(elements))

	c := classify.New(r, p.env.Names)
	ex := extract.New(r, c, p.env.Names, p.logger)

	var entries []emit.HandlerEntry
	for _, d := range elements {
		if d.IsAbstract() {
			p.logger.Debug("Skipping abstract class", "class", d.QualifiedName())
			continue
		}
		role := c.Role(d, true)
		if role == classify.RoleNone {
			p.logger.Warn("Annotated class is not an activity, handler or fragment", "class", d.QualifiedName())
			continue
		}
		ann, _ := symbol.AnnotationOf(d, p.annotation)
		found, err := p.entries(ex, d, role, ann)
		if err != nil {
			return err
		}
		entries = append(entries, found...)
	}
	p.logger.Info("Collected handler registrations", "count", len(entries))

	req := p.planner.HandlerInit(p.kind, entries)
	return emit.Flush(p.env.Emitter, emit.Plan{Types: []emit.TypeRequest{req}})
}

func (p *HandlerProcessor) entries(ex *extract.Extractor, d symbol.Declaration, role classify.Role, ann symbol.Annotation) ([]emit.HandlerEntry, error) {
	var out []emit.HandlerEntry
	switch p.kind {
	case emit.HandlerPage:
		page, err := ex.Page(d, ann)
		if err != nil {
			return nil, err
		}
		for _, path := range page.Paths {
			out = append(out, emit.HandlerEntry{Target: d, Role: role, Path: path, Interceptors: page.Interceptors})
		}
	case emit.HandlerUri:
		uri, err := ex.Uri(d, ann)
		if err != nil {
			return nil, err
		}
		for _, path := range uri.Paths {
			out = append(out, emit.HandlerEntry{
				Target:       d,
				Role:         role,
				Scheme:       uri.Scheme,
				Host:         uri.Host,
				Path:         path,
				Exported:     uri.Exported,
				Interceptors: uri.Interceptors,
			})
		}
	case emit.HandlerRegex:
		rx, err := ex.Regex(d, ann)
		if err != nil {
			return nil, err
		}
		if rx.Regex != "" {
			out = append(out, emit.HandlerEntry{
				Target:       d,
				Role:         role,
				Regex:        rx.Regex,
				Exported:     rx.Exported,
				Priority:     rx.Priority,
				Interceptors: rx.Interceptors,
			})
		}
	}
	if len(out) == 0 {
		p.logger.Warn("Annotation declares nothing to register", "class", d.QualifiedName(), "annotation", p.annotation)
	}
	return out, nil
}
