package processor

import (
	"slices"

	"github.com/Alia5/routegen/internal/classify"
	"github.com/Alia5/routegen/internal/codegen/emit"
	"github.com/Alia5/routegen/internal/extract"
	"github.com/Alia5/routegen/internal/inject"
	"github.com/Alia5/routegen/internal/route"
	"github.com/Alia5/routegen/internal/symbol"
	"github.com/Alia5/routegen/pkg/router"
)

// RouteProcessor handles route annotations. It emits one loader per group,
// the provider loader, the root index and optionally the route docs.
type RouteProcessor struct {
	base
}

func NewRouteProcessor(env Environment) (*RouteProcessor, error) {
	b, err := newBase(env, "route")
	if err != nil {
		return nil, err
	}
	return &RouteProcessor{base: b}, nil
}

func (p *RouteProcessor) Name() string { return "route" }

func (p *RouteProcessor) Process(r symbol.Resolver) error {
	names := p.env.Names
	elements := r.SymbolsWithAnnotation(names.RouteAnnotation)
	if len(elements) == 0 {
		return nil
	}
	p.logger.Info("Found routes", "count", len(elements))

	c := classify.New(r, names)
	ex := extract.New(r, c, names, p.logger)
	ib := inject.NewBuilder(r, c, names)

	state := emit.RouteState{
		Groups:     route.NewGroupSet(),
		Providers:  map[string]*route.Meta{},
		Prototypes: map[string][]string{},
		Docs:       p.ctx.GenerateDoc,
	}

	for _, d := range elements {
		if d.IsAbstract() {
			p.logger.Warn("Skipping abstract route target", "class", d.QualifiedName())
			continue
		}
		ann, _ := symbol.AnnotationOf(d, names.RouteAnnotation)
		ra, err := ex.Route(d, ann)
		if err != nil {
			return err
		}

		rt := c.RouteType(d)
		if rt == router.TypeUnknown {
			p.logger.Warn("The route annotation is marked on an unsupported class", "class", d.QualifiedName())
			continue
		}

		var params []inject.Param
		if rt == router.TypeActivity || rt == router.TypeFragment {
			if params, err = ib.Collect(d); err != nil {
				return err
			}
		}

		paths := ra.Paths
		if len(paths) == 0 {
			paths = []string{""}
		}
		for _, path := range paths {
			m := &route.Meta{
				Path:     path,
				Group:    ra.Group,
				Name:     ra.Name,
				Type:     rt,
				Target:   d,
				Priority: ra.Priority,
				Extra:    ra.Extra,
				Params:   params,
			}
			if err := m.Verify(); err != nil {
				p.logger.Warn(">>> Route meta verify error <<<",
					"class", d.QualifiedName(),
					"path", path,
					"group", m.Group,
					"error", err)
				continue
			}
			state.Groups.Add(m)
			if rt == router.TypeProvider {
				p.addProvider(r, c, d, m, state)
			}
		}
	}
	p.logger.Info("Grouped routes",
		"groups", len(state.Groups.Groups()),
		"routes", state.Groups.Len(),
		"providers", len(state.Providers))

	plan, err := p.planner.Routes(state)
	if err != nil {
		return err
	}
	return emit.Flush(p.env.Emitter, plan)
}

// addProvider registers m under the provider marker for the class itself
// and under every direct supertype that extends the marker.
func (p *RouteProcessor) addProvider(r symbol.Resolver, c *classify.Classifier, d symbol.Declaration, m *route.Meta, s emit.RouteState) {
	for _, ref := range d.SuperTypes() {
		super, ok := ref.Resolve(r)
		if !ok {
			continue
		}
		var key string
		switch {
		case super.QualifiedName() == p.env.Names.Provider:
			key = d.QualifiedName()
		case c.IsSubclassOf(super, p.env.Names.Provider):
			key = super.QualifiedName()
		default:
			continue
		}
		s.Providers[key] = m
		proto := s.Prototypes[d.QualifiedName()]
		if !slices.Contains(proto, key) {
			s.Prototypes[d.QualifiedName()] = append(proto, key)
		}
	}
}
