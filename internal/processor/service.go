package processor

import (
	"github.com/Alia5/routegen/internal/classify"
	"github.com/Alia5/routegen/internal/codegen/emit"
	"github.com/Alia5/routegen/internal/extract"
	"github.com/Alia5/routegen/internal/route"
	"github.com/Alia5/routegen/internal/symbol"
)

// ServiceProcessor handles service annotations and emits the service
// loader of the module.
type ServiceProcessor struct {
	base
}

func NewServiceProcessor(env Environment) (*ServiceProcessor, error) {
	b, err := newBase(env, "service")
	if err != nil {
		return nil, err
	}
	return &ServiceProcessor{base: b}, nil
}

func (p *ServiceProcessor) Name() string { return "service" }

func (p *ServiceProcessor) Process(r symbol.Resolver) error {
	names := p.env.Names
	elements := r.SymbolsWithAnnotation(names.ServiceAnno)
	if len(elements) == 0 {
		return nil
	}
	p.logger.Info("Found services", "count", len(elements))

	c := classify.New(r, names)
	ex := extract.New(r, c, names, p.logger)
	reg := route.NewServiceRegistry()

	for _, d := range elements {
		ann, _ := symbol.AnnotationOf(d, names.ServiceAnno)
		sa, err := ex.Service(d, ann)
		if err != nil {
			return err
		}

		keys := append([]string(nil), sa.Keys...)
		if len(keys) == 0 {
			keys = []string{""}
		}
		if sa.DefaultImpl {
			keys = append(keys, names.DefaultImplKey)
		}
		if err := route.ValidateKeys(d.QualifiedName(), keys); err != nil {
			return err
		}

		if len(sa.Interfaces) == 0 {
			p.logger.Warn("Service declares no resolvable interface", "class", d.QualifiedName())
			continue
		}
		for _, iface := range sa.Interfaces {
			if d.IsAbstract() || !c.IsSubclassOf(d, iface.QualifiedName()) {
				return &NotImplementedError{
					Implementation: d.QualifiedName(),
					Interface:      iface.QualifiedName(),
					Abstract:       d.IsAbstract(),
				}
			}
		}

		for _, iface := range sa.Interfaces {
			for _, key := range keys {
				err := reg.Register(&route.Binding{
					Interface:      iface,
					Key:            key,
					Implementation: d,
					Singleton:      sa.Singleton,
				})
				if err != nil {
					return err
				}
			}
		}
	}
	p.logger.Info("Registered service bindings", "interfaces", len(reg.Interfaces()), "bindings", reg.Len())

	return emit.Flush(p.env.Emitter, emit.Plan{Types: []emit.TypeRequest{p.planner.Services(reg)}})
}
