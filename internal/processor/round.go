// Package processor runs the annotation processors of a round: it discovers
// annotated declarations, accumulates routes and bindings and hands the
// resulting plans to an emitter.
package processor

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/Alia5/routegen/internal/symbol"
)

// Processor handles one annotation kind.
type Processor interface {
	Name() string
	Process(r symbol.Resolver) error
}

// New builds every processor for env. It fails before any discovery when
// the module options are invalid.
func New(env Environment) ([]Processor, error) {
	routes, err := NewRouteProcessor(env)
	if err != nil {
		return nil, err
	}
	service, err := NewServiceProcessor(env)
	if err != nil {
		return nil, err
	}
	page, err := NewPageProcessor(env)
	if err != nil {
		return nil, err
	}
	uri, err := NewUriProcessor(env)
	if err != nil {
		return nil, err
	}
	regex, err := NewRegexProcessor(env)
	if err != nil {
		return nil, err
	}
	return []Processor{routes, service, page, uri, regex}, nil
}

// Run runs each processor over r. A failing processor does not stop the
// others; all failures are logged and returned joined.
func Run(logger *slog.Logger, r symbol.Resolver, procs ...Processor) error {
	var errs []error
	for _, p := range procs {
		if err := runOne(p, r); err != nil {
			logger.Error("Processor failed", "processor", p.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func runOne(p Processor, r symbol.Resolver) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
		}
	}()
	return p.Process(r)
}
