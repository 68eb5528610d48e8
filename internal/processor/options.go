package processor

import (
	"log/slog"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/codegen/emit"
)

// ModuleContext is the per-round module configuration.
type ModuleContext struct {
	// Module is the sanitized module identifier.
	Module      string
	GenerateDoc bool
}

// ParseModuleContext reads the module options. The module identifier is
// required.
func ParseModuleContext(opts map[string]string, n *common.Names) (ModuleContext, error) {
	module := common.SanitizeModule(opts[n.OptionModule])
	if module == "" {
		return ModuleContext{}, &ConfigError{Key: n.OptionModule, Err: ErrNoModuleName}
	}
	return ModuleContext{
		Module:      module,
		GenerateDoc: opts[n.OptionGenerateDoc] == n.OptionEnable,
	}, nil
}

// Environment is what every processor is built from.
type Environment struct {
	Logger  *slog.Logger
	Emitter emit.Emitter
	Names   *common.Names
	Options map[string]string
	// Package is the package name of the generated files.
	Package string
	// HashedNames replaces the module identifier in generated type names
	// with its digest.
	HashedNames bool
}

// base carries what every processor shares once the options are parsed.
type base struct {
	env     Environment
	ctx     ModuleContext
	planner *emit.Planner
	logger  *slog.Logger
}

func newBase(env Environment, name string) (base, error) {
	if env.Names == nil {
		env.Names = common.DefaultNames()
	}
	if env.Package == "" {
		env.Package = "routes"
	}
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	ctx, err := ParseModuleContext(env.Options, env.Names)
	if err != nil {
		env.Logger.Error("Missing module name", "processor", name, "option", env.Names.OptionModule)
		return base{}, err
	}
	return base{
		env:     env,
		ctx:     ctx,
		planner: emit.NewPlanner(env.Names, ctx.Module, env.Package, env.HashedNames),
		logger:  env.Logger.With("processor", name, "module", ctx.Module),
	}, nil
}
