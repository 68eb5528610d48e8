package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/codegen/generator"
	"github.com/Alia5/routegen/internal/codegen/scanner"
	"github.com/Alia5/routegen/internal/log"
	"github.com/Alia5/routegen/internal/processor"
	"github.com/Alia5/routegen/internal/store"
)

const lastRoundKey = "last_round"

type Generate struct {
	Patterns   []string          `arg:"" optional:"" help:"Package patterns to scan (default ./...)"`
	Dir        string            `help:"Module directory to scan" default:"." type:"path" env:"ROUTEGEN_DIR"`
	Output     string            `help:"Output directory for generated files" default:"./routes" type:"path" env:"ROUTEGEN_OUTPUT"`
	Package    string            `help:"Package name of generated files" default:"routes" env:"ROUTEGEN_PACKAGE"`
	Module     string            `help:"Module identifier, overrides --arg ROUTER_MODULE_NAME" env:"ROUTEGEN_MODULE"`
	Doc        bool              `help:"Write the route documentation JSON" env:"ROUTEGEN_DOC"`
	Naming     string            `help:"Generated type naming" enum:"plain,hash" default:"plain" env:"ROUTEGEN_NAMING"`
	Runtime    string            `help:"Import path of the router runtime package" default:"github.com/Alia5/routegen/pkg/router" env:"ROUTEGEN_RUNTIME"`
	Arg        map[string]string `help:"Raw processor option KEY=VALUE" env:"ROUTEGEN_ARGS"`
	Tests      bool              `help:"Also scan _test.go files" env:"ROUTEGEN_TESTS"`
	DryRun     bool              `help:"Render artifacts without writing them" env:"ROUTEGEN_DRY_RUN"`
	NoManifest bool              `help:"Do not record artifacts in the manifest" env:"ROUTEGEN_NO_MANIFEST"`
}

// Result summarizes one generation round.
type Result struct {
	Module    string
	Sources   []string
	Artifacts []string
	// Removed lists stale artifacts of the module deleted by this round.
	Removed []string
	Stats   generator.Stats
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, trace log.ArtifactLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, err := g.Execute(ctx, logger, trace)
	return err
}

// Options returns the processor options: the raw --arg pairs overlaid with
// --module and --doc.
func (g *Generate) Options(n *common.Names) map[string]string {
	opts := make(map[string]string, len(g.Arg)+2)
	for k, v := range g.Arg {
		opts[k] = v
	}
	if g.Module != "" {
		opts[n.OptionModule] = g.Module
	}
	if g.Doc {
		opts[n.OptionGenerateDoc] = n.OptionEnable
	}
	return opts
}

// Execute runs one round: scan, process and write.
func (g *Generate) Execute(ctx context.Context, logger *slog.Logger, trace log.ArtifactLogger) (*Result, error) {
	start := time.Now()
	names := common.NamesFor(g.Runtime)
	opts := g.Options(names)

	mc, err := processor.ParseModuleContext(opts, names)
	if err != nil {
		logger.Error("Missing module name", "option", names.OptionModule, "hint", "pass --module or --arg "+names.OptionModule+"=<name>")
		return nil, err
	}
	logger.Info("Starting route generation", "module", mc.Module, "dir", g.Dir, "output", g.Output)

	genOpts := []generator.Option{generator.WithDryRun(g.DryRun)}
	if trace != nil {
		genOpts = append(genOpts, generator.WithTrace(trace))
	}
	var st *store.Store
	if !g.NoManifest && !g.DryRun {
		st, err = store.Open(g.Output)
		if err != nil {
			return nil, fmt.Errorf("open manifest: %w", err)
		}
		defer st.Close()
		genOpts = append(genOpts, generator.WithManifest(st, mc.Module))
	}
	gen := generator.New(g.Output, logger, genOpts...)

	procs, err := processor.New(processor.Environment{
		Logger:      logger,
		Emitter:     gen,
		Names:       names,
		Options:     opts,
		Package:     g.Package,
		HashedNames: g.Naming == "hash",
	})
	if err != nil {
		return nil, err
	}

	output, err := filepath.Abs(g.Output)
	if err != nil {
		return nil, err
	}
	prog, err := scanner.Load(ctx, logger, scanner.LoadConfig{
		Dir:      g.Dir,
		Patterns: g.Patterns,
		Names:    names,
		Tests:    g.Tests,
		Exclude:  []string{output},
	})
	if err != nil {
		return nil, err
	}

	if err := processor.Run(logger, prog, procs...); err != nil {
		return nil, err
	}

	removed, err := gen.Prune()
	if err != nil {
		return nil, fmt.Errorf("prune stale artifacts: %w", err)
	}

	if st != nil {
		if err := st.SetMetadata(lastRoundKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
			logger.Warn("Failed to update manifest metadata", "error", err)
		}
	}
	stats := gen.Stats()
	logger.Info("Route generation complete",
		"module", mc.Module,
		"written", stats.Written,
		"unchanged", stats.Unchanged,
		"removed", len(removed),
		"took", time.Since(start).Round(time.Millisecond))
	return &Result{
		Module:    mc.Module,
		Sources:   prog.Files(),
		Artifacts: gen.Files(),
		Removed:   removed,
		Stats:     stats,
	}, nil
}
