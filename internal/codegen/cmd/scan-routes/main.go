package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/codegen/emit"
	"github.com/Alia5/routegen/internal/codegen/scanner"
	"github.com/Alia5/routegen/internal/processor"
)

// scan-routes prints the route map of the module in the working directory
// (or the directory given as first argument) without writing anything.
func main() {
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get working directory: %v\n", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		projectRoot = os.Args[1]
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	names := common.DefaultNames()
	if rt := os.Getenv("ROUTEGEN_RUNTIME"); rt != "" {
		names = common.NamesFor(rt)
	}

	prog, err := scanner.Load(context.Background(), logger, scanner.LoadConfig{Dir: projectRoot, Names: names})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to scan routes: %v\n", err)
		os.Exit(1)
	}

	rec := &emit.Recorder{}
	routes, err := processor.NewRouteProcessor(processor.Environment{
		Logger:  logger,
		Emitter: rec,
		Names:   names,
		Options: map[string]string{
			names.OptionModule:      "scan",
			names.OptionGenerateDoc: names.OptionEnable,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up route processor: %v\n", err)
		os.Exit(1)
	}
	if err := routes.Process(prog); err != nil {
		fmt.Fprintf(os.Stderr, "failed to process routes: %v\n", err)
		os.Exit(1)
	}

	if len(rec.Raw) == 0 {
		fmt.Println("{}")
		return
	}
	fmt.Print(string(rec.Raw[0].Content))
}
