package main

import (
	"os"
	"strings"

	"github.com/Alia5/routegen/internal/config"
	"github.com/Alia5/routegen/internal/configpaths"
	"github.com/Alia5/routegen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("routegen"),
		kong.Description("Route, service and handler registry generator for annotated Go types"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(log.Options{
		Level:  cli.Log.Level,
		File:   cli.Log.File,
		Format: cli.Log.Format,
	})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var trace log.ArtifactLogger
	if cli.Log.ArtifactFile != "" {
		f, err := os.OpenFile(cli.Log.ArtifactFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open artifact log file", "file", cli.Log.ArtifactFile, "error", err)
			trace = log.NewArtifact(nil)
		} else {
			trace = log.NewArtifact(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		trace = log.NewArtifact(os.Stdout)
	} else {
		trace = log.NewArtifact(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(trace, (*log.ArtifactLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv(configpaths.EnvConfig); v != "" {
		return v
	}
	return ""
}
