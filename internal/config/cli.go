// Package config declares the routegen command line.
package config

import "github.com/Alia5/routegen/internal/cmd"

// Log configures the process logger.
type Log struct {
	Level        string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"ROUTEGEN_LOG_LEVEL"`
	File         string `help:"Additionally write logs to this file" env:"ROUTEGEN_LOG_FILE"`
	Format       string `help:"Log format" enum:"text,json" default:"text" env:"ROUTEGEN_LOG_FORMAT"`
	ArtifactFile string `help:"Trace every written artifact to this file" env:"ROUTEGEN_LOG_ARTIFACT_FILE"`
}

// CLI is the root command.
type CLI struct {
	Log    Log    `embed:"" prefix:"log."`
	Config string `help:"Path to a JSON, YAML or TOML config file" type:"path" env:"ROUTEGEN_CONFIG"`

	Generate cmd.Generate      `cmd:"" help:"Run one generation round"`
	Watch    cmd.Watch         `cmd:"" help:"Regenerate whenever Go sources change"`
	Deps     cmd.Deps          `cmd:"" help:"List generated artifacts that depend on source files"`
	ConfigC  cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
