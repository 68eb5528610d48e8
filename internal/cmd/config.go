package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Alia5/routegen/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate,watch"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to routegen.<format> in the current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run writes the defaults of the command's flags, keyed the way the config
// loaders resolve them.
func (c *ConfigInit) Run() error {
	var root map[string]any
	switch c.Command {
	case "generate":
		root = scaffold(reflect.TypeFor[Generate]())
	case "watch":
		root = scaffold(reflect.TypeFor[Watch]())
	default:
		return errors.New("unknown command; expected 'generate' or 'watch'")
	}

	var data []byte
	var err error
	switch c.Format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = "routegen." + configpaths.Ext(c.Format)
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

// configKey returns the key kong's config resolvers look a field up by:
// the flag name in snake_case.
func configKey(f reflect.StructField) string {
	if name := f.Tag.Get("name"); name != "" {
		return strings.ReplaceAll(name, "-", "_")
	}
	r := []rune(f.Name)
	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) {
			prevLower := i > 0 && unicode.IsLower(r[i-1])
			nextLower := i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			c = unicode.ToLower(c)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// scaffold maps the flags of a command struct to their defaults. Positional
// arguments and map flags are left out; embedded commands are flattened.
func scaffold(t reflect.Type) map[string]any {
	out := map[string]any{}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			maps.Copy(out, scaffold(f.Type))
			continue
		}
		if v, ok := defaultValue(f); ok {
			out[configKey(f)] = v
		}
	}
	return out
}

func defaultValue(f reflect.StructField) (any, bool) {
	def := f.Tag.Get("default")
	switch {
	case f.Type == reflect.TypeFor[time.Duration]():
		if def == "" {
			def = "0s"
		}
		return def, true
	case f.Type.Kind() == reflect.String:
		return def, true
	case f.Type.Kind() == reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b, true
	}
	return nil, false
}
