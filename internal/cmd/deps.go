package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Alia5/routegen/internal/store"
)

// ErrNoManifest is returned when the output directory has no manifest yet.
var ErrNoManifest = errors.New("no manifest found; run generate first")

type Deps struct {
	Output string   `help:"Output directory holding the manifest" default:"./routes" type:"path" env:"ROUTEGEN_OUTPUT"`
	Files  []string `arg:"" optional:"" help:"Source files; lists every artifact when empty" type:"path"`
}

// Run is called by Kong when the deps command is executed.
func (d *Deps) Run(logger *slog.Logger) error {
	return d.Print(os.Stdout)
}

// Print writes the artifacts depending on d.Files, one per line. Without
// files it writes the time of the last round and every artifact followed by
// its indented sources.
func (d *Deps) Print(w io.Writer) error {
	if _, err := os.Stat(filepath.Join(d.Output, store.Dir, store.File)); err != nil {
		return fmt.Errorf("%s: %w", d.Output, ErrNoManifest)
	}
	st, err := store.Open(d.Output)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(d.Files) > 0 {
		deps, err := st.DependentsOf(d.Files...)
		if err != nil {
			return err
		}
		for _, p := range deps {
			fmt.Fprintln(w, p)
		}
		return nil
	}

	last, err := st.GetMetadata(lastRoundKey)
	if err != nil {
		return err
	}
	if last != "" {
		fmt.Fprintf(w, "# last round %s\n", last)
	}
	paths, err := st.Artifacts()
	if err != nil {
		return err
	}
	for _, p := range paths {
		a, err := st.Artifact(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s (%s, %s)\n", a.Path, a.Kind, a.Digest[:min(12, len(a.Digest))])
		for _, dep := range a.Deps {
			fmt.Fprintf(w, "  %s\n", dep)
		}
	}
	return nil
}
