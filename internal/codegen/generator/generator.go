// Package generator writes the artifacts planned by the processors as Go
// source and JSON files.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/codegen/emit"
	"github.com/Alia5/routegen/internal/log"
	"github.com/Alia5/routegen/internal/store"
)

const typeTemplate = `{{header}}

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{.Alias}} "{{.Path}}"
{{- end}}
)
{{end}}
type {{.TypeName}} struct{}

var _ {{.SuperType}} = {{.TypeName}}{}

func ({{.TypeName}}) {{.Method.Name}}({{.Method.Param}} {{.Method.ParamType}}) {
{{- range .Body}}
	{{.}}
{{- end}}
}
{{- if .Register}}

func init() {
	{{.Register}}
}
{{- end}}
`

var typeTmpl = template.Must(template.New("type").Funcs(template.FuncMap{
	"header": func() string { return strings.TrimSuffix(common.FileHeader(), "\n") },
}).Parse(typeTemplate))

// Stats counts what a generator did.
type Stats struct {
	Written   int
	Unchanged int
}

// Generator is an emit.Emitter writing below an output directory.
type Generator struct {
	outputDir string
	logger    *slog.Logger

	module   string
	manifest *store.Store
	trace    log.ArtifactLogger
	dryRun   bool

	mu    sync.Mutex
	stats Stats
	files []string
}

type Option func(*Generator)

// WithManifest records every artifact in st and skips writes whose digest
// did not change.
func WithManifest(st *store.Store, module string) Option {
	return func(g *Generator) {
		g.manifest = st
		g.module = module
	}
}

// WithTrace logs every written artifact to l.
func WithTrace(l log.ArtifactLogger) Option {
	return func(g *Generator) { g.trace = l }
}

// WithDryRun renders artifacts without touching the file system.
func WithDryRun(dry bool) Option {
	return func(g *Generator) { g.dryRun = dry }
}

func New(outputDir string, logger *slog.Logger, opts ...Option) *Generator {
	if abs, err := filepath.Abs(outputDir); err == nil {
		outputDir = abs
	}
	g := &Generator{
		outputDir: outputDir,
		logger:    logger,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Render produces the formatted Go source of req.
func Render(req emit.TypeRequest) ([]byte, error) {
	var buf bytes.Buffer
	if err := typeTmpl.Execute(&buf, req); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", req.TypeName, err)
	}
	return src, nil
}

// FileName returns the file a type is written to.
func FileName(typeName string) string {
	return strings.ToLower(typeName) + ".go"
}

func (g *Generator) Emit(req emit.TypeRequest) error {
	src, err := Render(req)
	if err != nil {
		return err
	}
	return g.write(filepath.Join(g.outputDir, FileName(req.TypeName)), "type", src, req.Deps)
}

func (g *Generator) EmitRaw(req emit.RawRequest) error {
	path := filepath.Join(g.outputDir, req.Dir, req.Stem+"."+req.Ext)
	return g.write(path, "raw", req.Content, req.Deps)
}

func (g *Generator) write(path, kind string, data []byte, deps []string) error {
	digest := common.Digest(data)
	if g.dryRun {
		g.logger.Info("Would write artifact", "path", path, "bytes", len(data))
		g.record(path, false)
		return nil
	}

	if g.unchanged(path, digest, data) {
		g.logger.Debug("Artifact unchanged", "path", path)
		g.record(path, false)
		return g.remember(path, kind, digest, deps)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if g.trace != nil {
		g.trace.Log(path, data)
	}
	g.logger.Debug("Wrote artifact", "path", path, "bytes", len(data))
	g.record(path, true)
	return g.remember(path, kind, digest, deps)
}

// unchanged reports whether path already holds data. With a manifest the
// recorded digest is trusted as long as the file still exists.
func (g *Generator) unchanged(path, digest string, data []byte) bool {
	if g.manifest != nil {
		recorded, ok, err := g.manifest.Digest(path)
		if err != nil {
			g.logger.Warn("Failed to read manifest", "path", path, "error", err)
		} else if ok && recorded == digest {
			if _, err := os.Stat(path); err == nil {
				return true
			}
		}
		return false
	}
	existing, err := os.ReadFile(path)
	return err == nil && bytes.Equal(existing, data)
}

func (g *Generator) remember(path, kind, digest string, deps []string) error {
	if g.manifest == nil {
		return nil
	}
	return g.manifest.RecordArtifact(&store.Artifact{
		Path:   path,
		Kind:   kind,
		Module: g.module,
		Digest: digest,
		Deps:   deps,
	})
}

func (g *Generator) record(path string, written bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if written {
		g.stats.Written++
	} else {
		g.stats.Unchanged++
	}
	g.files = append(g.files, path)
}

// Stats returns the counters of every emit so far.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// Files returns every path emitted so far, in emit order.
func (g *Generator) Files() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.files...)
}

// Prune deletes the artifacts the manifest records for the module that were
// not emitted by g, and forgets them. It returns the removed paths. Without a
// manifest, or in dry-run mode, it does nothing.
func (g *Generator) Prune() ([]string, error) {
	if g.manifest == nil || g.dryRun {
		return nil, nil
	}
	recorded, err := g.manifest.ModuleArtifacts(g.module)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts of %s: %w", g.module, err)
	}
	emitted := make(map[string]bool)
	for _, f := range g.Files() {
		emitted[f] = true
	}

	var removed []string
	for _, path := range recorded {
		if emitted[path] {
			continue
		}
		rel, err := filepath.Rel(g.outputDir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			g.logger.Warn("Stale artifact outside the output directory", "path", path, "output", g.outputDir)
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}
		if err := g.manifest.Forget(path); err != nil {
			return removed, fmt.Errorf("forgetting %s: %w", path, err)
		}
		g.logger.Info("Removed stale artifact", "path", path)
		removed = append(removed, path)
	}
	return removed, nil
}
