package scanner

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/symbol"
)

// LoadMode is the packages.Load mode needed to read directives and resolve
// supertypes across packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedModule

// ErrNoPackages is returned when the patterns match nothing.
var ErrNoPackages = errors.New("no packages matched")

// LoadConfig selects the source tree to scan.
type LoadConfig struct {
	Dir      string
	Patterns []string
	Names    *common.Names
	// Tests includes _test.go files.
	Tests bool
	// Exclude lists directories whose packages are neither indexed nor
	// checked for errors, such as the output directory.
	Exclude []string
}

// typeSource is the syntax behind a type declared in a scanned package.
type typeSource struct {
	pkg  *packages.Package
	file *ast.File
	path string
	spec *ast.TypeSpec
	doc  []*ast.CommentGroup
}

// Program is a symbol.Resolver over a loaded source tree. Declarations of
// the scanned packages carry their directives; any other named type
// reachable from them resolves without annotations.
type Program struct {
	names  *common.Names
	logger *slog.Logger
	fset   *token.FileSet

	pkgs    map[string]*types.Package
	sources map[*types.TypeName]*typeSource
	roots   []*packages.Package

	annotated []string
	known     []knownInterface
	files     []string

	mu    sync.Mutex
	decls map[string]symbol.Declaration
}

// Load loads the packages matched by cfg and indexes their directives.
func Load(ctx context.Context, logger *slog.Logger, cfg LoadConfig) (*Program, error) {
	if cfg.Names == nil {
		cfg.Names = common.DefaultNames()
	}
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pcfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     cfg.Dir,
		Tests:   cfg.Tests,
	}
	logger.Debug("Loading packages", "dir", cfg.Dir, "patterns", patterns)
	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, ErrNoPackages
	}

	excluded := excludeFunc(cfg.Dir, cfg.Exclude)
	var roots []*packages.Package
	for _, pkg := range pkgs {
		if excluded(pkg) {
			logger.Debug("Skipping excluded package", "pkg", pkg.PkgPath)
			continue
		}
		roots = append(roots, pkg)
	}

	var loadErrs []string
	packages.Visit(roots, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	})
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("package errors:\n  %s", strings.Join(loadErrs, "\n  "))
	}

	p := &Program{
		names:   cfg.Names,
		logger:  logger,
		fset:    pkgs[0].Fset,
		pkgs:    map[string]*types.Package{},
		sources: map[*types.TypeName]*typeSource{},
		roots:   roots,
		decls:   map[string]symbol.Declaration{},
	}
	packages.Visit(roots, nil, func(pkg *packages.Package) {
		if pkg.Types != nil {
			p.pkgs[pkg.PkgPath] = pkg.Types
		}
	})
	p.known = knownInterfaces(roots)

	if err := p.index(); err != nil {
		return nil, err
	}
	logger.Info("Scanned packages",
		"packages", len(pkgs),
		"files", len(p.files),
		"annotated", len(p.annotated))
	return p, nil
}

func excludeFunc(base string, dirs []string) func(*packages.Package) bool {
	var abs []string
	for _, d := range dirs {
		if !filepath.IsAbs(d) {
			d = filepath.Join(base, d)
		}
		if a, err := filepath.Abs(d); err == nil {
			abs = append(abs, a)
		}
	}
	return func(pkg *packages.Package) bool {
		if len(abs) == 0 || len(pkg.GoFiles) == 0 {
			return false
		}
		dir := filepath.Dir(pkg.GoFiles[0])
		for _, a := range abs {
			if dir == a || strings.HasPrefix(dir, a+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}
}

// index walks the syntax of the scanned packages and records every type
// that carries a directive.
func (p *Program) index() error {
	seenFiles := map[string]bool{}
	seenDecls := map[string]bool{}
	for _, pkg := range p.roots {
		for i, file := range pkg.Syntax {
			path := pkg.CompiledGoFiles[i]
			if !seenFiles[path] {
				seenFiles[path] = true
				p.files = append(p.files, path)
			}
			for _, decl := range file.Decls {
				gen, ok := decl.(*ast.GenDecl)
				if !ok || gen.Tok != token.TYPE {
					continue
				}
				for _, spec := range gen.Specs {
					ts := spec.(*ast.TypeSpec)
					obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
					if !ok {
						continue
					}
					src := &typeSource{pkg: pkg, file: file, path: path, spec: ts, doc: []*ast.CommentGroup{ts.Doc}}
					if len(gen.Specs) == 1 {
						src.doc = append(src.doc, gen.Doc)
					}
					p.sources[obj] = src

					annotated, err := p.hasDirective(src.doc)
					if err != nil {
						return err
					}
					if !annotated {
						continue
					}
					qn := qualifiedName(obj)
					if !obj.Exported() {
						p.logger.Warn("Skipping unexported annotated type",
							"type", qn,
							"pos", p.fset.Position(ts.Pos()).String())
						continue
					}
					if !seenDecls[qn] {
						seenDecls[qn] = true
						p.annotated = append(p.annotated, qn)
					}
				}
			}
		}
	}
	sort.Strings(p.files)
	sort.Strings(p.annotated)
	return nil
}

func (p *Program) hasDirective(groups []*ast.CommentGroup) (bool, error) {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			_, ok, err := symbol.ParseDirective(p.names.DirectivePrefix, c.Text)
			if err != nil {
				return false, fmt.Errorf("%s: %w", p.fset.Position(c.Pos()), err)
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// Files returns the Go files of the scanned packages.
func (p *Program) Files() []string { return p.files }

// Lookup resolves a qualified type name. Unknown names, non-type objects and
// types of packages outside the load graph report false.
func (p *Program) Lookup(name string) (symbol.Declaration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookup(name)
}

func (p *Program) lookup(name string) (symbol.Declaration, bool) {
	if d, ok := p.decls[name]; ok {
		return d, d != nil
	}
	d := p.build(name)
	if d == nil {
		p.decls[name] = nil
		return nil, false
	}
	p.decls[name] = d
	return d, true
}

func (p *Program) SymbolsWithAnnotation(name string) []symbol.Declaration {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []symbol.Declaration
	for _, qn := range p.annotated {
		d, ok := p.lookup(qn)
		if !ok {
			continue
		}
		if _, ok := symbol.AnnotationOf(d, name); ok {
			out = append(out, d)
		}
	}
	return out
}

func (p *Program) build(name string) symbol.Declaration {
	if _, ok := marshalers[name]; ok {
		return &symbol.Class{Qualified: name, DeclKind: symbol.KindInterface}
	}
	pkgPath, typeName := symbol.SplitQualified(name)
	pkg, ok := p.pkgs[pkgPath]
	if !ok {
		return nil
	}
	obj, ok := pkg.Scope().Lookup(typeName).(*types.TypeName)
	if !ok {
		return nil
	}
	return p.declare(obj)
}

func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}
