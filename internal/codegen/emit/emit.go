// Package emit turns the accumulated routes and bindings of a round into
// emission requests: generated Go types and raw documentation files. It
// only describes artifacts; writing them is the job of an Emitter.
package emit

import (
	"sort"
	"sync"

	"github.com/Alia5/routegen/internal/symbol"
)

// Method is the single method a generated type implements.
type Method struct {
	Name      string
	Param     string
	ParamType string
}

// Import is one aliased import of a generated file.
type Import struct {
	Alias string
	Path  string
}

// TypeRequest describes one generated type.
type TypeRequest struct {
	Package   string
	TypeName  string
	SuperType string
	Method    Method
	Body      []string
	Imports   []Import
	// Register is the statement run from the generated init(), if any.
	Register string
	// Deps are the source files that contributed to the type.
	Deps []string
}

// RawRequest describes one raw file, such as the route documentation.
type RawRequest struct {
	Dir     string
	Stem    string
	Ext     string
	Content []byte
	Deps    []string
}

// Plan is everything one processor emits in a round.
type Plan struct {
	Types []TypeRequest
	Raw   []RawRequest
}

// Emitter writes emission requests.
type Emitter interface {
	Emit(req TypeRequest) error
	EmitRaw(req RawRequest) error
}

// Flush hands every request of p to e in order and stops at the first
// failure. Requests already emitted are not rolled back.
func Flush(e Emitter, p Plan) error {
	for _, t := range p.Types {
		if err := e.Emit(t); err != nil {
			return err
		}
	}
	for _, r := range p.Raw {
		if err := e.EmitRaw(r); err != nil {
			return err
		}
	}
	return nil
}

// Recorder is an Emitter that keeps every request in memory.
type Recorder struct {
	mu    sync.Mutex
	Types []TypeRequest
	Raw   []RawRequest
}

func (r *Recorder) Emit(req TypeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Types = append(r.Types, req)
	return nil
}

func (r *Recorder) EmitRaw(req RawRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Raw = append(r.Raw, req)
	return nil
}

// Type returns the recorded type named name.
func (r *Recorder) Type(name string) (TypeRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.Types {
		if t.TypeName == name {
			return t, true
		}
	}
	return TypeRequest{}, false
}

// files returns the sorted, de-duplicated source files of decls.
func files(decls ...symbol.Declaration) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range decls {
		f := d.File()
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
