package testing

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/symbol"
)

// LogCapture collects log output of a test logger.
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// String returns everything logged so far.
func (c *LogCapture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Count returns the number of records logged at level.
func (c *LogCapture) Count(level slog.Level) int {
	return strings.Count(c.String(), "level="+level.String()+" ")
}

// NewTestLogger returns a debug-level text logger writing into a LogCapture.
func NewTestLogger(t *testing.T) (*slog.Logger, *LogCapture) {
	t.Helper()
	c := &LogCapture{}
	return slog.New(slog.NewTextHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug})), c
}

// RuntimeUniverse returns a universe pre-populated with the runtime role
// types named by n.
func RuntimeUniverse(n *common.Names) *symbol.Universe {
	class := func(name string) *symbol.Class {
		return &symbol.Class{Qualified: name, DeclKind: symbol.KindClass}
	}
	iface := func(name string) *symbol.Class {
		return &symbol.Class{Qualified: name, DeclKind: symbol.KindInterface}
	}
	return symbol.NewUniverse(
		class(n.Activity),
		class(n.Fragment),
		class(n.FragmentCompat),
		class(n.Service),
		iface(n.Provider),
		iface(n.UriHandler),
		iface(n.UriInterceptor),
	)
}

// Class builds a concrete class declaration.
func Class(name, file string, supers ...string) *symbol.Class {
	return &symbol.Class{Qualified: name, DeclKind: symbol.KindClass, SourceFile: file, Supers: symbol.Refs(supers...)}
}

// Interface builds an interface declaration.
func Interface(name, file string, supers ...string) *symbol.Class {
	return &symbol.Class{Qualified: name, DeclKind: symbol.KindInterface, SourceFile: file, Supers: symbol.Refs(supers...)}
}

// Annotate attaches a directive to c and returns c.
func Annotate(c *symbol.Class, name string, values map[string]string) *symbol.Class {
	if values == nil {
		values = map[string]string{}
	}
	c.Annots = append(c.Annots, symbol.Annotation{Name: name, Values: values})
	return c
}
