// Package route accumulates the routes and service bindings of one round:
// per-group ordered route sets and per-interface binding registries.
package route

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Alia5/routegen/internal/inject"
	"github.com/Alia5/routegen/internal/symbol"
	"github.com/Alia5/routegen/pkg/router"
)

var (
	ErrEmptyPath    = errors.New("path is empty")
	ErrRelativePath = errors.New("path must start with '/'")
	ErrNoGroup      = errors.New("failed to extract default group")
	ErrEmptyGroup   = errors.New("group is empty")
)

// Meta is one discovered route.
type Meta struct {
	Path     string
	Group    string
	Name     string
	Type     router.RouteType
	Target   symbol.Declaration
	Priority int
	Extra    int
	// Params is only populated for activities and fragments.
	Params []inject.Param
}

// Verify checks the path and derives the group from the first path segment
// when none was set.
func (m *Meta) Verify() error {
	if m.Path == "" {
		return ErrEmptyPath
	}
	if !strings.HasPrefix(m.Path, "/") {
		return fmt.Errorf("%w: %q", ErrRelativePath, m.Path)
	}
	if m.Group == "" {
		end := strings.Index(m.Path[1:], "/")
		if end < 0 {
			return fmt.Errorf("%w: no second '/' in %q", ErrNoGroup, m.Path)
		}
		m.Group = m.Path[1 : end+1]
	}
	if m.Group == "" {
		return fmt.Errorf("%w: %q", ErrEmptyGroup, m.Path)
	}
	return nil
}
