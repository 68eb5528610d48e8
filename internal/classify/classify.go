// Package classify decides which routing role a declaration plays by walking
// its transitive supertypes.
package classify

import (
	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/symbol"
	"github.com/Alia5/routegen/pkg/router"
)

// Role is the target-consumption category of a declaration.
type Role int

const (
	RoleNone Role = iota
	RoleActivity
	RoleHandler
	RoleFragment
	RoleFragmentCompat
)

func (r Role) String() string {
	switch r {
	case RoleActivity:
		return "activity"
	case RoleHandler:
		return "handler"
	case RoleFragment:
		return "fragment"
	case RoleFragmentCompat:
		return "fragment-compat"
	default:
		return "none"
	}
}

// Classifier answers supertype questions for one round.
type Classifier struct {
	resolver symbol.Resolver
	names    *common.Names
}

func New(r symbol.Resolver, n *common.Names) *Classifier {
	return &Classifier{resolver: r, names: n}
}

// FirstMatch returns the index in candidates of the first name met while
// walking d's supertypes, or -1. Only class and interface declarations are
// matched and expanded.
func (c *Classifier) FirstMatch(d symbol.Declaration, candidates []string) int {
	queue := append([]symbol.TypeRef(nil), d.SuperTypes()...)
	seen := map[string]bool{}
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true

		decl, ok := ref.Resolve(c.resolver)
		if !ok || decl.Kind() == symbol.KindOther {
			continue
		}
		name := decl.QualifiedName()
		for i, cand := range candidates {
			if cand == name {
				return i
			}
		}
		queue = append(queue, decl.SuperTypes()...)
	}
	return -1
}

// IsSubclassOf reports whether name is in d's supertype closure.
func (c *Classifier) IsSubclassOf(d symbol.Declaration, name string) bool {
	return c.FirstMatch(d, []string{name}) >= 0
}

// Role classifies d as Activity or Handler, and when fragments is set, as
// Fragment or FragmentCompat as well.
func (c *Classifier) Role(d symbol.Declaration, fragments bool) Role {
	candidates := []string{c.names.Activity, c.names.UriHandler}
	roles := []Role{RoleActivity, RoleHandler}
	if fragments {
		candidates = append(candidates, c.names.Fragment, c.names.FragmentCompat)
		roles = append(roles, RoleFragment, RoleFragmentCompat)
	}
	if i := c.FirstMatch(d, candidates); i >= 0 {
		return roles[i]
	}
	return RoleNone
}

// RouteType classifies the target of a route annotation.
func (c *Classifier) RouteType(d symbol.Declaration) router.RouteType {
	candidates := []string{c.names.Activity, c.names.Service, c.names.Provider, c.names.Fragment, c.names.FragmentCompat}
	types := []router.RouteType{router.TypeActivity, router.TypeService, router.TypeProvider, router.TypeFragment, router.TypeFragment}
	if i := c.FirstMatch(d, candidates); i >= 0 {
		return types[i]
	}
	return router.TypeUnknown
}

// IsInterceptor reports whether d can be bound as an interceptor: a
// concrete class implementing the interceptor contract.
func (c *Classifier) IsInterceptor(d symbol.Declaration) bool {
	return !d.IsAbstract() && d.Kind() == symbol.KindClass && c.IsSubclassOf(d, c.names.UriInterceptor)
}

// IsProvider reports whether d is the provider marker or extends it.
func (c *Classifier) IsProvider(d symbol.Declaration) bool {
	return d.QualifiedName() == c.names.Provider || c.IsSubclassOf(d, c.names.Provider)
}
