package router

import (
	"sort"
	"strings"
	"sync"
)

// registry is a module-name keyed table of generated loaders.
type registry[T any] struct {
	mu sync.RWMutex
	m  map[string]T
}

func (r *registry[T]) put(module string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = make(map[string]T)
	}
	r.m[strings.ToLower(module)] = v
}

func (r *registry[T]) get(module string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.m[strings.ToLower(module)]
	return v, ok
}

// all returns the registered loaders ordered by module name.
func (r *registry[T]) all() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.m[k])
	}
	return out
}

var (
	roots      registry[RouteRoot]
	providers  registry[ProviderGroup]
	services   registry[ServiceGroup]
	pageInits  registry[PageAnnotationInit]
	uriInits   registry[UriAnnotationInit]
	regexInits registry[RegexAnnotationInit]
)

// RegisterRoot registers a module's root index. Called from generated init().
// The module name is case-insensitive.
func RegisterRoot(module string, r RouteRoot) { roots.put(module, r) }

// RegisterProviders registers a module's provider loader.
func RegisterProviders(module string, p ProviderGroup) { providers.put(module, p) }

// RegisterServices registers a module's service loader.
func RegisterServices(module string, s ServiceGroup) { services.put(module, s) }

func RegisterPageInit(module string, i PageAnnotationInit)   { pageInits.put(module, i) }
func RegisterUriInit(module string, i UriAnnotationInit)     { uriInits.put(module, i) }
func RegisterRegexInit(module string, i RegexAnnotationInit) { regexInits.put(module, i) }

// Root returns the root index registered for module.
func Root(module string) (RouteRoot, bool) { return roots.get(module) }

// Roots returns every registered root index ordered by module name.
func Roots() []RouteRoot { return roots.all() }

func Providers() []ProviderGroup        { return providers.all() }
func Services() []ServiceGroup          { return services.all() }
func PageInits() []PageAnnotationInit   { return pageInits.all() }
func UriInits() []UriAnnotationInit     { return uriInits.all() }
func RegexInits() []RegexAnnotationInit { return regexInits.all() }
