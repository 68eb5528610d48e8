package router

import (
	"context"
	"net/url"
)

// Role base types. Embed one of these to make a struct routable.
type (
	Activity       struct{}
	Fragment       struct{}
	FragmentCompat struct{}
	Service        struct{}
)

// Provider is implemented by types that expose a service through a route.
type Provider interface {
	Init(ctx context.Context) error
}

// UriRequest is the request handed to handlers and interceptors.
type UriRequest struct {
	URI    *url.URL
	Params map[string]string
}

// UriHandler handles a dispatched request.
type UriHandler interface {
	HandleURI(req *UriRequest) error
}

// UriInterceptor runs before a handler; it calls next to continue dispatch.
type UriInterceptor interface {
	Intercept(req *UriRequest, next func() error) error
}

// FragmentTransactionHandler is the handler registered for fragment targets.
type FragmentTransactionHandler struct {
	Fragment string
}

func NewFragmentTransactionHandler(fragment string) *FragmentTransactionHandler {
	return &FragmentTransactionHandler{Fragment: fragment}
}

// RouteGroup loads the routes of one group.
type RouteGroup interface {
	LoadInto(atlas map[string]*RouteMeta)
}

// ProviderGroup loads the provider routes of one module.
type ProviderGroup interface {
	LoadInto(providers map[string]*RouteMeta)
}

// RouteRoot maps group names to their group loaders.
type RouteRoot interface {
	LoadInto(routes map[string]RouteGroup)
}

// ServiceGroup loads the service bindings of one module.
type ServiceGroup interface {
	LoadInto(services map[string]*ServiceImpl)
}

// PageAnnotationHandler receives page registrations.
type PageAnnotationHandler interface {
	Register(path string, target any, interceptors ...UriInterceptor)
}

// UriAnnotationHandler receives scheme/host/path registrations.
type UriAnnotationHandler interface {
	Register(scheme, host, path string, target any, exported bool, interceptors ...UriInterceptor)
}

// RegexAnnotationHandler receives regex registrations.
type RegexAnnotationHandler interface {
	Register(regex string, target any, exported bool, priority int, interceptors ...UriInterceptor)
}

type PageAnnotationInit interface {
	Init(handler PageAnnotationHandler)
}

type UriAnnotationInit interface {
	Init(handler UriAnnotationHandler)
}

type RegexAnnotationInit interface {
	Init(handler RegexAnnotationHandler)
}
