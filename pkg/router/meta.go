package router

import "reflect"

// RouteMeta describes one registered route.
type RouteMeta struct {
	Type        RouteType
	Destination reflect.Type
	Path        string
	Group       string
	ParamsType  map[string]TypeKind
	Priority    int
	Extra       int
}

// Build creates a RouteMeta. It is the constructor used by generated group
// and provider loaders.
func Build(t RouteType, dest reflect.Type, path, group string, params map[string]TypeKind, priority, extra int) *RouteMeta {
	return &RouteMeta{
		Type:        t,
		Destination: dest,
		Path:        path,
		Group:       group,
		ParamsType:  params,
		Priority:    priority,
		Extra:       extra,
	}
}

// ServiceImpl is one interface+key -> implementation binding.
type ServiceImpl struct {
	Interface      reflect.Type
	Key            string
	Implementation reflect.Type
	Singleton      bool
}

// NewServiceImpl creates a ServiceImpl. It is the constructor used by
// generated service loaders.
func NewServiceImpl(iface reflect.Type, key string, impl reflect.Type, singleton bool) *ServiceImpl {
	return &ServiceImpl{
		Interface:      iface,
		Key:            key,
		Implementation: impl,
		Singleton:      singleton,
	}
}

// ServiceKey is the map key under which a binding is stored: the interface
// name, followed by ":" and the key when the binding is keyed.
func ServiceKey(iface, key string) string {
	if key == "" {
		return iface
	}
	return iface + ":" + key
}
