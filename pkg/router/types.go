package router

import "strings"

// RouteType is the kind of target a route resolves to.
type RouteType int

const (
	TypeActivity RouteType = iota
	TypeService
	TypeProvider
	TypeFragment
	TypeUnknown RouteType = -1
)

var routeTypeNames = map[RouteType]string{
	TypeActivity: "Activity",
	TypeService:  "Service",
	TypeProvider: "Provider",
	TypeFragment: "Fragment",
	TypeUnknown:  "Unknown",
}

func (t RouteType) String() string {
	if n, ok := routeTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Lower returns the lowercase name used in route documentation.
func (t RouteType) Lower() string {
	return strings.ToLower(t.String())
}

// TypeKind is the coarse classification of an injected field.
type TypeKind int

const (
	KindBool TypeKind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindChar
	KindFloat
	KindDouble
	KindString
	KindSerializable
	KindParcelable
	KindObject
)

var typeKindNames = [...]string{
	KindBool:         "boolean",
	KindByte:         "byte",
	KindShort:        "short",
	KindInt:          "int",
	KindLong:         "long",
	KindChar:         "char",
	KindFloat:        "float",
	KindDouble:       "double",
	KindString:       "string",
	KindSerializable: "serializable",
	KindParcelable:   "parcelable",
	KindObject:       "object",
}

func (k TypeKind) String() string {
	if k < 0 || int(k) >= len(typeKindNames) {
		return "object"
	}
	return typeKindNames[k]
}

// GoName returns the identifier of the constant in this package,
// e.g. "KindString".
func (k TypeKind) GoName() string {
	if k < 0 || int(k) >= len(typeKindNames) {
		return "KindObject"
	}
	n := typeKindNames[k]
	if k == KindBool {
		n = "bool"
	}
	return "Kind" + strings.ToUpper(n[:1]) + n[1:]
}
