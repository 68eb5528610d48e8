package common

// RuntimePackage is the import path of the runtime contract the generated
// code compiles against.
const RuntimePackage = "github.com/Alia5/routegen/pkg/router"

// Names holds every fixed name the processors and the emission planner
// share. It is built once and passed by pointer; nothing mutates it.
type Names struct {
	// Runtime package and the role types declared in it.
	Runtime        string
	Activity       string
	Fragment       string
	FragmentCompat string
	Service        string
	Provider       string
	UriHandler     string
	UriInterceptor string

	// Directive prefix and annotation names.
	DirectivePrefix string
	RouteAnnotation string
	PageAnnotation  string
	UriAnnotation   string
	RegexAnnotation string
	ServiceAnno     string
	AutowiredAnno   string

	// Generated type naming.
	Separator       string
	GroupPrefix     string
	ProvidersPrefix string
	RootPrefix      string
	ServicePrefix   string
	PageInitPrefix  string
	UriInitPrefix   string
	RegexInitPrefix string
	DocPrefix       string
	DocDir          string

	// Processor options.
	OptionModule      string
	OptionGenerateDoc string
	OptionEnable      string

	DefaultImplKey string
}

// DefaultNames returns the names used by routegen's own runtime package.
func DefaultNames() *Names {
	return NamesFor(RuntimePackage)
}

// NamesFor returns the default names with role types resolved against an
// alternative runtime package.
func NamesFor(runtime string) *Names {
	q := func(name string) string { return runtime + "." + name }
	return &Names{
		Runtime:        runtime,
		Activity:       q("Activity"),
		Fragment:       q("Fragment"),
		FragmentCompat: q("FragmentCompat"),
		Service:        q("Service"),
		Provider:       q("Provider"),
		UriHandler:     q("UriHandler"),
		UriInterceptor: q("UriInterceptor"),

		DirectivePrefix: "router",
		RouteAnnotation: "route",
		PageAnnotation:  "page",
		UriAnnotation:   "uri",
		RegexAnnotation: "regex",
		ServiceAnno:     "service",
		AutowiredAnno:   "autowired",

		Separator:       "__",
		GroupPrefix:     "RouterGroup",
		ProvidersPrefix: "RouterProviders",
		RootPrefix:      "RouterRoot",
		ServicePrefix:   "ServiceInit",
		PageInitPrefix:  "PageAnnotationInit",
		UriInitPrefix:   "UriAnnotationInit",
		RegexInitPrefix: "RegexAnnotationInit",
		DocPrefix:       "router-map-of-",
		DocDir:          "docs",

		OptionModule:      "ROUTER_MODULE_NAME",
		OptionGenerateDoc: "ROUTER_GENERATE_DOC",
		OptionEnable:      "enable",

		DefaultImplKey: "_service_default_impl",
	}
}
