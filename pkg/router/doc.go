// Package router is the runtime contract that routegen's generated code
// compiles against.
//
// Application types opt into a routing role by embedding one of the base
// structs (Activity, Fragment, FragmentCompat, Service) or by implementing
// one of the role interfaces (Provider, UriHandler, UriInterceptor). The
// generated loaders register themselves with the package registry from
// init(), so a runtime router only has to blank-import the generated package
// and call the getters.
package router
