package emit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/routegen/internal/classify"
	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/inject"
	"github.com/Alia5/routegen/internal/route"
	"github.com/Alia5/routegen/internal/symbol"
	"github.com/Alia5/routegen/pkg/router"
)

func cls(name, file string) *symbol.Class {
	return &symbol.Class{Qualified: name, DeclKind: symbol.KindClass, SourceFile: file}
}

func sampleState(t *testing.T) RouteState {
	t.Helper()
	groups := route.NewGroupSet()
	add := func(m *route.Meta) {
		require.NoError(t, m.Verify())
		groups.Add(m)
	}
	add(&route.Meta{
		Path:   "/User/Profile",
		Name:   "Profile",
		Type:   router.TypeActivity,
		Target: cls("example.com/app/user.Profile", "user/profile.go"),
		Params: []inject.Param{
			{Key: "uid", Kind: router.KindLong, Description: "user id", Required: true},
			{Key: "nick", Kind: router.KindString},
		},
		Extra: 4,
	})
	add(&route.Meta{
		Path:   "/User/Avatar",
		Type:   router.TypeFragment,
		Target: cls("example.com/app/user.Avatar", "user/avatar.go"),
	})
	hello := &route.Meta{
		Path:     "/svc/hello",
		Name:     "Hello service",
		Type:     router.TypeProvider,
		Target:   cls("example.com/app/svc.Hello", "svc/hello.go"),
		Priority: 2,
	}
	add(hello)
	return RouteState{
		Groups:     groups,
		Providers:  map[string]*route.Meta{"example.com/app/svc.Greeter": hello},
		Prototypes: map[string][]string{"example.com/app/svc.Hello": {"example.com/app/svc.Greeter"}},
		Docs:       true,
	}
}

func TestRoutesPlan(t *testing.T) {
	p := NewPlanner(common.DefaultNames(), "app", "routes", false)
	plan, err := p.Routes(sampleState(t))
	require.NoError(t, err)

	names := []string{}
	for _, ty := range plan.Types {
		names = append(names, ty.TypeName)
	}
	assert.Equal(t, []string{
		"RouterGroup__app__User",
		"RouterGroup__app__svc",
		"RouterProviders__app",
		"RouterRoot__app",
	}, names)

	user := plan.Types[0]
	assert.Equal(t, "router.RouteGroup", user.SuperType)
	assert.Equal(t, Method{Name: "LoadInto", Param: "atlas", ParamType: "map[string]*router.RouteMeta"}, user.Method)
	assert.Equal(t, []string{
		"if atlas == nil {",
		"return",
		"}",
		`atlas["/User/Avatar"] = router.Build(router.TypeFragment, reflect.TypeFor[user.Avatar](), "/user/avatar", "user", nil, 0, 0)`,
		`atlas["/User/Profile"] = router.Build(router.TypeActivity, reflect.TypeFor[user.Profile](), "/user/profile", "user", map[string]router.TypeKind{"uid": router.KindLong, "nick": router.KindString}, 0, 4)`,
	}, user.Body)
	assert.Equal(t, []Import{
		{Alias: "user", Path: "example.com/app/user"},
		{Alias: "router", Path: common.RuntimePackage},
		{Alias: "reflect", Path: "reflect"},
	}, user.Imports)
	assert.Equal(t, []string{"user/avatar.go", "user/profile.go"}, user.Deps)
	assert.Empty(t, user.Register)

	providers := plan.Types[2]
	assert.Equal(t, `providers["example.com/app/svc.Greeter"] = router.Build(router.TypeProvider, reflect.TypeFor[svc.Hello](), "/svc/hello", "svc", nil, 2, 0)`, providers.Body[3])
	assert.Equal(t, `router.RegisterProviders("app", RouterProviders__app{})`, providers.Register)

	root := plan.Types[3]
	assert.Equal(t, []string{
		"if routes == nil {",
		"return",
		"}",
		`routes["User"] = RouterGroup__app__User{}`,
		`routes["svc"] = RouterGroup__app__svc{}`,
	}, root.Body)
	assert.Equal(t, `router.RegisterRoot("app", RouterRoot__app{})`, root.Register)
	assert.Equal(t, []string{"svc/hello.go", "user/avatar.go", "user/profile.go"}, root.Deps)

	require.Len(t, plan.Raw, 1)
	doc := plan.Raw[0]
	assert.Equal(t, "docs", doc.Dir)
	assert.Equal(t, "router-map-of-app", doc.Stem)
	assert.Equal(t, "json", doc.Ext)

	var decoded map[string][]RouteDoc
	require.NoError(t, json.Unmarshal(doc.Content, &decoded))
	require.Len(t, decoded["User"], 2)
	profile := decoded["User"][1]
	assert.Equal(t, "/User/Profile", profile.Path)
	assert.Equal(t, "Profile", profile.Description)
	assert.Equal(t, "activity", profile.Type)
	assert.Equal(t, 4, profile.Mark)
	assert.Equal(t, []ParamDoc{
		{Key: "uid", Type: "long", Description: "user id", Required: true},
		{Key: "nick", Type: "string"},
	}, profile.Params)
	assert.Equal(t, []string{"example.com/app/svc.Greeter"}, decoded["svc"][0].Prototypes)
}

func TestRoutesPlanIsIdempotent(t *testing.T) {
	p := NewPlanner(common.DefaultNames(), "app", "routes", false)
	a, err := p.Routes(sampleState(t))
	require.NoError(t, err)
	b, err := p.Routes(sampleState(t))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRoutesPlanWithoutDocs(t *testing.T) {
	s := sampleState(t)
	s.Docs = false
	plan, err := NewPlanner(common.DefaultNames(), "app", "routes", false).Routes(s)
	require.NoError(t, err)
	assert.Empty(t, plan.Raw)
}

func TestGroupNameCollision(t *testing.T) {
	groups := route.NewGroupSet()
	groups.Add(&route.Meta{Path: "/a-b/x", Group: "a-b", Target: cls("app.X", "")})
	groups.Add(&route.Meta{Path: "/a_b/y", Group: "a_b", Target: cls("app.Y", "")})
	_, err := NewPlanner(common.DefaultNames(), "app", "routes", false).Routes(RouteState{Groups: groups})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RouterGroup__app__a_b")
}

func TestGroupNameCaseCollision(t *testing.T) {
	groups := route.NewGroupSet()
	groups.Add(&route.Meta{Path: "/User/x", Group: "User", Target: cls("app.X", "")})
	groups.Add(&route.Meta{Path: "/user/y", Group: "user", Target: cls("app.Y", "")})
	_, err := NewPlanner(common.DefaultNames(), "app", "routes", false).Routes(RouteState{Groups: groups})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `groups "User" and "user"`)
}

func TestRoutesPlanSkipsEmptyLoaders(t *testing.T) {
	p := NewPlanner(common.DefaultNames(), "app", "routes", false)

	plan, err := p.Routes(RouteState{Groups: route.NewGroupSet()})
	require.NoError(t, err)
	assert.Empty(t, plan.Types)

	groups := route.NewGroupSet()
	groups.Add(&route.Meta{Path: "/a/x", Group: "a", Target: cls("app.X", "")})
	plan, err = p.Routes(RouteState{Groups: groups})
	require.NoError(t, err)
	names := []string{}
	for _, ty := range plan.Types {
		names = append(names, ty.TypeName)
	}
	assert.Equal(t, []string{"RouterGroup__app__a", "RouterRoot__app"}, names)
}

func TestHashedNaming(t *testing.T) {
	p := NewPlanner(common.DefaultNames(), "app", "routes", true)
	hash := common.HashName("app")
	assert.Equal(t, "RouterGroup__"+hash+"__user", p.GroupTypeName("user"))

	req := p.Services(route.NewServiceRegistry())
	assert.Equal(t, "ServiceInit__"+hash, req.TypeName)
	assert.Equal(t, `router.RegisterServices("app", ServiceInit__`+hash+`{})`, req.Register)
}

func TestServicesPlan(t *testing.T) {
	reg := route.NewServiceRegistry()
	iface := &symbol.Class{Qualified: "example.com/app/svc.Greeter", DeclKind: symbol.KindInterface, SourceFile: "svc/greeter.go"}
	require.NoError(t, reg.Register(&route.Binding{Interface: iface, Key: "a", Implementation: cls("example.com/app/svc.A", "svc/a.go"), Singleton: true}))
	require.NoError(t, reg.Register(&route.Binding{Interface: iface, Implementation: cls("example.com/other/svc.B", "other/b.go")}))

	req := NewPlanner(common.DefaultNames(), "app", "routes", false).Services(reg)
	assert.Equal(t, "router.ServiceGroup", req.SuperType)
	assert.Equal(t, []string{
		"if services == nil {",
		"return",
		"}",
		`services["example.com/app/svc.Greeter"] = router.NewServiceImpl(reflect.TypeFor[svc.Greeter](), "", reflect.TypeFor[svc2.B](), false)`,
		`services["example.com/app/svc.Greeter:a"] = router.NewServiceImpl(reflect.TypeFor[svc.Greeter](), "a", reflect.TypeFor[svc.A](), true)`,
	}, req.Body)
	assert.Equal(t, []string{"other/b.go", "svc/a.go"}, req.Deps)
}

func TestHandlerInit(t *testing.T) {
	p := NewPlanner(common.DefaultNames(), "app", "routes", false)
	auth := cls("example.com/app/handler.Auth", "handler/auth.go")
	entries := []HandlerEntry{
		{Target: cls("example.com/app/handler.Echo", "handler/echo.go"), Role: classify.RoleHandler, Path: "/echo", Interceptors: []symbol.Declaration{auth}},
		{Target: cls("example.com/app/user.Profile", "user/profile.go"), Role: classify.RoleActivity, Path: "/profile"},
		{Target: cls("example.com/app/user.List", "user/list.go"), Role: classify.RoleFragment, Path: "/list"},
	}

	page := p.HandlerInit(HandlerPage, entries)
	assert.Equal(t, "PageAnnotationInit__app", page.TypeName)
	assert.Equal(t, "router.PageAnnotationInit", page.SuperType)
	assert.Equal(t, []string{
		"if handler == nil {",
		"return",
		"}",
		`handler.Register("/echo", &handler2.Echo{}, &handler2.Auth{})`,
		`handler.Register("/list", router.NewFragmentTransactionHandler("example.com/app/user.List"))`,
		`handler.Register("/profile", "example.com/app/user.Profile")`,
	}, page.Body)

	uri := p.HandlerInit(HandlerUri, []HandlerEntry{
		{Target: cls("example.com/app/user.Profile", ""), Role: classify.RoleActivity, Scheme: "app", Host: "main", Path: "/p", Exported: true},
	})
	assert.Equal(t, `handler.Register("app", "main", "/p", "example.com/app/user.Profile", true)`, uri.Body[3])
	assert.Equal(t, `router.RegisterUriInit("app", UriAnnotationInit__app{})`, uri.Register)

	regex := p.HandlerInit(HandlerRegex, []HandlerEntry{
		{Target: cls("example.com/app/user.Profile", ""), Role: classify.RoleActivity, Regex: "^x$", Priority: 3},
	})
	assert.Equal(t, `handler.Register("^x$", "example.com/app/user.Profile", false, 3)`, regex.Body[3])
	assert.Equal(t, "RegexAnnotationInit__app", regex.TypeName)
}

func TestAliasBase(t *testing.T) {
	tests := map[string]string{
		"example.com/app/user":  "user",
		"example.com/mod/v2":    "mod",
		"example.com/go-kit":    "gokit",
		"example.com/9lives":    "pkg9lives",
		"example.com/x/go":      "gopkg",
		"example.com/Some.Name": "somename",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, aliasBase(in))
		})
	}
}

func TestFlushStopsAtFirstError(t *testing.T) {
	rec := &Recorder{}
	plan := Plan{
		Types: []TypeRequest{{TypeName: "A"}, {TypeName: "B"}},
		Raw:   []RawRequest{{Stem: "doc"}},
	}
	require.NoError(t, Flush(rec, plan))
	assert.Len(t, rec.Types, 2)
	assert.Len(t, rec.Raw, 1)
	_, ok := rec.Type("B")
	assert.True(t, ok)
}
