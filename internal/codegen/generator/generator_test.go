package generator

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/codegen/emit"
	"github.com/Alia5/routegen/internal/log"
	"github.com/Alia5/routegen/internal/route"
	"github.com/Alia5/routegen/internal/store"
	th "github.com/Alia5/routegen/internal/testing"
	"github.com/Alia5/routegen/pkg/router"
)

func samplePlan(t *testing.T) emit.Plan {
	t.Helper()
	n := common.DefaultNames()
	groups := route.NewGroupSet()
	target := th.Class("example.com/app/user.Profile", "/src/user/profile.go", n.Activity)
	m := &route.Meta{Path: "/user/profile", Type: router.TypeActivity, Target: target, Priority: -1}
	require.NoError(t, m.Verify())
	groups.Add(m)

	plan, err := emit.NewPlanner(n, "app", "routes", false).Routes(emit.RouteState{
		Groups:     groups,
		Providers:  map[string]*route.Meta{},
		Prototypes: map[string][]string{},
		Docs:       true,
	})
	require.NoError(t, err)
	return plan
}

func TestRenderProducesValidGo(t *testing.T) {
	plan := samplePlan(t)
	for _, req := range plan.Types {
		t.Run(req.TypeName, func(t *testing.T) {
			src, err := Render(req)
			require.NoError(t, err)
			text := string(src)

			assert.True(t, strings.HasPrefix(text, "// Code generated by routegen "))
			assert.Contains(t, text, "DO NOT EDIT.")
			assert.Contains(t, text, "package routes\n")
			assert.Contains(t, text, "type "+req.TypeName+" struct{}")
			assert.Contains(t, text, "var _ "+req.SuperType+" = "+req.TypeName+"{}")

			_, err = parser.ParseFile(token.NewFileSet(), FileName(req.TypeName), src, parser.ParseComments)
			assert.NoError(t, err)
		})
	}

	group, err := Render(plan.Types[0])
	require.NoError(t, err)
	assert.Contains(t, string(group), "\tuser \"example.com/app/user\"\n")
	assert.Contains(t, string(group), "\t\treturn\n")
	assert.Contains(t, string(group), `atlas["/user/profile"] = router.Build(`)

	root, err := Render(plan.Types[1])
	require.NoError(t, err)
	assert.Contains(t, string(root), "func init() {\n\trouter.RegisterRoot(\"app\", RouterRoot__app{})\n}\n")
}

func TestEmitWritesAndSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	logger, _ := th.NewTestLogger(t)
	var trace bytes.Buffer
	g := New(dir, logger, WithTrace(log.NewArtifact(&trace)))

	plan := samplePlan(t)
	require.NoError(t, emit.Flush(g, plan))
	assert.Equal(t, Stats{Written: 3}, g.Stats())

	data, err := os.ReadFile(filepath.Join(dir, "routergroup__app__user.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "RouterGroup__app__user")

	doc, err := os.ReadFile(filepath.Join(dir, "docs", "router-map-of-app.json"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"path": "/user/profile"`)
	assert.Equal(t, 3, strings.Count(trace.String(), "\n"))

	require.NoError(t, emit.Flush(g, plan))
	assert.Equal(t, Stats{Written: 3, Unchanged: 3}, g.Stats())
	assert.Equal(t, 3, strings.Count(trace.String(), "\n"))
	assert.Len(t, g.Files(), 6)
}

func TestEmitWithManifest(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	require.NoError(t, err)
	defer st.Close()

	logger, _ := th.NewTestLogger(t)
	plan := samplePlan(t)

	first := New(dir, logger, WithManifest(st, "app"))
	require.NoError(t, emit.Flush(first, plan))
	assert.Equal(t, 3, first.Stats().Written)

	path := filepath.Join(dir, "routergroup__app__user.go")
	a, err := st.Artifact(path)
	require.NoError(t, err)
	assert.Equal(t, "type", a.Kind)
	assert.Equal(t, "app", a.Module)
	assert.Equal(t, []string{"/src/user/profile.go"}, a.Deps)

	deps, err := st.DependentsOf("/src/user/profile.go")
	require.NoError(t, err)
	assert.Contains(t, deps, path)
	assert.Contains(t, deps, filepath.Join(dir, "docs", "router-map-of-app.json"))

	second := New(dir, logger, WithManifest(st, "app"))
	require.NoError(t, emit.Flush(second, plan))
	assert.Equal(t, Stats{Unchanged: 3}, second.Stats())

	require.NoError(t, os.Remove(path))
	third := New(dir, logger, WithManifest(st, "app"))
	require.NoError(t, emit.Flush(third, plan))
	assert.Equal(t, Stats{Written: 1, Unchanged: 2}, third.Stats())
}

func TestDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	logger, logs := th.NewTestLogger(t)
	g := New(dir, logger, WithDryRun(true))

	require.NoError(t, emit.Flush(g, samplePlan(t)))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 3, strings.Count(logs.String(), "Would write artifact"))
}

func TestPruneRemovesArtifactsNoLongerEmitted(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	require.NoError(t, err)
	defer st.Close()
	logger, _ := th.NewTestLogger(t)

	first := New(dir, logger, WithManifest(st, "app"))
	require.NoError(t, emit.Flush(first, samplePlan(t)))
	removed, err := first.Prune()
	require.NoError(t, err)
	assert.Empty(t, removed)

	// A second round without documentation.
	plan := samplePlan(t)
	plan.Raw = nil
	second := New(dir, logger, WithManifest(st, "app"))
	require.NoError(t, emit.Flush(second, plan))
	removed, err = second.Prune()
	require.NoError(t, err)

	doc := filepath.Join(dir, "docs", "router-map-of-app.json")
	assert.Equal(t, []string{doc}, removed)
	assert.NoFileExists(t, doc)
	_, ok, err := st.Digest(doc)
	require.NoError(t, err)
	assert.False(t, ok)

	other := New(dir, logger, WithManifest(st, "other"))
	removed, err = other.Prune()
	require.NoError(t, err)
	assert.Empty(t, removed, "artifacts of another module are kept")
	assert.FileExists(t, filepath.Join(dir, "routergroup__app__user.go"))
}

func TestPruneWithoutManifest(t *testing.T) {
	logger, _ := th.NewTestLogger(t)
	removed, err := New(t.TempDir(), logger).Prune()
	require.NoError(t, err)
	assert.Nil(t, removed)
}
