package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/routegen/internal/symbol"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		group     string
		wantGroup string
		wantErr   error
	}{
		{name: "derived group", path: "/user/profile", wantGroup: "user"},
		{name: "explicit group kept", path: "/user/profile", group: "account", wantGroup: "account"},
		{name: "deep path", path: "/g/a/b/c", wantGroup: "g"},
		{name: "no slash", path: "noSlash", wantErr: ErrRelativePath},
		{name: "empty", path: "", wantErr: ErrEmptyPath},
		{name: "single segment", path: "/user", wantErr: ErrNoGroup},
		{name: "empty first segment", path: "//x", wantErr: ErrEmptyGroup},
		{name: "single segment with group", path: "/user", group: "u", wantGroup: "u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Meta{Path: tt.path, Group: tt.group}
			err := m.Verify()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantGroup, m.Group)
		})
	}
}

func TestGroupSetOrdersByPath(t *testing.T) {
	s := NewGroupSet()
	for _, p := range []string{"/g/c", "/g/a", "/h/x", "/g/b", "/g/a"} {
		m := &Meta{Path: p}
		require.NoError(t, m.Verify())
		s.Add(m)
	}

	assert.Equal(t, []string{"g", "h"}, s.Groups())
	assert.Equal(t, 5, s.Len())

	var paths []string
	for _, m := range s.Routes("g") {
		paths = append(paths, m.Path)
	}
	assert.Equal(t, []string{"/g/a", "/g/a", "/g/b", "/g/c"}, paths)
}

func TestGroupSetKeepsInsertionOrderForEqualPaths(t *testing.T) {
	s := NewGroupSet()
	first := &Meta{Path: "/g/a", Group: "g", Name: "first"}
	second := &Meta{Path: "/g/a", Group: "g", Name: "second"}
	s.Add(first)
	s.Add(second)
	got := s.Routes("g")
	require.Len(t, got, 2)
	assert.Same(t, first, got[0])
	assert.Same(t, second, got[1])
}

func decl(name string) symbol.Declaration {
	return &symbol.Class{Qualified: name, DeclKind: symbol.KindClass}
}

func TestServiceRegistryConflict(t *testing.T) {
	r := NewServiceRegistry()
	iface := &symbol.Class{Qualified: "app.IFoo", DeclKind: symbol.KindInterface}

	require.NoError(t, r.Register(&Binding{Interface: iface, Key: "a", Implementation: decl("app.FooA")}))
	require.NoError(t, r.Register(&Binding{Interface: iface, Key: "a", Implementation: decl("app.FooA")}))
	require.NoError(t, r.Register(&Binding{Interface: iface, Key: "", Implementation: decl("app.FooB")}))

	err := r.Register(&Binding{Interface: iface, Key: "a", Implementation: decl("app.FooC")})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "app.IFoo", conflict.Interface)
	assert.Equal(t, "a", conflict.Key)
	assert.Equal(t, "app.FooA", conflict.Existing)
	assert.Equal(t, "app.FooC", conflict.Incoming)
	assert.Contains(t, err.Error(), "app.FooA")
	assert.Contains(t, err.Error(), "app.FooC")

	assert.Equal(t, []string{"app.IFoo"}, r.Interfaces())
	bindings := r.Bindings("app.IFoo")
	require.Len(t, bindings, 2)
	assert.Equal(t, "", bindings[0].Key)
	assert.Equal(t, "a", bindings[1].Key)
	assert.Equal(t, 2, r.Len())
}

func TestValidateKeys(t *testing.T) {
	require.NoError(t, ValidateKeys("app.Foo", []string{"a", "b"}))
	err := ValidateKeys("app.Foo", []string{"ok", "x:y"})
	var invalid *InvalidKeyError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "x:y", invalid.Key)
	assert.Contains(t, err.Error(), "':'")
}
