package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		ok      bool
		wantErr bool
		want    Annotation
	}{
		{
			name:    "route with fields",
			comment: `//router:route path:"/user/profile" name:"User \"profile\"" priority:"2"`,
			ok:      true,
			want: Annotation{Name: "route", Values: map[string]string{
				"path": "/user/profile", "name": `User "profile"`, "priority": "2",
			}},
		},
		{
			name:    "no fields",
			comment: "//router:autowired",
			ok:      true,
			want:    Annotation{Name: "autowired", Values: map[string]string{}},
		},
		{
			name:    "other prefix",
			comment: "//go:generate stringer",
			ok:      false,
		},
		{
			name:    "plain comment",
			comment: "// router:route is not a directive",
			ok:      false,
		},
		{
			name:    "unterminated",
			comment: `//router:route path:"/a`,
			ok:      true,
			wantErr: true,
		},
		{
			name:    "unquoted value",
			comment: `//router:route path:/a`,
			ok:      true,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseDirective("router", tt.comment)
			assert.Equal(t, tt.ok, ok)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.ok {
				assert.Equal(t, tt.want.Name, got.Name)
				assert.Equal(t, tt.want.Values, got.Values)
			}
		})
	}
}

func TestAnnotationAccessors(t *testing.T) {
	a := Annotation{Name: "uri", Values: map[string]string{
		"path":     "/a, /b,,",
		"exported": "true",
		"priority": "x",
	}}

	assert.Equal(t, []string{"/a", "/b"}, a.Strings("path"))
	assert.Nil(t, a.Strings("missing"))

	b, err := a.Bool("exported", false)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = a.Bool("missing", true)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = a.Int("priority", 0)
	assert.Error(t, err)

	n, err := a.Int("missing", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestClassesPartiallyResolved(t *testing.T) {
	u := NewUniverse(
		&Class{Qualified: "app/mw.Auth", DeclKind: KindClass},
		&Class{Qualified: "app/mw.Log", DeclKind: KindClass},
	)
	a := Annotation{
		Name:   "page",
		Values: map[string]string{"interceptors": "Auth,Gone,app/mw.Log"},
		Qualify: func(s string) string {
			if s == "Auth" || s == "Gone" {
				return "app/mw." + s
			}
			return s
		},
	}

	got := a.Classes(u, "interceptors")
	require.True(t, got.Partial())
	assert.Equal(t, []string{"app/mw.Gone"}, got.Missing)
	require.Len(t, got.Types, 2)
	assert.Equal(t, "app/mw.Auth", got.Types[0].QualifiedName())
	assert.Equal(t, "app/mw.Log", got.Types[1].QualifiedName())
}

func TestUniverseSymbolsWithAnnotationSorted(t *testing.T) {
	route := Annotation{Name: "route"}
	u := NewUniverse(
		&Class{Qualified: "b.Z", Annots: []Annotation{route}},
		&Class{Qualified: "a.Y", Annots: []Annotation{route}},
		&Class{Qualified: "a.X"},
	)
	got := u.SymbolsWithAnnotation("route")
	require.Len(t, got, 2)
	assert.Equal(t, "a.Y", got[0].QualifiedName())
	assert.Equal(t, "b.Z", got[1].QualifiedName())
}

func TestClassNames(t *testing.T) {
	c := &Class{Qualified: "example.com/app/user.Profile", DeclKind: KindInterface}
	assert.Equal(t, "Profile", c.Name())
	assert.Equal(t, "example.com/app/user", c.Package())
	assert.True(t, c.IsAbstract())
}
