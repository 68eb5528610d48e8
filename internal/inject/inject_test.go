package inject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/routegen/internal/classify"
	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/inject"
	"github.com/Alia5/routegen/internal/symbol"
	"github.com/Alia5/routegen/pkg/router"
)

func autowired(values map[string]string) []symbol.Annotation {
	return []symbol.Annotation{{Name: "autowired", Values: values}}
}

func TestCollect(t *testing.T) {
	n := common.DefaultNames()
	u := symbol.NewUniverse(
		&symbol.Class{Qualified: n.Provider, DeclKind: symbol.KindInterface},
		&symbol.Class{Qualified: "encoding.BinaryMarshaler", DeclKind: symbol.KindInterface},
		&symbol.Class{Qualified: "encoding.TextMarshaler", DeclKind: symbol.KindInterface},
		&symbol.Class{Qualified: "app.Greeter", DeclKind: symbol.KindInterface, Supers: symbol.Refs(n.Provider)},
		&symbol.Class{Qualified: "app.Blob", DeclKind: symbol.KindClass, Supers: symbol.Refs("encoding.BinaryMarshaler")},
		&symbol.Class{Qualified: "app.Text", DeclKind: symbol.KindClass, Supers: symbol.Refs("encoding.TextMarshaler")},
		&symbol.Class{Qualified: "app.User", DeclKind: symbol.KindClass},
	)
	target := &symbol.Class{
		Qualified: "app.Profile",
		DeclKind:  symbol.KindClass,
		Props: []symbol.Property{
			{Name: "UserID", TypeName: "int64", Annotations: autowired(map[string]string{"name": "uid", "desc": "user id", "required": "true"})},
			{Name: "Nick", TypeName: "string", Annotations: autowired(map[string]string{})},
			{Name: "Ignored", TypeName: "string"},
			{Name: "Greeter", TypeName: "app.Greeter", Type: symbol.TypeRef{Name: "app.Greeter"}, Annotations: autowired(nil)},
			{Name: "Blob", TypeName: "*app.Blob", Type: symbol.TypeRef{Name: "app.Blob"}, Annotations: autowired(nil)},
			{Name: "Text", TypeName: "app.Text", Type: symbol.TypeRef{Name: "app.Text"}, Annotations: autowired(nil)},
			{Name: "User", TypeName: "app.User", Type: symbol.TypeRef{Name: "app.User"}, Annotations: autowired(nil)},
			{Name: "Tags", TypeName: "[]string", Annotations: autowired(nil)},
			{Name: "Ok", TypeName: "bool", Annotations: autowired(nil)},
			{Name: "Ratio", TypeName: "float32", Annotations: autowired(nil)},
		},
	}
	u.Add(target)

	b := inject.NewBuilder(u, classify.New(u, n), n)
	params, err := b.Collect(target)
	require.NoError(t, err)

	want := []inject.Param{
		{Key: "uid", Field: "UserID", Kind: router.KindLong, Description: "user id", Required: true},
		{Key: "Nick", Field: "Nick", Kind: router.KindString},
		{Key: "Blob", Field: "Blob", Kind: router.KindSerializable},
		{Key: "Text", Field: "Text", Kind: router.KindParcelable},
		{Key: "User", Field: "User", Kind: router.KindObject},
		{Key: "Tags", Field: "Tags", Kind: router.KindObject},
		{Key: "Ok", Field: "Ok", Kind: router.KindBool},
		{Key: "Ratio", Field: "Ratio", Kind: router.KindFloat},
	}
	assert.Equal(t, want, params)
}

func TestCollectDuplicateKeyReplacesInPlace(t *testing.T) {
	n := common.DefaultNames()
	target := &symbol.Class{
		Qualified: "app.Page",
		DeclKind:  symbol.KindClass,
		Props: []symbol.Property{
			{Name: "A", TypeName: "string", Annotations: autowired(map[string]string{"name": "id"})},
			{Name: "B", TypeName: "int", Annotations: autowired(nil)},
			{Name: "C", TypeName: "int", Annotations: autowired(map[string]string{"name": "id", "desc": "second"})},
		},
	}
	u := symbol.NewUniverse(target)
	params, err := inject.NewBuilder(u, classify.New(u, n), n).Collect(target)
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "id", params[0].Key)
	assert.Equal(t, "C", params[0].Field)
	assert.Equal(t, "second", params[0].Description)
	assert.Equal(t, "B", params[1].Key)
}

func TestCollectBadRequiredFlag(t *testing.T) {
	n := common.DefaultNames()
	target := &symbol.Class{
		Qualified: "app.Page",
		Props: []symbol.Property{
			{Name: "A", TypeName: "string", Annotations: autowired(map[string]string{"required": "maybe"})},
		},
	}
	u := symbol.NewUniverse(target)
	_, err := inject.NewBuilder(u, classify.New(u, n), n).Collect(target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.Page.A")
}
