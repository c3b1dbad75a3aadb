package aggregate

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(content, path, name string, tags ...string) Document {
	return Document{Content: []byte(content), Path: path, Name: name, Tags: tags}
}

func build(t *testing.T, docs ...Document) *openapi3.T {
	t.Helper()
	b := NewBuilder("Test", "test document", "0.0.1")
	res, err := b.Build(docs)
	require.NoError(t, err)
	return res
}

func schemaJSON(t *testing.T, d *openapi3.T, key string) string {
	t.Helper()
	ref, in := d.Components.Schemas[key]
	require.True(t, in, "missing component %q", key)
	bs, err := json.Marshal(ref.Value)
	require.NoError(t, err)
	return string(bs)
}

func keys(s openapi3.Schemas) []string {
	ks := make([]string, 0, len(s))
	for k := range s {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func TestBuildEmpty(t *testing.T) {
	d := build(t)
	assert.Equal(t, OpenAPIVersion, d.OpenAPI)
	assert.Equal(t, "Test", d.Info.Title)
	assert.Empty(t, d.Paths)
	assert.Empty(t, d.Components.Schemas)

	bs, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"openapi":"3.0.3"`)
}

func TestBuildObjects(t *testing.T) {
	d := build(t,
		doc(`{"x":1}`, "/d", "one"),
		doc(`{"x":"s"}`, "/d", "two"),
	)

	s := d.Components.Schemas["d"].Value
	assert.Equal(t, "object", s.Type)
	x := s.Properties["x"].Value
	require.Len(t, x.OneOf, 2)
	assert.Equal(t, "number", x.OneOf[0].Value.Type)
	assert.Equal(t, "string", x.OneOf[1].Value.Type)
	assert.ElementsMatch(t, []any{float64(1), "s"}, x.Enum)
}

func TestBuildArrays(t *testing.T) {
	d := build(t, doc(`[1,2,3]`, "/n", "numbers"))
	assert.JSONEq(t, `{"type":"array","items":{"type":"number","enum":[1,2,3]}}`, schemaJSON(t, d, "n"))
}

func TestBuildSubtree(t *testing.T) {
	d := build(t,
		doc(`{"p":1}`, "/a/x", "x"),
		doc(`{"q":2}`, "/a/y", "y"),
	)

	for _, key := range []string{"recursive-a", "recursive-"} {
		s := d.Components.Schemas[key].Value
		assert.Contains(t, s.Properties, "p", key)
		assert.Contains(t, s.Properties, "q", key)
	}

	x := d.Components.Schemas["a x"].Value
	assert.Contains(t, x.Properties, "p")
	assert.NotContains(t, x.Properties, "q")

	y := d.Components.Schemas["a y"].Value
	assert.Contains(t, y.Properties, "q")
	assert.NotContains(t, y.Properties, "p")

	assert.Contains(t, d.Components.Schemas, "recursive-a x")
	assert.Contains(t, d.Components.Schemas, "recursive-a y")
	assert.NotContains(t, d.Components.Schemas, "a")
	assert.Len(t, d.Components.Schemas, 6)
}

func TestBuildOperations(t *testing.T) {
	d := build(t,
		doc(`{"p":1}`, "/a/x", "first", "/a", "/a/x"),
		doc(`{"p":2}`, "/a/x", "second", "/a", "/a/x", "extra"),
		doc(`{"q":2}`, "/a/y", "third"),
	)

	require.Len(t, d.Paths, 4)

	post := d.Paths["/a/x"].Post
	require.NotNil(t, post)
	assert.Contains(t, post.Description, "first")
	assert.Equal(t, []string{"/a", "/a/x", "extra"}, post.Tags)
	assert.Equal(t, "#/components/schemas/a x", post.RequestBody.Value.Content[MediaTypeJSON].Schema.Ref)

	for _, p := range []string{"/", "/a", "/a/x", "/a/y"} {
		get := d.Paths[p].Get
		require.NotNil(t, get, p)
		assert.Equal(t, []string{SubtreeTag}, get.Tags)
		assert.Contains(t, get.Responses, "default")
	}
	assert.Equal(t, "#/components/schemas/recursive-a",
		d.Paths["/a"].Get.Responses["default"].Value.Content[MediaTypeJSON].Schema.Ref)

	assert.Nil(t, d.Paths["/"].Post)
	assert.Nil(t, d.Paths["/a"].Post)
	assert.Nil(t, d.Paths["/a/y"].Post.Tags)
}

func TestBuildRootDocument(t *testing.T) {
	d := build(t, doc(`{"r":true}`, "/", "top"))
	require.NotNil(t, d.Paths["/"].Post)
	require.NotNil(t, d.Paths["/"].Get)
	assert.Contains(t, d.Components.Schemas, "")
	assert.Contains(t, d.Components.Schemas, "recursive-")
	assert.Len(t, d.Components.Schemas, 2)
}

func getRef(t *testing.T, d *openapi3.T, p string) string {
	t.Helper()
	item := d.Paths[p]
	require.NotNil(t, item, p)
	require.NotNil(t, item.Get, p)
	return item.Get.Responses["default"].Value.Content[MediaTypeJSON].Schema.Ref
}

func postRef(t *testing.T, d *openapi3.T, p string) string {
	t.Helper()
	item := d.Paths[p]
	require.NotNil(t, item, p)
	require.NotNil(t, item.Post, p)
	return item.Post.RequestBody.Value.Content[MediaTypeJSON].Schema.Ref
}

func TestBuildRootAndRootNamedDirectory(t *testing.T) {
	d := build(t,
		doc(`{"top":1}`, "/", "top"),
		doc(`{"inner":1}`, "/root", "inner"),
		doc(`{"other":1}`, "/b", "other"),
	)
	schemas := d.Components.Schemas

	top := schemas[""].Value
	assert.Equal(t, []string{"top"}, keys(top.Properties))
	inner := schemas["root"].Value
	assert.Equal(t, []string{"inner"}, keys(inner.Properties))

	assert.Equal(t, []string{"inner"}, keys(schemas["recursive-root"].Value.Properties))
	assert.Equal(t, []string{"inner", "other", "top"}, keys(schemas["recursive-"].Value.Properties))

	assert.Equal(t, "#/components/schemas/", postRef(t, d, "/"))
	assert.Equal(t, "#/components/schemas/root", postRef(t, d, "/root"))
	assert.Equal(t, "#/components/schemas/recursive-", getRef(t, d, "/"))
	assert.Equal(t, "#/components/schemas/recursive-root", getRef(t, d, "/root"))
	assert.Len(t, schemas, 6)
}

func TestBuildPrefixedDirectoryKeepsNamesApart(t *testing.T) {
	d := build(t,
		doc(`{"plain":1}`, "/a", "plain"),
		doc(`{"lookalike":1}`, "/recursive-a", "lookalike"),
		doc(`{"bare":1}`, "/recursive-", "bare"),
	)
	schemas := d.Components.Schemas

	assert.Equal(t, []string{"plain"}, keys(schemas["a"].Value.Properties))
	assert.Equal(t, []string{"plain"}, keys(schemas["recursive-a"].Value.Properties))
	assert.Equal(t, []string{"lookalike"}, keys(schemas["recursive-/a"].Value.Properties))
	assert.Equal(t, []string{"lookalike"}, keys(schemas["recursive-recursive-a"].Value.Properties))
	assert.Equal(t, []string{"bare"}, keys(schemas["recursive-/"].Value.Properties))
	assert.Equal(t, []string{"bare"}, keys(schemas["recursive-recursive-"].Value.Properties))
	assert.Equal(t, []string{"bare", "lookalike", "plain"}, keys(schemas["recursive-"].Value.Properties))
	assert.Len(t, schemas, 7)

	assert.Equal(t, "#/components/schemas/recursive-/a", postRef(t, d, "/recursive-a"))
	assert.Equal(t, "#/components/schemas/recursive-recursive-a", getRef(t, d, "/recursive-a"))
	assert.Equal(t, "#/components/schemas/recursive-a", getRef(t, d, "/a"))
}

func TestComponentNames(t *testing.T) {
	assert.Equal(t, "", ExactName("/"))
	assert.Equal(t, "recursive-", SubtreeName("/"))
	assert.Equal(t, "a b", ExactName("/a/b"))
	assert.Equal(t, "recursive-a b", SubtreeName("/a/b"))
	assert.Equal(t, "recursive-/x", ExactName("/recursive-x"))
	assert.Equal(t, "recursive-/", ExactName("/recursive-"))
	assert.NotEqual(t, SubtreeName("/x"), ExactName("/recursive-x"))
}

func TestBuildDoesNotAliasRegistries(t *testing.T) {
	d := build(t,
		doc(`{"k":{"a":1}}`, "/a", "first"),
		doc(`{"k":{"b":1}}`, "/", "second"),
	)

	exact := d.Components.Schemas["a"].Value.Properties["k"].Value
	assert.Contains(t, exact.Properties, "a")
	assert.NotContains(t, exact.Properties, "b")

	root := d.Components.Schemas["recursive-"].Value.Properties["k"].Value
	assert.Contains(t, root.Properties, "a")
	assert.Contains(t, root.Properties, "b")
}

func TestBuildMalformedFailsBatch(t *testing.T) {
	b := NewBuilder("Test", "", "0.0.1")
	res, err := b.Build([]Document{
		doc(`{"ok":1}`, "/a", "good"),
		doc(`{"broken":`, "/a/b", "bad"),
	})

	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))

	var de *DocumentError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Index)
	assert.Equal(t, "bad", de.Name)
	assert.Equal(t, "/a/b", de.Path)
}

func TestBuildMaxEnum(t *testing.T) {
	b := NewBuilder("Test", "", "0.0.1")
	b.Emitter.MaxEnum = 1
	d, err := b.Build([]Document{doc(`["a","b"]`, "/e", "e")})
	require.NoError(t, err)
	assert.Empty(t, d.Components.Schemas["e"].Value.Items.Value.Enum)
}
