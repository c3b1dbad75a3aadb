// Package aggregate builds one OpenAPI document out of a batch of JSON documents
// spread over a namespace tree.
//
// Every document contributes to two schemas: the exact-node schema of the path it
// sits at, served as a POST operation, and the subtree schema of each of that
// path's ancestors, served as a GET operation. Subtree component names carry the
// "recursive-" prefix; exact-node names that happen to start with it are moved to
// "recursive-/...", which no flat key can produce.
package aggregate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Hunter19823/Minecraft-Schema-Gen/apispec"
	"github.com/Hunter19823/Minecraft-Schema-Gen/infer"
	"github.com/Hunter19823/Minecraft-Schema-Gen/jsonschema"
	"github.com/Hunter19823/Minecraft-Schema-Gen/merge"
	"github.com/Hunter19823/Minecraft-Schema-Gen/pathtree"
	"github.com/getkin/kin-openapi/openapi3"
)

const (
	OpenAPIVersion   = "3.0.3"
	SubtreePrefix    = "recursive-"
	SubtreeTag       = "Aggregated Schemas"
	MediaTypeJSON    = "application/json"
	componentsPrefix = "#/components/schemas/"
)

// Document is one raw input: the JSON text and where it lives.
type Document struct {
	Content []byte
	Path    string
	Name    string
	Tags    []string
}

// Entry is a recorded document.
type Entry struct {
	Schema *apispec.Node
	Path   string
	Name   string
	Tags   []string
}

type Builder struct {
	Info    openapi3.Info
	Emitter jsonschema.Emitter
	Logger  *slog.Logger
}

func NewBuilder(title, description, version string) *Builder {
	return &Builder{
		Info: openapi3.Info{
			Title:       title,
			Description: description,
			Version:     version,
		},
	}
}

// Record parses every document. The first malformed one fails the whole batch.
func Record(docs []Document) ([]Entry, error) {
	entries := make([]Entry, len(docs))
	for i, d := range docs {
		n, err := infer.ParseSampleBodyBytes(d.Content)
		if err != nil {
			return nil, &DocumentError{
				Index: i,
				Name:  d.Name,
				Path:  d.Path,
				Err:   fmt.Errorf("%w: %v", ErrMalformedDocument, err),
			}
		}
		entries[i] = Entry{Schema: n, Path: d.Path, Name: d.Name, Tags: d.Tags}
	}
	return entries, nil
}

func (b *Builder) Build(docs []Document) (*openapi3.T, error) {
	entries, err := Record(docs)
	if err != nil {
		return nil, err
	}
	return b.BuildEntries(entries), nil
}

// registry holds everything one BuildEntries call accumulates.
type registry struct {
	exact   map[string]*apispec.Node
	subtree map[string]*apispec.Node
	paths   openapi3.Paths
}

func newRegistry() *registry {
	return &registry{
		exact:   make(map[string]*apispec.Node),
		subtree: make(map[string]*apispec.Node),
		paths:   openapi3.Paths{},
	}
}

func fold(into map[string]*apispec.Node, key string, n *apispec.Node) {
	acc, in := into[key]
	if !in {
		acc = apispec.NewNode()
		into[key] = acc
	}
	acc.Absorb(n)
}

func (b *Builder) BuildEntries(entries []Entry) *openapi3.T {
	log := b.logger()
	r := newRegistry()

	for _, e := range entries {
		p := pathtree.Clean(e.Path)
		key := ExactName(p)

		fold(r.exact, key, e.Schema)
		merge.Into(r.paths, p, &openapi3.PathItem{Post: exactOperation(p, key, e)})

		for _, anc := range pathtree.AncestorChain(p) {
			akey := SubtreeName(anc)
			fold(r.subtree, akey, e.Schema)
			if item := r.paths[anc]; item == nil || item.Get == nil {
				merge.Into(r.paths, anc, &openapi3.PathItem{Get: subtreeOperation(anc, akey)})
			}
		}
	}

	schemas := make(openapi3.Schemas, len(r.exact)+len(r.subtree))
	for _, reg := range []map[string]*apispec.Node{r.exact, r.subtree} {
		for k, n := range reg {
			schemas[k] = b.Emitter.Emit(n).NewRef()
		}
	}

	log.Debug("built document", "entries", len(entries), "paths", len(r.paths), "schemas", len(schemas))

	info := b.Info
	return &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info:    &info,
		Paths:   r.paths,
		Components: &openapi3.Components{
			Schemas: schemas,
		},
	}
}

// ExactName is the component name of the exact-node schema at p.
func ExactName(p string) string {
	k := pathtree.FlatKey(p)
	if rest, ok := strings.CutPrefix(k, SubtreePrefix); ok {
		return SubtreePrefix + pathtree.Root + rest
	}
	return k
}

// SubtreeName is the component name of the subtree schema rooted at p.
func SubtreeName(p string) string {
	return SubtreePrefix + pathtree.FlatKey(p)
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func schemaRef(key string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(componentsPrefix+key, nil)
}

func exactOperation(p, key string, e Entry) *openapi3.Operation {
	mt := openapi3.NewMediaType()
	mt.Schema = schemaRef(key)

	rb := openapi3.NewRequestBody()
	rb.Content = openapi3.Content{MediaTypeJSON: mt}

	return &openapi3.Operation{
		Description: fmt.Sprintf("Submit data stored directly in %s, such as %s", p, e.Name),
		RequestBody: &openapi3.RequestBodyRef{Value: rb},
		Responses: openapi3.Responses{
			"200": &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Accepted")},
		},
		Tags: merge.Tags(nil, e.Tags),
	}
}

func subtreeOperation(p, key string) *openapi3.Operation {
	mt := openapi3.NewMediaType()
	mt.Schema = schemaRef(key)

	rs := openapi3.NewResponse().WithDescription(fmt.Sprintf("Aggregate of %s and everything beneath it", p))
	rs.Content = openapi3.Content{MediaTypeJSON: mt}

	return &openapi3.Operation{
		Description: fmt.Sprintf("Fetch the schema of every document at or below %s", p),
		Tags:        []string{SubtreeTag},
		Responses: openapi3.Responses{
			"default": &openapi3.ResponseRef{Value: rs},
		},
	}
}
