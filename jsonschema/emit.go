package jsonschema

import (
	"github.com/Hunter19823/Minecraft-Schema-Gen/apispec"
	"github.com/getkin/kin-openapi/openapi3"
)

// Emitter turns nodes into JSON-Schema shaped OpenAPI schemas.
type Emitter struct {
	// MaxEnum caps the number of literals emitted as an enum. Zero means no cap.
	// A node holding more literals than the cap gets no enum at all.
	MaxEnum int
}

// Emit uses the default Emitter, which has no enum cap.
func Emit(n *apispec.Node) *openapi3.Schema {
	var e Emitter
	return e.Emit(n)
}

func (e *Emitter) Emit(n *apispec.Node) *openapi3.Schema {
	s := &openapi3.Schema{}
	if n.Empty() {
		return s
	}

	ts := n.TypeTags()
	if len(ts) == 1 {
		s.Type = string(ts[0])
	} else {
		// only bare type discriminators, the per-type shape lives on s itself
		s.OneOf = make(openapi3.SchemaRefs, len(ts))
		for i, t := range ts {
			s.OneOf[i] = openapi3.NewSchemaRef("", &openapi3.Schema{Type: string(t)})
		}
	}

	if n.Has(apispec.TypeObject) {
		s.Properties = make(openapi3.Schemas, len(n.Properties))
		for k, v := range n.Properties {
			s.Properties[k] = e.Emit(v).NewRef()
		}
	}

	if n.Has(apispec.TypeArray) {
		s.Items = e.Emit(n.Items).NewRef()
	}

	// enum goes on whatever literals were seen, even for containers and oneOf
	if l := n.Literals.Len(); l > 0 && (e.MaxEnum <= 0 || l <= e.MaxEnum) {
		s.Enum = n.Literals.Values()
	}

	return s
}
