package infer

import (
	"github.com/Hunter19823/Minecraft-Schema-Gen/apispec"
	"github.com/valyala/fastjson"
)

// ParseSampleBodyBytes parses one JSON document and records its shape.
func ParseSampleBodyBytes(b []byte) (*apispec.Node, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	return Record(v), nil
}

// Record converts a parsed JSON value into a node. It never fails: every value
// fastjson can hand out has a shape.
func Record(v *fastjson.Value) *apispec.Node {
	switch v.Type() {
	case fastjson.TypeObject:
		return recordObject(v.GetObject())
	case fastjson.TypeArray:
		return recordArray(v.GetArray())
	case fastjson.TypeString:
		return apispec.NewValueNode(apispec.TypeString, string(v.GetStringBytes()))
	case fastjson.TypeNumber:
		return apispec.NewValueNode(apispec.TypeNumber, v.GetFloat64())
	case fastjson.TypeTrue:
		return apispec.NewValueNode(apispec.TypeBoolean, true)
	case fastjson.TypeFalse:
		return apispec.NewValueNode(apispec.TypeBoolean, false)
	case fastjson.TypeNull:
		return apispec.NewValueNode(apispec.TypeNull, nil)
	}

	panic("should be unreachable")
}

func recordObject(o *fastjson.Object) *apispec.Node {
	ps := make(map[string]*apispec.Node, o.Len())
	o.Visit(func(key []byte, v *fastjson.Value) {
		// a repeated key simply overwrites, the last one wins
		ps[string(key)] = Record(v)
	})
	return apispec.NewObjectNode(ps)
}

func recordArray(vs []*fastjson.Value) *apispec.Node {
	if len(vs) == 0 {
		return apispec.NewArrayNode(nil)
	}

	item := apispec.NewNode()
	for _, v := range vs {
		item.Absorb(Record(v))
	}
	return apispec.NewArrayNode(item)
}
