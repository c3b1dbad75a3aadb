package apispec

import "sort"

type TypeTag string

const (
	TypeObject  TypeTag = "object"
	TypeArray   TypeTag = "array"
	TypeString  TypeTag = "string"
	TypeNumber  TypeTag = "number"
	TypeBoolean TypeTag = "boolean"
	TypeNull    TypeTag = "null"
)

// Node is the inferred shape at one position of a JSON value tree. Nodes recorded
// from different documents are combined with Aggregate, Merge or Absorb.
//
// Nothing here says whether a property is required. A key that only some of the
// merged documents carry looks exactly like a key that all of them carry.
type Node struct {
	Types      map[TypeTag]int
	Items      *Node // arrays are bags, element position is not kept
	Properties map[string]*Node
	Literals   *LiteralSet
}

func NewNode() *Node {
	return &Node{
		Types:      make(map[TypeTag]int),
		Properties: make(map[string]*Node),
		Literals:   NewLiteralSet(),
	}
}

func NewObjectNode(props map[string]*Node) *Node {
	n := NewNode()
	n.Types[TypeObject] = 1
	for k, v := range props {
		n.Properties[k] = v
	}
	return n
}

func NewArrayNode(items *Node) *Node {
	n := NewNode()
	n.Types[TypeArray] = 1
	n.Items = items
	return n
}

// NewValueNode records a single scalar. The literal is kept as an enum candidate.
func NewValueNode(t TypeTag, literal any) *Node {
	n := NewNode()
	n.Types[t] = 1
	n.Literals.Add(literal)
	return n
}

func (n *Node) Empty() bool {
	return n == nil || len(n.Types) == 0
}

func (n *Node) Has(t TypeTag) bool {
	if n == nil {
		return false
	}
	return n.Types[t] > 0
}

// TypeTags returns the observed type tags in a stable (sorted) order.
func (n *Node) TypeTags() []TypeTag {
	if n == nil {
		return nil
	}
	ts := make([]TypeTag, 0, len(n.Types))
	for t, c := range n.Types {
		if c > 0 {
			ts = append(ts, t)
		}
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// PropertyKeys returns the property names in sorted order.
func (n *Node) PropertyKeys() []string {
	if n == nil {
		return nil
	}
	ks := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Types:      make(map[TypeTag]int, len(n.Types)),
		Items:      n.Items.Clone(),
		Properties: make(map[string]*Node, len(n.Properties)),
		Literals:   n.Literals.Clone(),
	}
	for t, k := range n.Types {
		c.Types[t] = k
	}
	for k, v := range n.Properties {
		c.Properties[k] = v.Clone()
	}
	return c
}
