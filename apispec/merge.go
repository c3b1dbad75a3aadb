package apispec

// Aggregate joins any number of nodes into a new one. The inputs are left untouched,
// so the same per-document node can be folded into several registries. With no
// inputs the result is an empty node.
func Aggregate(nodes ...*Node) *Node {
	acc := NewNode()
	for _, n := range nodes {
		acc.Absorb(n)
	}
	return acc
}

func Merge(a, b *Node) *Node {
	if a == nil && b == nil {
		return nil
	}
	return Aggregate(a, b)
}

// Absorb folds o into n. Children that only o has are copied, never shared, which
// keeps n the sole owner of everything reachable from it.
func (n *Node) Absorb(o *Node) {
	if o == nil {
		return
	}
	n.ensure()

	for t, c := range o.Types {
		n.Types[t] += c
	}

	n.Literals.Union(o.Literals)

	for k, v := range o.Properties {
		if w, in := n.Properties[k]; in && w != nil {
			w.Absorb(v)
		} else {
			n.Properties[k] = v.Clone()
		}
	}

	if o.Items != nil {
		if n.Items != nil {
			n.Items.Absorb(o.Items)
		} else {
			n.Items = o.Items.Clone()
		}
	}
}

func (n *Node) ensure() {
	if n.Types == nil {
		n.Types = make(map[TypeTag]int)
	}
	if n.Properties == nil {
		n.Properties = make(map[string]*Node)
	}
	if n.Literals == nil {
		n.Literals = NewLiteralSet()
	}
}
