package fake

import "math/rand"

// Generator produces random JSON trees. The same seed gives the same sequence of
// documents, which keeps property tests reproducible.
//
// MaxDepth below 1 is treated as 1: the root still gets generated, with scalar
// children only. Negative MaxKeys or MaxItems give empty containers.
type Generator struct {
	r        *rand.Rand
	MaxDepth int
	MaxKeys  int
	MaxItems int

	// Keys drawn for objects come from this pool so that separate documents share
	// property names often enough for merges to be interesting.
	Keys []string
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		r:        rand.New(rand.NewSource(seed)),
		MaxDepth: 4,
		MaxKeys:  6,
		MaxItems: 4,
		Keys:     []string{"id", "name", "type", "count", "tags", "value", "items", "enabled"},
	}
}

// JSON returns a random document whose root is always an object.
func (g *Generator) JSON() map[string]any {
	return g.object(0)
}

// Value returns a random document of any kind, scalar roots included.
func (g *Generator) Value() any {
	return g.value(0)
}

func (g *Generator) depthLimit() int {
	return max(g.MaxDepth, 1)
}

// intn is rand.Intn that returns 0 instead of panicking on n <= 0.
func (g *Generator) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.Intn(n)
}

func (g *Generator) key() string {
	if len(g.Keys) == 0 {
		return g.String(1 + g.r.Intn(4))
	}
	return g.Keys[g.r.Intn(len(g.Keys))]
}

func (g *Generator) value(depth int) any {
	leafOnly := depth+1 >= g.depthLimit()
	n := 6
	if !leafOnly {
		n = 8
	}
	switch g.r.Intn(n) {
	case 0, 1:
		return g.String(1 + g.r.Intn(8))
	case 2:
		return float64(g.r.Intn(5))
	case 3:
		return g.r.Intn(2) == 0
	case 4:
		return nil
	case 5:
		return g.String(1 + g.r.Intn(3))
	case 6:
		return g.object(depth + 1)
	default:
		return g.array(depth + 1)
	}
}

// object and array are only entered below depthLimit; value stops recursing
// one level above it.
func (g *Generator) object(depth int) map[string]any {
	nkeys := g.intn(g.MaxKeys + 1)
	obj := make(map[string]any, nkeys)
	for i := 0; i < nkeys; i++ {
		obj[g.key()] = g.value(depth)
	}
	return obj
}

func (g *Generator) array(depth int) []any {
	n := g.intn(g.MaxItems + 1)
	arr := make([]any, n)
	for i := range arr {
		arr[i] = g.value(depth)
	}
	return arr
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (g *Generator) String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[g.r.Intn(len(letters))]
	}
	return string(b)
}
