package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func depthOf(v any) int {
	switch x := v.(type) {
	case map[string]any:
		d := 0
		for _, c := range x {
			d = max(d, depthOf(c))
		}
		return d + 1
	case []any:
		d := 0
		for _, c := range x {
			d = max(d, depthOf(c))
		}
		return d + 1
	default:
		return 0
	}
}

func TestSameSeedSameDocuments(t *testing.T) {
	a, b := NewGenerator(7), NewGenerator(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Value(), b.Value())
	}
}

func TestDepthStaysWithinLimit(t *testing.T) {
	g := NewGenerator(1)
	for i := 0; i < 50; i++ {
		assert.LessOrEqual(t, depthOf(g.JSON()), g.MaxDepth)
		assert.LessOrEqual(t, depthOf(g.Value()), g.MaxDepth)
	}
}

func TestNonPositiveLimits(t *testing.T) {
	for _, depth := range []int{0, -1} {
		g := NewGenerator(3)
		g.MaxDepth = depth
		for i := 0; i < 20; i++ {
			assert.NotPanics(t, func() {
				obj := g.JSON()
				assert.NotNil(t, obj)
				assert.LessOrEqual(t, depthOf(obj), 1)
				assert.LessOrEqual(t, depthOf(g.Value()), 1)
			})
		}
	}

	g := NewGenerator(5)
	g.MaxKeys, g.MaxItems, g.Keys = -3, -3, nil
	assert.NotPanics(t, func() {
		assert.Empty(t, g.JSON())
	})

	g = NewGenerator(5)
	g.Keys = nil
	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			g.JSON()
		}
	})
}
