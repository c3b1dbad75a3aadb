package apispec

// LiteralSet is an insertion ordered set of scalar JSON literals: string, float64,
// bool and nil. It has no size limit.
type LiteralSet struct {
	seen   map[any]struct{}
	values []any
}

func NewLiteralSet() *LiteralSet {
	return &LiteralSet{seen: make(map[any]struct{})}
}

// Add inserts v unless an equal literal is already present. Values that are not
// comparable are dropped; they can't come out of a JSON scalar.
func (s *LiteralSet) Add(v any) bool {
	switch v.(type) {
	case nil, string, float64, bool:
	default:
		return false
	}
	if _, in := s.seen[v]; in {
		return false
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

func (s *LiteralSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Values returns the literals in the order they were first seen.
func (s *LiteralSet) Values() []any {
	if s == nil {
		return nil
	}
	res := make([]any, len(s.values))
	copy(res, s.values)
	return res
}

func (s *LiteralSet) Union(o *LiteralSet) {
	if o == nil {
		return
	}
	for _, v := range o.values {
		s.Add(v)
	}
}

func (s *LiteralSet) Clone() *LiteralSet {
	c := NewLiteralSet()
	c.Union(s)
	return c
}
