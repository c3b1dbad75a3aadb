package merge

import "github.com/getkin/kin-openapi/openapi3"

// Merging here is lopsided on purpose: whoever registered an operation first owns
// its description, body and responses. Later operations for the same path and
// method only add their tags.

// Into folds item into ps under key.
func Into(ps openapi3.Paths, key string, item *openapi3.PathItem) {
	ps[key] = PathItem(ps[key], item)
}

func PathItem(a, b *openapi3.PathItem) *openapi3.PathItem {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b == nil {
		return a
	}
	if a == nil && b != nil {
		return b
	}

	return &openapi3.PathItem{
		Ref:         mergeString(a.Ref, b.Ref),
		Summary:     mergeString(a.Summary, b.Summary),
		Description: mergeString(a.Description, b.Description),
		Connect:     Operation(a.Connect, b.Connect),
		Delete:      Operation(a.Delete, b.Delete),
		Get:         Operation(a.Get, b.Get),
		Head:        Operation(a.Head, b.Head),
		Options:     Operation(a.Options, b.Options),
		Patch:       Operation(a.Patch, b.Patch),
		Post:        Operation(a.Post, b.Post),
		Put:         Operation(a.Put, b.Put),
		Trace:       Operation(a.Trace, b.Trace),
	}
}

func Operation(a, b *openapi3.Operation) *openapi3.Operation {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b == nil {
		return a
	}
	if a == nil && b != nil {
		return b
	}

	res := *a
	res.Tags = Tags(a.Tags, b.Tags)
	return &res
}

// Tags is an order preserving union.
func Tags(a, b []string) []string {
	if len(b) == 0 {
		return a
	}

	res := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, ts := range [][]string{a, b} {
		for _, t := range ts {
			if _, in := seen[t]; in {
				continue
			}
			seen[t] = struct{}{}
			res = append(res, t)
		}
	}
	return res
}

// mergeString keeps the first non-empty value.
func mergeString(a, b string) string {
	if a == "" {
		return b
	}
	return a
}
