// Package pathtree derives the namespace hierarchy of a slash-delimited path: its
// ancestor chain, its display tags and the flat keys used to name components.
package pathtree

import (
	"path"
	"strings"
)

const Root = "/"

// Clean normalizes p to an absolute, slash-delimited path without a trailing slash.
func Clean(p string) string {
	return path.Clean(Root + strings.TrimPrefix(p, Root))
}

func segments(p string) []string {
	p = strings.TrimPrefix(Clean(p), Root)
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// AncestorChain lists every path from the root down to p, p included.
// "/a/b/c" gives "/", "/a", "/a/b", "/a/b/c".
func AncestorChain(p string) []string {
	parts := segments(p)
	res := make([]string, 0, len(parts)+1)
	res = append(res, Root)
	for i := range parts {
		res = append(res, Root+strings.Join(parts[:i+1], "/"))
	}
	return res
}

// Tags lists the cumulative prefixes of dir, root excluded. They only group
// operations for display.
func Tags(dir string) []string {
	return AncestorChain(dir)[1:]
}

// FlatKey turns a path into a component name: "/a/b" becomes "a b" and the root
// becomes "". The result never contains a slash.
func FlatKey(p string) string {
	return strings.ReplaceAll(strings.TrimPrefix(Clean(p), Root), "/", " ")
}
