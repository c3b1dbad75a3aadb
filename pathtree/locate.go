package pathtree

import (
	"path"
	"strings"
)

// Location is where a file lands in the namespace.
type Location struct {
	Path string
	Name string
	Tags []string
}

// Locate places an uploaded file given its upload-relative name, such as
// "pack/data/recipes/stone.json". The first segment is the upload root and is not
// part of the namespace, so that file lands at "/data/recipes" named "stone".
func Locate(rel string) Location {
	rel = strings.Trim(strings.ReplaceAll(rel, "\\", "/"), "/")
	dir, file := path.Split(rel)

	dir = strings.TrimSuffix(dir, "/")
	if i := strings.IndexByte(dir, '/'); i >= 0 {
		dir = dir[i+1:]
	} else {
		dir = ""
	}

	p := Clean(dir)
	return Location{
		Path: p,
		Name: strings.TrimSuffix(file, path.Ext(file)),
		Tags: Tags(p),
	}
}
