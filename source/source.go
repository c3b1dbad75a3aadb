// Package source finds JSON documents in a directory tree and reads them as one
// all-or-nothing batch.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/Hunter19823/Minecraft-Schema-Gen/aggregate"
	"github.com/Hunter19823/Minecraft-Schema-Gen/pathtree"
	"golang.org/x/sync/errgroup"
)

// Ref is a document that has been found but not read yet.
type Ref struct {
	File string // path inside the fs.FS
	Enc  string
	pathtree.Location
}

// Walk lists every JSON document in fsys. rootName stands in for the upload root
// segment, the directory the user picked, and never shows up in namespace paths.
func Walk(fsys fs.FS, rootName string) ([]Ref, error) {
	var refs []Ref
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		suffix, enc, ok := encodingOf(d.Name())
		if !ok {
			return nil
		}

		loc := pathtree.Locate(path.Join(rootName, p))
		loc.Name = strings.TrimSuffix(d.Name(), suffix)
		refs = append(refs, Ref{File: p, Enc: enc, Location: loc})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// ReadAll reads every ref concurrently, at most limit at a time when limit is
// positive. Nothing is returned unless every read succeeds; the first failure
// cancels the reads still pending.
func ReadAll(ctx context.Context, fsys fs.FS, refs []Ref, limit int) ([]aggregate.Document, error) {
	docs := make([]aggregate.Document, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bs, err := readFile(fsys, ref)
			if err != nil {
				return fmt.Errorf("read %s: %w", ref.File, err)
			}
			docs[i] = aggregate.Document{
				Content: bs,
				Path:    ref.Path,
				Name:    ref.Name,
				Tags:    ref.Tags,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func readFile(fsys fs.FS, ref Ref) ([]byte, error) {
	f, err := fsys.Open(ref.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readAllEncoded(ref.Enc, f)
}

// Load walks fsys and reads everything it finds.
func Load(ctx context.Context, fsys fs.FS, rootName string, limit int) ([]aggregate.Document, error) {
	refs, err := Walk(fsys, rootName)
	if err != nil {
		return nil, err
	}
	return ReadAll(ctx, fsys, refs, limit)
}
