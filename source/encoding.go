package source

import (
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrUnsupportedEncoding marks a JSON file whose compression can't be read.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

var suffixes = []struct {
	suffix string
	enc    string
}{
	{".json.gz", "gzip"},
	{".json.zz", "deflate"},
	{".json.br", "br"},
	{".json.z", "compress"},
	{".json", ""},
}

// encodingOf reports the content encoding implied by a file name, and whether the
// file holds JSON at all.
func encodingOf(name string) (suffix, enc string, ok bool) {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return name[len(name)-len(s.suffix):], s.enc, true
		}
	}
	return "", "", false
}

func newEncodedReader(enc string, r io.ReadCloser) (io.ReadCloser, error) {
	switch enc {
	case "":
		return r, nil
	case "gzip":
		return gzip.NewReader(r)
	case "deflate":
		return zlib.NewReader(r)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedEncoding, enc)
	}
}

func readAllEncoded(enc string, r io.ReadCloser) ([]byte, error) {
	d, err := newEncodedReader(enc, r)
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	bs, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}

	if enc != "" {
		if err := d.Close(); err != nil {
			slog.Warn("could not close reader", "err", err)
		}
	}

	return bs, nil
}
