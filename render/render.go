package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

func Marshal(doc *openapi3.T, f Format) ([]byte, error) {
	bs, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatJSON:
		return append(bs, '\n'), nil
	case FormatYAML:
		return yaml.JSONToYAML(bs)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
}

func Write(w io.Writer, doc *openapi3.T, f Format) error {
	bs, err := Marshal(doc, f)
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}
