// Package render turns DOT matching graphs into image artifacts using
// Graphviz.
package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/clearmatch/clearmatch/pkg/errors"
)

// Format is a renderable output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ValidFormats lists the supported output formats.
func ValidFormats() []Format {
	return []Format{FormatDOT, FormatSVG, FormatPNG}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range ValidFormats() {
		if s == string(f) {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unknown render format %q (want dot, svg, or png)", s)
}

// Render lays out a DOT graph and encodes it in the requested format.
// FormatDOT passes the input through unchanged.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return renderGraphviz(ctx, dot, graphviz.SVG)
	case FormatPNG:
		return renderGraphviz(ctx, dot, graphviz.PNG)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown render format %q", format)
	}
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
