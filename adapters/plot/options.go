// Package plot draws the figures of a diagnostics report with go-chart.
package plot

import (
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Format is an image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat validates an image format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown plot format %q", s)
	}
}

// Options sizes and encodes a figure.
type Options struct {
	Format Format
	Width  int
	Height int
}

// DefaultOptions returns 800x600 PNG output.
func DefaultOptions() Options {
	return Options{Format: FormatPNG, Width: 800, Height: 600}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Ext is the file extension for the format.
func (o Options) Ext() string {
	return string(o.normalized().Format)
}

func (o Options) provider() (chart.RendererProvider, error) {
	switch o.Format {
	case FormatPNG:
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("unknown plot format %q", o.Format)
	}
}

type renderFunc func(w io.Writer, title string, opts Options, rp chart.RendererProvider) error
