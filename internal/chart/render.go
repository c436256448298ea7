package chart

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
)

// ErrUnknownFormat is returned for output formats the renderer does not support.
var ErrUnknownFormat = errors.New("unknown output format")

// RenderOptions gathers the per-format options.
type RenderOptions struct {
	HTML   HTMLOptions
	Static StaticOptions
}

// FormatFor resolves the output format. Without an explicit format the page
// is always html, whatever the extension of the output path.
func FormatFor(explicit string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(explicit))
	if f == "" {
		return FormatHTML, nil
	}
	if !supported(f) {
		return "", errors.Wrapf(ErrUnknownFormat, "%q (use html, png, svg or pdf)", explicit)
	}
	return f, nil
}

// Render writes fig to w in the given format.
func Render(w io.Writer, fig *Figure, format string, opt RenderOptions) error {
	switch format {
	case FormatHTML:
		return RenderHTML(w, fig, opt.HTML)
	case FormatPNG, FormatSVG, FormatPDF:
		return RenderStatic(w, fig, format, opt.Static)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func supported(f string) bool {
	switch f {
	case FormatHTML, FormatPNG, FormatSVG, FormatPDF:
		return true
	}
	return false
}
