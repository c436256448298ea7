package chart

import (
	"image/color"
	"io"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultStaticWidth is the image width in logical pixels.
const DefaultStaticWidth = 1200

// pixelsPerInch maps logical pixels onto vg lengths.
const pixelsPerInch = 96

// StaticOptions controls image rendering.
type StaticOptions struct {
	// Width in logical pixels; 0 means DefaultStaticWidth.
	Width int
	// Palette overrides the default line colors.
	Palette Palette
}

// RenderStatic draws fig as an image in the given format (png, svg or pdf),
// keeping the panel split, titles, axis labels and traces of the
// interactive page.
func RenderStatic(w io.Writer, fig *Figure, format string, opt StaticOptions) error {
	width := opt.Width
	if width <= 0 {
		width = DefaultStaticWidth
	}
	wl := vg.Length(width) * vg.Inch / pixelsPerInch
	hl := vg.Length(fig.Layout.Height) * vg.Inch / pixelsPerInch

	cw, err := draw.NewFormattedCanvas(wl, hl, format)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s canvas", format)
	}
	dc := draw.New(cw)

	panels := []struct {
		panel  int
		title  string
		yaxis  Axis
		xTitle *Title
	}{
		{PanelEEG, annotationText(fig, 0), fig.Layout.YAxis, fig.Layout.XAxis.Title},
		{PanelECG, annotationText(fig, 1), fig.Layout.YAxis2, fig.Layout.XAxis2.Title},
	}

	traceIdx := 0
	for _, pn := range panels {
		p := plot.New()
		p.Title.Text = pn.title
		if pn.yaxis.Title != nil {
			p.Y.Label.Text = pn.yaxis.Title.Text
		}
		if pn.xTitle != nil {
			p.X.Label.Text = pn.xTitle.Text
		}
		p.Legend.Top = true

		for _, t := range fig.Data {
			if t.Panel() != pn.panel {
				continue
			}
			idx := traceIdx
			traceIdx++
			pts := points(t)
			if len(pts) == 0 {
				continue
			}
			l, err := plotter.NewLine(pts)
			if err != nil {
				return errors.Wrapf(err, "unable to plot trace %s", t.Name)
			}
			l.LineStyle.Width = vg.Points(1)
			l.LineStyle.Color = traceColor(opt.Palette, idx, t.Opacity)
			p.Add(l)
			p.Legend.Add(t.Name, l)
		}

		lo, hi := pn.yaxis.Domain[0], pn.yaxis.Domain[1]
		c := draw.Crop(dc, 0, 0, hl*vg.Length(lo), -hl*vg.Length(1-hi))
		p.Draw(c)
	}

	if _, err := cw.WriteTo(w); err != nil {
		return errors.Wrapf(err, "unable to write %s", format)
	}
	return nil
}

func annotationText(fig *Figure, i int) string {
	if i < len(fig.Layout.Annotations) {
		return fig.Layout.Annotations[i].Text
	}
	return ""
}

// points pairs the numeric time positions with y values, dropping rows
// where either side is missing.
func points(t Trace) plotter.XYs {
	n := len(t.Y)
	if len(t.X.Numbers) < n {
		n = len(t.X.Numbers)
	}
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		x, y := t.X.Numbers[i], t.Y[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

func traceColor(p Palette, i int, opacity float64) color.Color {
	if opacity == 0 {
		opacity = 1
	}
	if c, ok := p.NRGBA(i, opacity); ok {
		return c
	}
	r, g, b, _ := plotutil.Color(i).RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha(opacity)}
}
