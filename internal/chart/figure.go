// Package chart builds the two-panel EEG / ECG figure and renders it as a
// standalone Plotly HTML page or a static image.
package chart

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/KaramelBytes/eegplot-cli/internal/channels"
	"github.com/KaramelBytes/eegplot-cli/internal/dataset"
)

// Panels, top to bottom.
const (
	PanelEEG = 1
	PanelECG = 2
)

const (
	// DefaultHeight is the figure height in logical pixels.
	DefaultHeight = 800

	// ECGDivisor converts microvolts to millivolts.
	ECGDivisor = 1000.0

	cmOpacity      = 0.7
	verticalGap    = 0.03
	unitMicrovolts = "µV"
	unitMillivolts = "mV"
)

var rowHeights = []float64{0.7, 0.3}

// ErrMissingColumn is returned when a classified column is absent from the dataset.
var ErrMissingColumn = errors.New("classified column not in dataset")

// Options controls figure construction.
type Options struct {
	// ConvertECG divides ECG channels by 1000 (µV -> mV). CM is never converted.
	ConvertECG bool
	// Height in logical pixels; 0 means DefaultHeight.
	Height int
	// Palette assigns line colors to traces in order, cycling. Empty keeps
	// the renderer's default colorway.
	Palette Palette
}

// DefaultOptions returns the options matching the command-line defaults.
func DefaultOptions() Options {
	return Options{Height: DefaultHeight}
}

// Figure mirrors the Plotly figure schema.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a Plotly scatter trace.
type Trace struct {
	Type    string  `json:"type"`
	Mode    string  `json:"mode"`
	Name    string  `json:"name"`
	X       XData   `json:"x"`
	Y       Series  `json:"y"`
	XAxis   string  `json:"xaxis"`
	YAxis   string  `json:"yaxis"`
	Opacity float64 `json:"opacity,omitempty"`
	Line    *Line   `json:"line,omitempty"`
}

// Line carries per-trace line styling.
type Line struct {
	Color string `json:"color,omitempty"`
}

// Panel returns the panel the trace is plotted on.
func (t Trace) Panel() int {
	if t.YAxis == "y" {
		return PanelEEG
	}
	if len(t.YAxis) < 2 {
		return 0
	}
	n, err := strconv.Atoi(t.YAxis[1:])
	if err != nil {
		return 0
	}
	return n
}

// Layout holds the subset of Plotly layout attributes the figure uses.
type Layout struct {
	Height      int          `json:"height"`
	HoverMode   string       `json:"hovermode"`
	Legend      Legend       `json:"legend"`
	XAxis       Axis         `json:"xaxis"`
	XAxis2      Axis         `json:"xaxis2"`
	YAxis       Axis         `json:"yaxis"`
	YAxis2      Axis         `json:"yaxis2"`
	Annotations []Annotation `json:"annotations"`
}

// Axis is a cartesian axis.
type Axis struct {
	Anchor         string       `json:"anchor"`
	Domain         [2]float64   `json:"domain"`
	Matches        string       `json:"matches,omitempty"`
	ShowTickLabels *bool        `json:"showticklabels,omitempty"`
	Title          *Title       `json:"title,omitempty"`
	RangeSlider    *RangeSlider `json:"rangeslider,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type RangeSlider struct {
	Visible bool `json:"visible"`
}

type Legend struct {
	Orientation string  `json:"orientation"`
	YAnchor     string  `json:"yanchor"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	X           float64 `json:"x"`
}

// Annotation is used for panel titles.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	XAnchor   string  `json:"xanchor"`
	YAnchor   string  `json:"yanchor"`
	ShowArrow bool    `json:"showarrow"`
	Font      Font    `json:"font"`
}

type Font struct {
	Size int `json:"size"`
}

// Panels reports the number of stacked panels.
func (f *Figure) Panels() int { return len(rowHeights) }

// Traces returns the traces plotted on panel, in order.
func (f *Figure) Traces(panel int) []Trace {
	var out []Trace
	for _, t := range f.Data {
		if t.Panel() == panel {
			out = append(out, t)
		}
	}
	return out
}

// TraceCount counts the traces plotted on panel.
func (f *Figure) TraceCount(panel int) int { return len(f.Traces(panel)) }

// Build lays out EEG channels on the top panel and ECG channels plus the
// contact monitor on the bottom panel, sharing the time axis.
func Build(ds *dataset.Dataset, cls channels.Classification, opt Options) (*Figure, error) {
	if !cls.HasTime() {
		return nil, channels.ErrNoTimeColumn
	}
	tc, ok := ds.Column(cls.Time)
	if !ok {
		return nil, errors.Wrapf(ErrMissingColumn, "time column %q", cls.Time)
	}
	x := timeAxis(tc)
	height := opt.Height
	if height <= 0 {
		height = DefaultHeight
	}

	fig := &Figure{Layout: baseLayout(height)}
	add := func(name string, y []float64, panel int, opacity float64) {
		t := Trace{
			Type:    "scatter",
			Mode:    "lines",
			Name:    name,
			X:       x,
			Y:       y,
			XAxis:   axisRef("x", panel),
			YAxis:   axisRef("y", panel),
			Opacity: opacity,
		}
		if c, ok := opt.Palette.Hex(len(fig.Data)); ok {
			t.Line = &Line{Color: c}
		}
		fig.Data = append(fig.Data, t)
	}

	for _, name := range cls.EEG {
		c, ok := ds.Column(name)
		if !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "EEG column %q", name)
		}
		add(name, c.Values, PanelEEG, 0)
	}

	for _, name := range cls.ECG {
		c, ok := ds.Column(name)
		if !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "ECG column %q", name)
		}
		y := c.Values
		if opt.ConvertECG {
			y = c.Divided(ECGDivisor)
		}
		add(name, y, PanelECG, 0)
	}

	if cls.HasCM() {
		c, ok := ds.Column(cls.CM)
		if !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "CM column %q", cls.CM)
		}
		add("CM", c.Values, PanelECG, cmOpacity)
	}

	if opt.ConvertECG {
		fig.Layout.YAxis2.Title = &Title{Text: unitMillivolts}
	}
	return fig, nil
}

func baseLayout(height int) Layout {
	domains := rowDomains(rowHeights, verticalGap)
	hidden := false
	return Layout{
		Height:    height,
		HoverMode: "x unified",
		Legend: Legend{
			Orientation: "h",
			YAnchor:     "bottom",
			Y:           1.02,
			XAnchor:     "right",
			X:           1,
		},
		// The top axis follows the bottom one, which carries the title and slider.
		XAxis: Axis{
			Anchor:         "y",
			Domain:         [2]float64{0, 1},
			Matches:        "x2",
			ShowTickLabels: &hidden,
		},
		XAxis2: Axis{
			Anchor:      "y2",
			Domain:      [2]float64{0, 1},
			Title:       &Title{Text: "Time (s)"},
			RangeSlider: &RangeSlider{Visible: true},
		},
		YAxis: Axis{
			Anchor: "x",
			Domain: domains[0],
			Title:  &Title{Text: unitMicrovolts},
		},
		YAxis2: Axis{
			Anchor: "x2",
			Domain: domains[1],
			Title:  &Title{Text: unitMicrovolts},
		},
		Annotations: []Annotation{
			panelTitle("EEG channels (µV)", domains[0][1]),
			panelTitle("ECG & CM", domains[1][1]),
		},
	}
}

func panelTitle(text string, top float64) Annotation {
	return Annotation{
		Text:      text,
		X:         0.5,
		Y:         top,
		XRef:      "paper",
		YRef:      "paper",
		XAnchor:   "center",
		YAnchor:   "bottom",
		ShowArrow: false,
		Font:      Font{Size: 16},
	}
}

// rowDomains splits [0, 1] into stacked rows (first row on top) with
// relative heights and a fixed gap between neighbours.
func rowDomains(heights []float64, gap float64) [][2]float64 {
	var total float64
	for _, h := range heights {
		total += h
	}
	avail := 1 - gap*float64(len(heights)-1)
	out := make([][2]float64, len(heights))
	bottom := 0.0
	for i := len(heights) - 1; i >= 0; i-- {
		top := bottom + avail*heights[i]/total
		if i == 0 {
			top = 1
		}
		out[i] = [2]float64{bottom, top}
		bottom = top + gap
	}
	return out
}

func axisRef(prefix string, panel int) string {
	if panel == 1 {
		return prefix
	}
	return prefix + strconv.Itoa(panel)
}

// timeAxis plots numeric time columns as numbers and anything else as the
// raw cell text. Numbers always holds a numeric position per row for
// renderers that cannot place text on a continuous axis.
func timeAxis(c *dataset.Column) XData {
	if c.Numeric() {
		return XData{Numbers: c.Values}
	}
	pos := make([]float64, len(c.Raw))
	if ts, ok := c.Timestamps(); ok {
		var origin float64
		first := true
		for i, t := range ts {
			if t.IsZero() {
				pos[i] = math.NaN()
				continue
			}
			sec := float64(t.UnixNano()) / 1e9
			if first {
				origin, first = sec, false
			}
			pos[i] = sec - origin
		}
	} else {
		for i := range pos {
			pos[i] = float64(i)
		}
	}
	return XData{Labels: c.Raw, Numbers: pos}
}
