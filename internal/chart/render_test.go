package chart

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	ds, cls := load(t, recording)
	fig, err := Build(ds, cls, Options{ConvertECG: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, fig, HTMLOptions{DivID: "plot-1", Title: "rec.csv"}))
	out := buf.String()

	assert.Contains(t, out, `<script charset="utf-8" src="`+DefaultPlotlyURL+`"></script>`)
	assert.Contains(t, out, `<div id="plot-1" class="plotly-graph-div" style="height:800px; width:100%;"></div>`)
	assert.Contains(t, out, `Plotly.newPlot("plot-1", `)
	assert.Contains(t, out, `"hovermode":"x unified"`)
	assert.Contains(t, out, `"name":"X1:LEOG"`)
	assert.Contains(t, out, `"y":[1.5,-0.25,3]`)
	assert.Contains(t, out, "<title>rec.csv</title>")
	// runtime is referenced, not inlined
	assert.NotContains(t, out, "plotly.js v")
	assert.Less(t, len(out), 64*1024)
}

func TestRenderHTML_CustomCDNAndRandomID(t *testing.T) {
	ds, cls := load(t, recording)
	fig, err := Build(ds, cls, Options{})
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, RenderHTML(&a, fig, HTMLOptions{PlotlyURL: "https://example.org/plotly.min.js"}))
	require.NoError(t, RenderHTML(&b, fig, HTMLOptions{}))

	assert.Contains(t, a.String(), `src="https://example.org/plotly.min.js"`)
	assert.NotEqual(t, a.String(), b.String())
}

func TestRenderHTML_EscapesChannelNames(t *testing.T) {
	ds, cls := load(t, "Time,X1</script><b>\n0,1\n")
	fig, err := Build(ds, cls, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, fig, HTMLOptions{DivID: "d"}))
	assert.NotContains(t, buf.String(), "X1</script>")
	assert.Equal(t, 3, strings.Count(buf.String(), "</script>"))
}

func TestSeries_MarshalJSONNullsMissing(t *testing.T) {
	b, err := sonic.ConfigStd.Marshal(Series{1, math.NaN(), math.Inf(1), -2.5})
	require.NoError(t, err)
	assert.Equal(t, "[1,null,null,-2.5]", string(b))
}

func TestXData_MarshalJSON(t *testing.T) {
	b, err := sonic.ConfigStd.Marshal(XData{Labels: []string{"a", "b"}, Numbers: Series{0, 1}})
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(b))

	b, err = sonic.ConfigStd.Marshal(XData{Numbers: Series{0, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, `[0,0.5]`, string(b))
}

func TestRenderStatic(t *testing.T) {
	ds, cls := load(t, recording)
	fig, err := Build(ds, cls, Options{})
	require.NoError(t, err)

	var png bytes.Buffer
	require.NoError(t, RenderStatic(&png, fig, FormatPNG, StaticOptions{Width: 400}))
	require.Greater(t, png.Len(), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), png.Bytes()[:8])

	var svg bytes.Buffer
	require.NoError(t, Render(&svg, fig, FormatSVG, RenderOptions{}))
	assert.Contains(t, svg.String(), "<svg")
}

func TestRenderStatic_EmptyPanels(t *testing.T) {
	ds, cls := load(t, "Time,Other\n0,1\n1,2\n")
	fig, err := Build(ds, cls, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, RenderStatic(&buf, fig, FormatSVG, StaticOptions{}))
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		explicit string
		want     string
		wantErr  bool
	}{
		{explicit: "", want: FormatHTML},
		{explicit: "html", want: FormatHTML},
		{explicit: "PNG", want: FormatPNG},
		{explicit: " svg ", want: FormatSVG},
		{explicit: "pdf", want: FormatPDF},
		{explicit: "gif", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.explicit, func(t *testing.T) {
			got, err := FormatFor(tt.explicit)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, &Figure{}, "gif", RenderOptions{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#1f77b4", "rgb(255,127,14)", "rgba(44,160,44,0.5)"})
	require.NoError(t, err)
	require.Len(t, p, 3)

	c, ok := p.NRGBA(2, 1)
	require.True(t, ok)
	assert.Equal(t, uint8(44), c.R)
	assert.Equal(t, uint8(160), c.G)
	assert.Equal(t, uint8(128), c.A)

	h, ok := p.Hex(3)
	require.True(t, ok)
	assert.Equal(t, "#1f77b4", h)

	_, err = ParsePalette([]string{"not-a-color"})
	assert.Error(t, err)

	_, ok = Palette(nil).Hex(0)
	assert.False(t, ok)
}
