package chart

import (
	"html/template"
	"io"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultPlotlyURL is the CDN location of the Plotly runtime referenced by
// generated pages. The runtime is never inlined.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var pageTemplate = template.Must(template.New("page").Parse(`<html>
<head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
</head>
<body>
    <div>
        <script type="text/javascript">window.PlotlyConfig = {MathJaxConfig: 'local'};</script>
        <script charset="utf-8" src="{{.PlotlyURL}}"></script>
        <div id="{{.DivID}}" class="plotly-graph-div" style="height:{{.Height}}px; width:100%;"></div>
        <script type="text/javascript">
            window.PLOTLYENV = window.PLOTLYENV || {};
            if (document.getElementById({{.DivID}})) {
                Plotly.newPlot({{.DivID}}, {{.Data}}, {{.Layout}}, {"responsive": true});
            }
        </script>
    </div>
</body>
</html>
`))

type pageData struct {
	Title     string
	PlotlyURL string
	DivID     string
	Height    int
	Data      template.JS
	Layout    template.JS
}

// HTMLOptions controls page rendering.
type HTMLOptions struct {
	Title string
	// PlotlyURL defaults to DefaultPlotlyURL.
	PlotlyURL string
	// DivID defaults to a random UUID.
	DivID string
}

// RenderHTML writes fig as a standalone page that loads Plotly from a CDN.
func RenderHTML(w io.Writer, fig *Figure, opt HTMLOptions) error {
	if opt.PlotlyURL == "" {
		opt.PlotlyURL = DefaultPlotlyURL
	}
	if opt.DivID == "" {
		opt.DivID = uuid.NewString()
	}
	if opt.Title == "" {
		opt.Title = "EEG / ECG"
	}

	// ConfigStd escapes <, > and & so channel names cannot close the script block.
	data, err := sonic.ConfigStd.Marshal(fig.Data)
	if err != nil {
		return errors.Wrap(err, "unable to encode traces")
	}
	layout, err := sonic.ConfigStd.Marshal(fig.Layout)
	if err != nil {
		return errors.Wrap(err, "unable to encode layout")
	}

	err = pageTemplate.Execute(w, pageData{
		Title:     opt.Title,
		PlotlyURL: opt.PlotlyURL,
		DivID:     opt.DivID,
		Height:    fig.Layout.Height,
		Data:      template.JS(data), //nolint:gosec
		Layout:    template.JS(layout), //nolint:gosec
	})
	if err != nil {
		return errors.Wrap(err, "unable to render page")
	}
	return nil
}
