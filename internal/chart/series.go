package chart

import (
	"math"
	"strconv"

	"github.com/bytedance/sonic"
)

// Series is a numeric column. NaN and infinities encode as JSON null so
// Plotly draws a gap.
type Series []float64

func (s Series) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 2+len(s)*8)
	b = append(b, '[')
	for i, v := range s {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	return append(b, ']'), nil
}

// XData holds the shared horizontal axis. Labels, when set, are what gets
// plotted; Numbers always carries a numeric position per row.
type XData struct {
	Labels  []string
	Numbers Series
}

// Len returns the number of rows.
func (x XData) Len() int {
	if x.Labels != nil {
		return len(x.Labels)
	}
	return len(x.Numbers)
}

func (x XData) MarshalJSON() ([]byte, error) {
	if x.Labels != nil {
		return sonic.ConfigStd.Marshal(x.Labels)
	}
	return x.Numbers.MarshalJSON()
}
