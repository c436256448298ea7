package dataset

import (
	"math"
	"time"
)

// Stats summarizes the numeric cells of a column.
type Stats struct {
	Count   int
	Missing int
	Min     float64
	Max     float64
	Mean    float64
	Std     float64
}

// Stats computes count, range, mean and sample standard deviation over the
// numeric cells. Min and Max are NaN when no cell is numeric.
func (c *Column) Stats() Stats {
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	var m2 float64
	for _, x := range c.Values {
		if math.IsNaN(x) {
			s.Missing++
			continue
		}
		// Welford update
		s.Count++
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
		delta := x - s.Mean
		s.Mean += delta / float64(s.Count)
		m2 += delta * (x - s.Mean)
	}
	if s.Count == 0 {
		s.Min, s.Max, s.Mean = math.NaN(), math.NaN(), math.NaN()
		return s
	}
	if s.Count > 1 {
		s.Std = math.Sqrt(m2 / float64(s.Count-1))
	}
	return s
}

var timeLayouts = []string{
	time.RFC3339Nano, time.RFC3339, "2006-01-02", "2006/01/02",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02 15:04:05.999999999",
	"1/2/2006 15:04", "1/2/2006 15:04:05", "15:04:05", "15:04:05.999999999",
}

// Timestamps parses every non-empty cell as a date/time. ok is false when
// any non-empty cell fails to parse or the column has no non-empty cell.
// Empty cells yield the zero time.
func (c *Column) Timestamps() (ts []time.Time, ok bool) {
	ts = make([]time.Time, len(c.Raw))
	seen := false
	for i, raw := range c.Raw {
		if raw == "" {
			continue
		}
		t, parsed := parseTimeMaybe(raw)
		if !parsed {
			return nil, false
		}
		ts[i] = t
		seen = true
	}
	return ts, seen
}

func parseTimeMaybe(s string) (time.Time, bool) {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
