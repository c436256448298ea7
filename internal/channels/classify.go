// Package channels assigns roles (time, EEG, ECG, contact monitor) to the
// columns of a recording by name.
package channels

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoTimeColumn is returned when no column name starts with "time".
var ErrNoTimeColumn = errors.New("could not find a Time column in the CSV")

// eegLabels is the 10-20 montage reference set, in canonical order.
var eegLabels = []string{
	"Fz", "Cz", "P3", "C3", "F3", "F4", "C4", "P4", "Fp1", "Fp2",
	"T3", "T4", "T5", "T6", "O1", "O2", "F7", "F8", "A1", "A2", "Pz",
}

var eegSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(eegLabels))
	for _, l := range eegLabels {
		m[l] = struct{}{}
	}
	return m
}()

// EEGLabels returns a copy of the recognized EEG channel labels.
func EEGLabels() []string {
	out := make([]string, len(eegLabels))
	copy(out, eegLabels)
	return out
}

// Classification records the role of each relevant column. Empty Time or CM
// means no such column was found.
type Classification struct {
	Time string
	EEG  []string
	ECG  []string
	CM   string
}

// HasTime reports whether a time column was detected.
func (c Classification) HasTime() bool { return c.Time != "" }

// HasCM reports whether a contact-monitor column was detected.
func (c Classification) HasCM() bool { return c.CM != "" }

// Role returns the role assigned to name, or "" when the column is unused.
func (c Classification) Role(name string) string {
	switch {
	case name == c.Time && c.HasTime():
		return "time"
	case name == c.CM && c.HasCM():
		return "cm"
	case contains(c.EEG, name):
		return "eeg"
	case contains(c.ECG, name):
		return "ecg"
	}
	return ""
}

// Summary renders the "Detected columns" diagnostic block.
func (c Classification) Summary() string {
	var b strings.Builder
	b.WriteString("Detected columns:\n")
	b.WriteString(fmt.Sprintf(" Time: %s\n", orNone(c.Time)))
	b.WriteString(fmt.Sprintf(" EEG: %s\n", list(c.EEG)))
	b.WriteString(fmt.Sprintf(" ECG: %s\n", list(c.ECG)))
	b.WriteString(fmt.Sprintf(" CM: %s\n", orNone(c.CM)))
	return b.String()
}

// IsTime matches names starting with "time", ignoring case.
func IsTime(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "time")
}

// IsEEG matches names that are exactly one of the EEG reference labels.
func IsEEG(name string) bool {
	_, ok := eegSet[name]
	return ok
}

// IsECG matches X1/X2-prefixed names and names containing LEOG or REOG, ignoring case.
func IsECG(name string) bool {
	u := strings.ToUpper(name)
	return strings.HasPrefix(u, "X1") || strings.HasPrefix(u, "X2") ||
		strings.Contains(u, "LEOG") || strings.Contains(u, "REOG")
}

// IsCM matches "CM" ignoring case.
func IsCM(name string) bool {
	return strings.ToUpper(name) == "CM"
}

// Classify applies the predicates to names in order. Time and CM take the
// first match; EEG and ECG keep every match in column order.
func Classify(names []string) Classification {
	var c Classification
	for _, n := range names {
		if c.Time == "" && IsTime(n) {
			c.Time = n
		}
	}
	for _, n := range names {
		if IsEEG(n) {
			c.EEG = append(c.EEG, n)
		}
	}
	for _, n := range names {
		if IsECG(n) {
			c.ECG = append(c.ECG, n)
		}
	}
	for _, n := range names {
		if IsCM(n) {
			c.CM = n
			break
		}
	}
	return c
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func list(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("'%s'", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
