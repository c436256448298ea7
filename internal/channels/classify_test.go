package channels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTime(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Time", true},
		{"TIME", true},
		{"time_s", true},
		{"Timestamp", true},
		{"MyTime", false},
		{"t", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTime(tt.name))
		})
	}
}

func TestIsEEG_CaseSensitive(t *testing.T) {
	assert.True(t, IsEEG("Fz"))
	assert.True(t, IsEEG("Fp2"))
	assert.False(t, IsEEG("fz"))
	assert.False(t, IsEEG("FZ"))
	assert.False(t, IsEEG("Fz "))
	for _, l := range EEGLabels() {
		assert.True(t, IsEEG(l), l)
	}
	assert.Len(t, EEGLabels(), 21)
}

func TestEEGLabels_ReturnsCopy(t *testing.T) {
	l := EEGLabels()
	l[0] = "changed"
	assert.Equal(t, "Fz", EEGLabels()[0])
	assert.False(t, IsEEG("changed"))
}

func TestIsECG(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"X1:LEOG", true},
		{"X2:REOG", true},
		{"x1", true},
		{"leog_raw", true},
		{"chan_reog", true},
		{"X3", false},
		{"ECG", false},
		{"Fz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsECG(tt.name))
		})
	}
}

func TestIsCM(t *testing.T) {
	assert.True(t, IsCM("CM"))
	assert.True(t, IsCM("cm"))
	assert.True(t, IsCM("Cm"))
	assert.False(t, IsCM("CM1"))
	assert.False(t, IsCM(" CM"))
}

func TestClassify(t *testing.T) {
	names := []string{"Trigger", "Time", "time_2", "Fz", "fz", "Cz", "X1:LEOG", "X2:REOG", "leog_raw", "Cm", "CM"}
	got := Classify(names)

	assert.Equal(t, "Time", got.Time)
	assert.Equal(t, []string{"Fz", "Cz"}, got.EEG)
	assert.Equal(t, []string{"X1:LEOG", "X2:REOG", "leog_raw"}, got.ECG)
	assert.Equal(t, "Cm", got.CM)
	assert.True(t, got.HasTime())
	assert.True(t, got.HasCM())
}

func TestClassify_ColumnMatchingTwoECGRulesCountsOnce(t *testing.T) {
	got := Classify([]string{"X1:LEOG:REOG"})
	assert.Equal(t, []string{"X1:LEOG:REOG"}, got.ECG)
}

func TestClassify_Deterministic(t *testing.T) {
	names := []string{"time", "O1", "O2", "X2", "cm"}
	assert.Equal(t, Classify(names), Classify(names))
}

func TestClassify_NothingFound(t *testing.T) {
	got := Classify([]string{"MyTime", "foo"})
	assert.False(t, got.HasTime())
	assert.False(t, got.HasCM())
	assert.Empty(t, got.EEG)
	assert.Empty(t, got.ECG)
}

func TestClassification_Role(t *testing.T) {
	c := Classify([]string{"Time", "Fz", "X1:LEOG", "CM", "Extra"})
	assert.Equal(t, "time", c.Role("Time"))
	assert.Equal(t, "eeg", c.Role("Fz"))
	assert.Equal(t, "ecg", c.Role("X1:LEOG"))
	assert.Equal(t, "cm", c.Role("CM"))
	assert.Equal(t, "", c.Role("Extra"))
	assert.Equal(t, "", Classification{}.Role(""))
}

func TestClassification_Summary(t *testing.T) {
	c := Classify([]string{"Time", "Fz", "Cz", "X1:LEOG"})
	want := "Detected columns:\n" +
		" Time: Time\n" +
		" EEG: ['Fz', 'Cz']\n" +
		" ECG: ['X1:LEOG']\n" +
		" CM: None\n"
	assert.Equal(t, want, c.Summary())
}
