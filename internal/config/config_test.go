package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "eeg_ecg_plot.html", c.Output)
	assert.False(t, c.ConvertECG)
	assert.Equal(t, DefaultCDN, c.PlotlyCDNURL)
	assert.Equal(t, 800, c.ChartHeight)
	assert.Equal(t, 1200, c.StaticWidth)
	assert.Empty(t, c.Palette)
}

func TestLoad_FileAndEnv(t *testing.T) {
	home := isolateHome(t)
	p := filepath.Join(home, "eeg.yaml")
	content := "output: night.html\nconvert_ecg: true\nchart_height: 640\npalette:\n  - \"#000000\"\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	t.Setenv("EEGPLOT_CHART_HEIGHT", "900")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "night.html", c.Output)
	assert.True(t, c.ConvertECG)
	assert.Equal(t, 900, c.ChartHeight)
	assert.Equal(t, []string{"#000000"}, c.Palette)
}

func TestLoad_MissingExplicitFileUsesDefaults(t *testing.T) {
	home := isolateHome(t)
	c, err := Load(filepath.Join(home, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, c.Output)
}

func TestLoad_BrokenFile(t *testing.T) {
	home := isolateHome(t)
	p := filepath.Join(home, "broken.yaml")
	require.NoError(t, os.WriteFile(p, []byte("output: [unclosed\n"), 0o644))
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read config")
}

func TestLoad_ConvertECGFromEnv(t *testing.T) {
	isolateHome(t)
	t.Setenv("EEGPLOT_CONVERT_ECG", "true")
	c, err := Load("")
	require.NoError(t, err)
	assert.True(t, c.ConvertECG)
}

func TestSaveRoundTrip(t *testing.T) {
	home := isolateHome(t)
	c := Default()
	c.ConvertECG = true
	c.Palette = []string{"#1f77b4"}
	require.NoError(t, Save(c, ""))

	p, err := Path("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".eegplot", "config.yaml"), p)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
