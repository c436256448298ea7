package utils_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/eegplot-cli/internal/utils"
)

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "plot.html")
	require.NoError(t, os.WriteFile(p, []byte("old"), 0o644))

	require.NoError(t, utils.SafeWriteFile(p, []byte("new")))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestSafeWriteFile_MissingDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing", "plot.html")
	err := utils.SafeWriteFile(p, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create temp file")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"rows\": 3\n}", string(b))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, 8, utils.Width("ECG & CM"))
	assert.Equal(t, "Fz  ", utils.PadRight("Fz", 4))
	assert.Equal(t, "X1:LEOG", utils.PadRight("X1:LEOG", 3))
	assert.Equal(t, "X1:…", utils.Truncate("X1:LEOG", 4))
	assert.Equal(t, "Fz", utils.Truncate("Fz", 4))
	assert.Equal(t, "", utils.Truncate("Fz", 0))
}
