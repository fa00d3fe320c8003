package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dreamscape/testkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	for _, status := range schema.AllCoverageStatuses {
		assert.Equal(t, string(status), GetColorLabel(status, false))
		assert.Contains(t, GetColorLabel(status, true), string(status))
	}
}

func TestStatusEmoji(t *testing.T) {
	assert.Equal(t, "🟢", StatusEmoji(schema.ExcellentStatus))
	assert.Equal(t, "🔴", StatusEmoji(schema.PoorStatus))
	assert.Equal(t, "⚪", StatusEmoji(schema.MissingStatus))
	assert.Equal(t, "✅", SuiteEmoji(schema.HasTests))
	assert.Equal(t, "⚠️", SuiteEmoji(schema.BasicTests))
	assert.Equal(t, "❌", SuiteEmoji(schema.NoTests))
	assert.Equal(t, "✅", PassGlyph(true))
	assert.Equal(t, "❌", PassGlyph(false))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Nil(t, SplitList(""))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "creating an existing directory is a no-op")
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, EnsureDir(filepath.Join(file, "sub")))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}
