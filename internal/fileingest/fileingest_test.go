package fileingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	for name, body := range map[string]string{
		"b.md":           "markdown",
		"a.TXT":          "upper ext",
		"nested/c.txt":   "nested",
		"skip.json":      "{}",
		"nested/img.png": "png",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(body), 0o644))
	}

	files, err := Discover(context.Background(), root, nil)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.TXT", "b.md", "c.txt"}, names)
	assert.Equal(t, int64(len("markdown")), files[1].Size)
}

func TestDiscover_CustomExtensionsAndErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.json"), []byte("{}"), 0o644))

	files, err := Discover(context.Background(), root, []string{".json"})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = Discover(context.Background(), filepath.Join(root, "missing"), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Discover(ctx, root, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
