package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFileContent(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("“DeFi” — it’s up…")...)

	out, err := CleanFileContent(in, "test")
	require.NoError(t, err)
	assert.Equal(t, `"DeFi" - it's up...`, out)
}

func TestCleanFileContent_InvalidUTF8(t *testing.T) {
	out, err := CleanFileContent([]byte{'o', 'k', 0xff}, "test")
	require.NoError(t, err)
	assert.Equal(t, "ok�", out)
}

func TestIsLikelyBinary(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "a.txt")
	bin := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(text, []byte("plain text"), 0o644))
	require.NoError(t, os.WriteFile(bin, []byte{1, 0, 2}, 0o644))

	isBin, err := IsLikelyBinary(text)
	require.NoError(t, err)
	assert.False(t, isBin)

	isBin, err = IsLikelyBinary(bin)
	require.NoError(t, err)
	assert.True(t, isBin)

	_, err = IsLikelyBinary(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
