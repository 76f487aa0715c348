package inputprocessor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Raw(t *testing.T) {
	res, err := New(nil).Process(context.Background(), "defi yield is up")
	require.NoError(t, err)
	assert.Equal(t, Result{Text: "defi yield is up", Source: "raw"}, res)
}

func TestProcess_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.txt")
	require.NoError(t, os.WriteFile(path, []byte("rollup — news"), 0o644))

	res, err := New(nil).Process(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "file", res.Source)
	assert.Equal(t, "rollup - news", res.Text)
}

func TestProcess_DirectoryAndBinary(t *testing.T) {
	dir := t.TempDir()
	_, err := New(nil).Process(context.Background(), dir)
	assert.ErrorContains(t, err, "is a directory")

	bin := filepath.Join(dir, "x.bin")
	require.NoError(t, os.WriteFile(bin, []byte{0, 1, 2}, 0o644))
	_, err = New(nil).Process(context.Background(), bin)
	assert.ErrorContains(t, err, "looks binary")
}

func TestProcess_Stdin(t *testing.T) {
	p := &defaultProcessor{client: http.DefaultClient, stdin: strings.NewReader("from a pipe")}
	res, err := p.Process(context.Background(), "-")
	require.NoError(t, err)
	assert.Equal(t, Result{Text: "from a pipe", Source: "stdin"}, res)
}

func TestProcess_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("remote article"))
	}))
	defer srv.Close()

	p := New(srv.Client())
	res, err := p.Process(context.Background(), srv.URL+"/post")
	require.NoError(t, err)
	assert.Equal(t, Result{Text: "remote article", Source: "url"}, res)

	_, err = p.Process(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "status code 404")
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("first\n\n  second  \n\t\nthird"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, lines)
}
