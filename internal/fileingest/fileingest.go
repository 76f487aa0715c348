package fileingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultExtensions are the text formats picked up by directory analysis.
var DefaultExtensions = []string{".txt", ".md"}

// FileMeta holds metadata about a discovered file.
type FileMeta struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

/*
Discover recursively finds regular files under rootDir whose extension
(case-insensitive) is one of exts. Results are sorted by path so batch
output is stable. Walking stops when ctx is cancelled.
*/
func Discover(ctx context.Context, rootDir string, exts []string) ([]FileMeta, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []FileMeta
	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !hasExt(d.Name(), exts) {
			return nil
		}
		meta, metaErr := ExtractFileMeta(path)
		if metaErr != nil {
			// Skip files we can't stat, but continue
			return nil
		}
		files = append(files, meta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// ExtractFileMeta extracts metadata from a given file path.
func ExtractFileMeta(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, err
	}
	return FileMeta{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
