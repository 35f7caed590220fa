// Package discovery enumerates the changed metadata files of each
// configured type.
package discovery

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/agentstation/fullmeta/pkg/errors"
)

// Pair names a changed file and the full file it is merged into.
type Pair struct {
	Type    string // metadata type, also the subdirectory under both roots
	Rel     string // slash-separated path relative to the type directory
	Changed string
	Full    string
}

// Finder locates changed files under a changed root.
type Finder struct {
	fs         afero.Fs
	changedDir string
	fullDir    string
}

// New creates a Finder over fsys.
func New(fsys afero.Fs, changedDir, fullDir string) *Finder {
	return &Finder{fs: fsys, changedDir: changedDir, fullDir: fullDir}
}

// Find returns the pairs for every file of metadataType matching glob,
// sorted by relative path. A missing type directory yields no pairs.
func (f *Finder) Find(metadataType, glob string) ([]Pair, error) {
	if !doublestar.ValidatePattern(glob) {
		return nil, errors.NewValidationError("fileGlob", glob, "invalid glob pattern")
	}

	dir := filepath.Join(f.changedDir, metadataType)
	info, err := f.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.WrapIO("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewIOError("stat", dir, errors.New("not a directory"))
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(f.fs, dir))
	matches, err := doublestar.Glob(fsys, glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.WrapIO("glob", path.Join(filepath.ToSlash(dir), glob), err)
	}
	sort.Strings(matches)

	pairs := make([]Pair, 0, len(matches))
	for _, rel := range matches {
		native := filepath.FromSlash(rel)
		pairs = append(pairs, Pair{
			Type:    metadataType,
			Rel:     rel,
			Changed: filepath.Join(f.changedDir, metadataType, native),
			Full:    filepath.Join(f.fullDir, metadataType, native),
		})
	}
	return pairs, nil
}
