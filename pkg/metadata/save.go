package metadata

import (
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/fullmeta/pkg/constants"
	"github.com/agentstation/fullmeta/pkg/errors"
)

// Load reads and parses the document at path. A missing file yields an
// IOError wrapping fs.ErrNotExist.
func Load(fsys afero.Fs, path, namespace string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	doc, err := Parse(data, namespace)
	if err != nil {
		if parseErr, ok := err.(*errors.ParseError); ok {
			parseErr.File = path
		}
		return nil, err
	}
	return doc, nil
}

// Save writes the canonical form of d to path. The content is written to
// a temporary sibling first and renamed over path.
func Save(fsys afero.Fs, path string, d *Document) error {
	data, err := d.Bytes()
	if err != nil {
		return errors.WrapIO("serialize", path, err)
	}
	return writeFile(fsys, path, data)
}

// Copy copies src to dst byte for byte, creating dst's directory.
func Copy(fsys afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return errors.WrapIO("read", src, err)
	}
	return writeFile(fsys, dst, data)
}

// Exists reports whether path names an existing regular file.
func Exists(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.WrapIO("stat", path, err)
	}
	return !info.IsDir(), nil
}

func writeFile(fsys afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.WrapIO("write", path, err)
	}
	if err := fsys.Chmod(tmpName, constants.FilePermissions); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.WrapIO("chmod", path, err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
