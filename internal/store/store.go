// Package store keeps scene files on a hackpadfs filesystem.
package store

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/pkg/errors"

	"cubetea/internal/scene"
	"cubetea/internal/scenefile"
)

const (
	dirPerm  hackpadfs.FileMode = 0755
	filePerm hackpadfs.FileMode = 0644
	tmpExt                      = ".tmp"
)

// Store loads and saves scenes. Saves go to a sibling temp file first and are renamed into
// place, so a crash mid-write leaves the previous file intact.
type Store struct {
	fs      hackpadfs.FS
	resolve func(string) (string, error)
}

// NewOS returns a store on the host filesystem. Paths are OS paths, relative to the working
// directory unless absolute.
func NewOS() *Store {
	fs := osfs.NewFS()
	return &Store{fs: fs, resolve: func(p string) (string, error) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		return fs.FromOSPath(abs)
	}}
}

// NewFS returns a store on fsys. Paths are slash-separated and rooted at fsys.
func NewFS(fsys hackpadfs.FS) *Store {
	return &Store{fs: fsys, resolve: func(p string) (string, error) {
		p = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(p)), "/")
		if p == "" {
			p = "."
		}
		return p, nil
	}}
}

// Load reads and decodes the scene at p.
func (s *Store) Load(p string) (*scene.Scene, error) {
	name, err := s.resolve(p)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", p)
	}
	data, err := hackpadfs.ReadFile(s.fs, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", p)
	}
	sc, err := scenefile.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", p)
	}
	return sc, nil
}

// Save encodes sc and writes it to p, creating parent directories.
func (s *Store) Save(p string, sc *scene.Scene) error {
	data, err := scenefile.Encode(sc)
	if err != nil {
		return err
	}
	name, err := s.resolve(p)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", p)
	}
	if dir := path.Dir(name); dir != "." {
		if err := hackpadfs.MkdirAll(s.fs, dir, dirPerm); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	tmp := name + tmpExt
	if err := hackpadfs.WriteFullFile(s.fs, tmp, data, filePerm); err != nil {
		return errors.Wrapf(err, "write %s", p)
	}
	if err := hackpadfs.Rename(s.fs, tmp, name); err != nil {
		// Some filesystems refuse to rename over an existing file.
		if rmErr := hackpadfs.Remove(s.fs, name); rmErr != nil {
			_ = hackpadfs.Remove(s.fs, tmp)
			return errors.Wrapf(err, "replace %s", p)
		}
		if err := hackpadfs.Rename(s.fs, tmp, name); err != nil {
			return errors.Wrapf(err, "replace %s", p)
		}
	}
	return nil
}

// Exists reports whether a file is present at p.
func (s *Store) Exists(p string) bool {
	name, err := s.resolve(p)
	if err != nil {
		return false
	}
	info, err := hackpadfs.Stat(s.fs, name)
	return err == nil && !info.IsDir()
}
