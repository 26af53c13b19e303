package templates

import (
	"context"
	"embed"
	"io/fs"
	"os"
)

//go:embed all:assets
var embeddedAssets embed.FS

// AssetSource provides bundled template files by manifest path.
type AssetSource interface {
	// ReadAsset returns the raw bytes of the asset at the slash-separated path.
	// A missing asset must yield an error matching fs.ErrNotExist.
	ReadAsset(ctx context.Context, name string) ([]byte, error)

	// String names the source for diagnostics.
	String() string
}

// FSSource serves assets from an fs.FS.
type FSSource struct {
	fsys fs.FS
	name string
}

// NewFSSource creates an asset source reading from fsys.
func NewFSSource(fsys fs.FS, name string) *FSSource {
	return &FSSource{fsys: fsys, name: name}
}

// DirSource serves assets from a directory on disk.
func DirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), "dir:"+dir)
}

// Embedded returns the asset source compiled into the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// "assets" is a valid, embedded path
		panic(err)
	}
	return NewFSSource(sub, "embedded")
}

// ReadAsset implements AssetSource.
func (s *FSSource) ReadAsset(_ context.Context, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(s.fsys, name)
}

// String implements AssetSource.
func (s *FSSource) String() string {
	return s.name
}

// EmbeddedNames returns the paths of all embedded assets.
func EmbeddedNames() ([]string, error) {
	var names []string
	err := fs.WalkDir(Embedded().fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, p)
		}
		return nil
	})
	return names, err
}
