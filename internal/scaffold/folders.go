package scaffold

import (
	"os"
	"path/filepath"

	"github.com/vango-dev/create-webapp/internal/errors"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// EnsureFolders creates every folder under root, including missing parents.
// Folders that already exist are left as they are.
func EnsureFolders(root string, folders []string) error {
	for _, folder := range folders {
		if err := ensureDir(root, folder); err != nil {
			return err
		}
	}
	return nil
}

// ensureDir creates root/rel and reports failures against rel.
func ensureDir(root, rel string) error {
	dir := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.New("E110").WithPath(dir).Wrap(err)
	}
	return nil
}
