package os

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Exists checks if the file/directory exists.
func (OS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveDirForce removes the directory recursively. Read-only entries are made
// writable and the removal is retried instead of failing outright.
func (OS) RemoveDirForce(path string) error {
	path, err := filterPath(path)
	if err != nil {
		return err
	}
	log.Info().Str("dir", path).Msg("remove directory")
	err = os.RemoveAll(path)
	if err == nil {
		return nil
	}
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return os.Chmod(p, 0755)
		}
		return os.Chmod(p, 0644)
	})
	if walkErr != nil {
		return fmt.Errorf("removeDirForce -> cannot clear permissions: %w; dir=%s", walkErr, path)
	}
	err = os.RemoveAll(path)
	if err != nil {
		return fmt.Errorf("removeDirForce -> cannot remove: %w; dir=%s", err, path)
	}
	return nil
}

func filterPath(path string) (string, error) {
	path, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return "", fmt.Errorf("filterPath -> invalid path: %w; dir=%s", err, path)
	}
	if path == "/" {
		return "", fmt.Errorf("filterPath -> refusing to remove the filesystem root")
	}
	return path, nil
}
