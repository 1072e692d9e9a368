// Package internal provides helpers for tests working with tile directory trees.
package internal

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree creates files under rootDir. Keys of files are slash-separated
// paths relative to rootDir.
func WriteTree(t *testing.T, rootDir string, files map[string][]byte) {
	t.Helper()

	for name, data := range files {
		filePath := filepath.Join(rootDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, data, 0644))
	}
}

// ReadTree returns all regular files under rootDir keyed by their
// slash-separated path relative to rootDir.
func ReadTree(t *testing.T, rootDir string) map[string][]byte {
	t.Helper()

	files := make(map[string][]byte)
	err := filepath.WalkDir(rootDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name, err := filepath.Rel(rootDir, filePath)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(name)] = data
		return nil
	})
	require.NoError(t, err)

	return files
}
