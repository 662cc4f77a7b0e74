// Package fileutil provides file system helpers: atomic writes for files the
// CLI generates and size-limited reads for package databases and catalogs.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// AtomicWriteFile replaces path with data. The content is written to a
// temporary file in the same directory, synced, and renamed over path, so a
// reader sees either the old file or the complete new one.
//
// The parent directory must exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".virtual-lunduke-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}

// AtomicWriteYAML encodes v as YAML with a trailing newline and writes it to
// path with AtomicWriteFile and mode 0644.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.Marshal panics on values it cannot encode, such as funcs.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	if n := len(data); n > 0 && data[n-1] != '\n' {
		data = append(data, '\n')
	}
	return AtomicWriteFile(path, data, 0o644)
}
