package fileutil

import (
	"io"
	"io/fs"

	"github.com/cockroachdb/errors"
)

// MaxFileSize is the default read limit (1MB), enough for any catalog file.
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFileWithLimit reads name from fsys, failing with ErrFileTooLarge when the
// file is bigger than limit bytes. A limit <= 0 means MaxFileSize.
func ReadFileWithLimit(fsys fs.FS, name string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast when the size is already known to be too large
	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit %d", name, info.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s exceeds limit %d", name, limit)
	}

	return data, nil
}
