package entity

import (
	"errors"
	"fmt"
)

// MaxFileSize is the maximum allowed size of a single upload (10 MB).
const MaxFileSize = 10 << 20

// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
var ErrFileTooLarge = errors.New("file too large")

// FileTooLargeError wraps ErrFileTooLarge with details about the offending file.
func FileTooLargeError(filename string, size int64) error {
	return fmt.Errorf("%w: %q is %d bytes, limit is %d MB", ErrFileTooLarge, filename, size, MaxFileSize>>20)
}

// Upload is a file the user picked in a form. It is never read back from the backend.
type Upload struct {
	Filename string
	Content  []byte
}

func (u Upload) Size() int64 {
	return int64(len(u.Content))
}
