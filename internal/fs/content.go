package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadError describes a failure to bring a file into memory.
type LoadError struct {
	Op   string // "open" or "read"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the whole file at path. Regular files are read into a buffer of
// exactly their reported size and a short read is an error. Other files
// (pipes, character devices) are read until EOF.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Op: "open", Path: path, Err: unwrapPathError(err)}
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, &LoadError{Op: "read", Path: path, Err: unwrapPathError(err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}

	if !info.Mode().IsRegular() {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, &LoadError{Op: "read", Path: path, Err: unwrapPathError(err)}
		}
		return data, nil
	}

	data := make([]byte, info.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, &LoadError{Op: "read", Path: path, Err: unwrapPathError(err)}
	}
	return data, nil
}

// unwrapPathError drops the *os.PathError wrapper so the path is not repeated
// in LoadError's message.
func unwrapPathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
