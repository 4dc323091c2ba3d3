// Package fileinfo resolves a path into the parts the renamer works with.
package fileinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrorType represents the type of descriptor error.
type ErrorType string

const (
	// NotFound indicates the path does not reference an existing file.
	NotFound ErrorType = "NOT_FOUND"
	// NotRegular indicates the path exists but is not a regular file.
	NotRegular ErrorType = "NOT_REGULAR"
)

// Error represents a failure to describe a path.
type Error struct {
	Type ErrorType
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Descriptor gives information about a file.
//
//	abs/or/rel/path/to/test.h
//	  AbsolutePath -> /abs/path/to/test.h
//	  FolderPath   -> /abs/path/to
//	  FileName     -> test.h
//	  BaseName     -> test
//	  Extension    -> .h
type Descriptor struct {
	AbsolutePath string
	FolderPath   string
	FileName     string
	BaseName     string
	Extension    string
}

// Describe resolves path into a Descriptor.
// It fails with NotFound when path does not reference an existing regular file.
func Describe(path string) (*Descriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{Type: NotFound, Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &Error{Type: NotRegular, Path: path}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Type: NotFound, Path: path, Err: err}
	}

	name := filepath.Base(abs)
	ext := Extension(name)
	return &Descriptor{
		AbsolutePath: abs,
		FolderPath:   filepath.Dir(abs),
		FileName:     name,
		BaseName:     strings.TrimSuffix(name, ext),
		Extension:    ext,
	}, nil
}

// Extension returns the extension of name including the dot.
// Leading dots are not treated as an extension separator, so ".profile"
// has no extension while ".BACKUP.h" has ".h".
func Extension(name string) string {
	return filepath.Ext(strings.TrimLeft(name, "."))
}

// IsNotFound reports whether err is a descriptor NotFound error.
func IsNotFound(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Type == NotFound
}
