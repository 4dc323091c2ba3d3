// Package pair locates C++ header/source file pairs.
package pair

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pairrename/internal/fileinfo"
)

// LocateErrorType represents the type of locate error.
type LocateErrorType string

const (
	// HeaderNotFound indicates no sibling with a header extension exists.
	HeaderNotFound LocateErrorType = "HEADER_NOT_FOUND"
	// SourceNotFound indicates no sibling with a source extension exists.
	SourceNotFound LocateErrorType = "SOURCE_NOT_FOUND"
	// InvalidPair indicates one of the pair's files no longer exists.
	InvalidPair LocateErrorType = "INVALID_PAIR"
)

// LocateError represents an error that occurred while locating a pair.
type LocateError struct {
	Type LocateErrorType
	Path string
	Err  error
}

func (e *LocateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *LocateError) Unwrap() error {
	return e.Err
}

// Pair presents a header file and the source file sharing its base name.
//
//	test.h and test.cpp
//	  HeaderPath      -> /abs/path/to/test.h
//	  SourcePath      -> /abs/path/to/test.cpp
//	  HeaderExtension -> .h
//	  SourceExtension -> .cpp
type Pair struct {
	HeaderPath      string
	SourcePath      string
	HeaderExtension string
	SourceExtension string
}

// Folder returns the folder both files live in.
func (p *Pair) Folder() string {
	return filepath.Dir(p.HeaderPath)
}

// HeaderName returns the header's file name.
func (p *Pair) HeaderName() string {
	return filepath.Base(p.HeaderPath)
}

// BaseName returns the base name the pair shares.
func (p *Pair) BaseName() string {
	return p.HeaderName()[:len(p.HeaderName())-len(p.HeaderExtension)]
}

// Validate returns an InvalidPair error unless both files exist as regular files.
func (p *Pair) Validate() error {
	for _, path := range []string{p.HeaderPath, p.SourcePath} {
		info, err := os.Stat(path)
		if err != nil {
			return &LocateError{Type: InvalidPair, Path: path, Err: err}
		}
		if !info.Mode().IsRegular() {
			return &LocateError{Type: InvalidPair, Path: path}
		}
	}
	return nil
}

// IsNotFound reports whether err means the given file or one of its
// siblings does not exist, whichever step of Locate found that out.
func IsNotFound(err error) bool {
	var le *LocateError
	if errors.As(err, &le) {
		return le.Type == HeaderNotFound || le.Type == SourceNotFound
	}
	return fileinfo.IsNotFound(err)
}

// Locator finds pairs using fixed header and source extension sets.
type Locator struct {
	HeaderExtensions []string
	SourceExtensions []string
}

// DefaultHeaderExtensions are the header extensions used when none are configured.
var DefaultHeaderExtensions = []string{".h"}

// DefaultSourceExtensions are the source extensions used when none are configured.
var DefaultSourceExtensions = []string{".cpp"}

// NewLocator creates a Locator. Empty extension sets fall back to the defaults.
func NewLocator(headerExtensions, sourceExtensions []string) *Locator {
	if len(headerExtensions) == 0 {
		headerExtensions = DefaultHeaderExtensions
	}
	if len(sourceExtensions) == 0 {
		sourceExtensions = DefaultSourceExtensions
	}
	return &Locator{
		HeaderExtensions: headerExtensions,
		SourceExtensions: sourceExtensions,
	}
}

// Locate finds the pair that path belongs to. Path may name either the
// header or the source file. The containing folder is searched without
// recursion; within an extension set the first extension, in configured
// order, that has a matching file wins.
func (l *Locator) Locate(path string) (*Pair, error) {
	info, err := fileinfo.Describe(path)
	if err != nil {
		return nil, err
	}

	names, err := listFiles(info.FolderPath)
	if err != nil {
		return nil, err
	}

	headerExt, ok := findSibling(names, info.BaseName, l.HeaderExtensions)
	if !ok {
		return nil, &LocateError{
			Type: HeaderNotFound,
			Path: filepath.Join(info.FolderPath, info.BaseName),
		}
	}
	sourceExt, ok := findSibling(names, info.BaseName, l.SourceExtensions)
	if !ok {
		return nil, &LocateError{
			Type: SourceNotFound,
			Path: filepath.Join(info.FolderPath, info.BaseName),
		}
	}

	return &Pair{
		HeaderPath:      filepath.Join(info.FolderPath, info.BaseName+headerExt),
		SourcePath:      filepath.Join(info.FolderPath, info.BaseName+sourceExt),
		HeaderExtension: headerExt,
		SourceExtension: sourceExt,
	}, nil
}

// findSibling returns the first extension for which baseName+ext is present in names.
func findSibling(names map[string]bool, baseName string, extensions []string) (string, bool) {
	for _, ext := range extensions {
		if names[baseName+ext] {
			return ext, true
		}
	}
	return "", false
}

// listFiles enumerates regular files directly inside dir.
// Symlinks are followed so a linked header still pairs with its source.
func listFiles(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
		} else if !entry.Type().IsRegular() {
			continue
		}
		names[entry.Name()] = true
	}
	return names, nil
}
