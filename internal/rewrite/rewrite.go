// Package rewrite performs line-by-line regular expression substitution on files.
package rewrite

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// Result summarizes a rewrite.
type Result struct {
	Path         string
	LinesScanned int
	LinesMatched int
	Replacements int
}

// File replaces every match of pattern with replacement on every line of the
// file at path and writes the result back in place. The replacement is
// literal; "$1" is not expanded. Line order, line count, line endings and
// file permissions are preserved.
//
// Output is streamed into a temporary file in the same folder which then
// replaces the original. If the final rename fails the original is left
// untouched and the temporary file is removed.
func File(path string, pattern *regexp.Regexp, replacement string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".rewrite-*")
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	result, err := Stream(in, tmp, pattern, replacement)
	in.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	result.Path = path

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true

	return result, nil
}

// Stream copies r to w line by line, substituting pattern with replacement on each line.
func Stream(r io.Reader, w io.Writer, pattern *regexp.Regexp, replacement string) (*Result, error) {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	result := &Result{}

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			result.LinesScanned++
			if n := len(pattern.FindAllStringIndex(line, -1)); n > 0 {
				line = pattern.ReplaceAllLiteralString(line, replacement)
				result.LinesMatched++
				result.Replacements += n
			}
			if _, werr := writer.WriteString(line); werr != nil {
				return nil, werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if err := writer.Flush(); err != nil {
		return nil, err
	}
	return result, nil
}
