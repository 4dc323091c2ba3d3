package fileinfo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.h")
	if err := os.WriteFile(path, []byte("#ifndef TEST_H_\n"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	d, err := Describe(path)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	absDir, _ := filepath.Abs(dir)
	if d.AbsolutePath != filepath.Join(absDir, "test.h") {
		t.Errorf("AbsolutePath = %q", d.AbsolutePath)
	}
	if d.FolderPath != absDir {
		t.Errorf("FolderPath = %q, want %q", d.FolderPath, absDir)
	}
	if d.FileName != "test.h" {
		t.Errorf("FileName = %q, want test.h", d.FileName)
	}
	if d.BaseName != "test" {
		t.Errorf("BaseName = %q, want test", d.BaseName)
	}
	if d.Extension != ".h" {
		t.Errorf("Extension = %q, want .h", d.Extension)
	}
}

func TestDescribeRelativePath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "thing.cpp"), nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	d, err := Describe("./thing.cpp")
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if !filepath.IsAbs(d.AbsolutePath) {
		t.Errorf("AbsolutePath %q is not absolute", d.AbsolutePath)
	}
	if d.BaseName != "thing" || d.Extension != ".cpp" {
		t.Errorf("got base %q ext %q", d.BaseName, d.Extension)
	}
}

func TestDescribeMissingFile(t *testing.T) {
	_, err := Describe(filepath.Join(t.TempDir(), "missing.h"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestDescribeDirectory(t *testing.T) {
	_, err := Describe(t.TempDir())
	var de *Error
	if !errors.As(err, &de) || de.Type != NotRegular {
		t.Errorf("expected NotRegular error, got %v", err)
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"test.h", ".h"},
		{"test.hpp", ".hpp"},
		{"archive.tar.gz", ".gz"},
		{"Makefile", ""},
		{".profile", ""},
		{".BACKUP.h", ".h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extension(tt.name); got != tt.want {
				t.Errorf("Extension(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
