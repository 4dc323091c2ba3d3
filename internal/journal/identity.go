package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// CaptureIdentity computes the SHA-256 hash, size and modification time of the file at path.
func CaptureIdentity(path string) (*FileIdentity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	hash, err := computeSHA256(path)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}

	return &FileIdentity{
		ContentHash: hash,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

// Matches reports whether the file at path still has the captured content.
// A missing file never matches.
func (id *FileIdentity) Matches(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() != id.Size {
		return false, nil
	}

	hash, err := computeSHA256(path)
	if err != nil {
		return false, fmt.Errorf("failed to compute hash: %w", err)
	}
	return hash == id.ContentHash, nil
}

// computeSHA256 computes the SHA-256 hash of a file and returns it as a hex string.
func computeSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
