// Package config handles configuration loading, validation and command-line flags for pairrename.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidJSON     ConfigErrorType = "INVALID_JSON"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidJSON:
		return fmt.Sprintf("invalid JSON in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// JournalConfig controls the rename journal.
type JournalConfig struct {
	Enabled   bool   `json:"enabled"`
	Directory string `json:"directory"`
}

// Configuration holds all settings for pairrename.
type Configuration struct {
	HeaderExtensions []string       `json:"headerExtensions"`
	SourceExtensions []string       `json:"sourceExtensions"`
	GuardSuffix      string         `json:"guardSuffix"`
	BackupMarker     string         `json:"backupMarker"`
	Journal          *JournalConfig `json:"journal,omitempty"`
}

// Default returns the built-in configuration: .h/.cpp pairs, _H_ guards,
// .BACKUP backups and no journal.
func Default() *Configuration {
	return &Configuration{
		HeaderExtensions: []string{".h"},
		SourceExtensions: []string{".cpp"},
		GuardSuffix:      "_H_",
		BackupMarker:     ".BACKUP",
		Journal: &JournalConfig{
			Enabled:   false,
			Directory: ".pairrename",
		},
	}
}

// ApplyDefaults fills zero-valued fields from Default.
func (c *Configuration) ApplyDefaults() {
	defaults := Default()

	if len(c.HeaderExtensions) == 0 {
		c.HeaderExtensions = defaults.HeaderExtensions
	}
	if len(c.SourceExtensions) == 0 {
		c.SourceExtensions = defaults.SourceExtensions
	}
	if c.GuardSuffix == "" {
		c.GuardSuffix = defaults.GuardSuffix
	}
	if c.BackupMarker == "" {
		c.BackupMarker = defaults.BackupMarker
	}
	if c.Journal == nil {
		c.Journal = defaults.Journal
	} else if c.Journal.Directory == "" {
		c.Journal.Directory = defaults.Journal.Directory
	}
}

// Validate checks that the configuration can drive a rename.
func (c *Configuration) Validate() error {
	if len(c.HeaderExtensions) == 0 {
		return &ConfigError{Type: ValidationError, Message: "headerExtensions must contain at least one extension"}
	}
	if len(c.SourceExtensions) == 0 {
		return &ConfigError{Type: ValidationError, Message: "sourceExtensions must contain at least one extension"}
	}

	seen := make(map[string]string)
	check := func(field string, exts []string) error {
		for i, ext := range exts {
			name := fmt.Sprintf("%s[%d]", field, i)
			if len(ext) < 2 || !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext[1:], `./\`) {
				return &ConfigError{Type: ValidationError, Message: fmt.Sprintf("%s %q must be a dot followed by a name", name, ext)}
			}
			if prev, ok := seen[ext]; ok {
				return &ConfigError{Type: ValidationError, Message: fmt.Sprintf("%s %q duplicates %s", name, ext, prev)}
			}
			seen[ext] = name
		}
		return nil
	}
	if err := check("headerExtensions", c.HeaderExtensions); err != nil {
		return err
	}
	if err := check("sourceExtensions", c.SourceExtensions); err != nil {
		return err
	}

	if c.GuardSuffix == "" || strings.ContainsAny(c.GuardSuffix, " \t\r\n") {
		return &ConfigError{Type: ValidationError, Message: "guardSuffix cannot be empty or contain whitespace"}
	}
	if c.BackupMarker == "" || strings.ContainsAny(c.BackupMarker, `/\`) {
		return &ConfigError{Type: ValidationError, Message: "backupMarker cannot be empty or contain a path separator"}
	}
	if c.Journal != nil && c.Journal.Enabled && c.Journal.Directory == "" {
		return &ConfigError{Type: ValidationError, Message: "journal.directory cannot be empty when the journal is enabled"}
	}
	return nil
}

// Load reads and parses a configuration file from the given path.
// Missing fields take their defaults.
func Load(filePath string) (*Configuration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{
				Type: FileNotFound,
				Path: filePath,
			}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save serializes and writes a configuration to the given path.
func Save(config *Configuration, filePath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("failed to write configuration file: %s", err.Error()),
		}
	}
	return nil
}
