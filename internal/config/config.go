// Package config loads the optional JSON settings file shared by the QA
// command line tools. Fields omitted from the file keep their defaults, so
// partial configs are safe; flags always override config values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ToolConfig holds the cross-tool settings.
type ToolConfig struct {
	CatalogPath *string `json:"catalog_path,omitempty"`
	Workers     *int    `json:"workers,omitempty"`
	OutputDir   *string `json:"output_dir,omitempty"`
}

// Helper functions to create pointers
func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// EmptyToolConfig returns a ToolConfig with all fields set to nil.
func EmptyToolConfig() *ToolConfig {
	return &ToolConfig{}
}

// LoadToolConfig loads a ToolConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size.
func LoadToolConfig(path string) (*ToolConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %v", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	cfg := EmptyToolConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *ToolConfig) Validate() error {
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.OutputDir != nil && *c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty when set")
	}
	return nil
}

// GetCatalogPath returns the catalog_path value or the default.
// Empty means run recording is disabled.
func (c *ToolConfig) GetCatalogPath() string {
	if c.CatalogPath == nil {
		return "" // default: no catalog
	}
	return *c.CatalogPath
}

// GetWorkers returns the workers value or the default.
// Zero means one worker per CPU.
func (c *ToolConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0 // default: match CPU count
	}
	return *c.Workers
}

// GetOutputDir returns the output_dir value or the default.
func (c *ToolConfig) GetOutputDir() string {
	if c.OutputDir == nil {
		return "." // default: current directory
	}
	return *c.OutputDir
}
