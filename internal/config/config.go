package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/relload/pkg/relload"
)

// ErrConfigNotFound is returned when the project file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound)
// and fall back to defaults.
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds database connection values from the project file.
// Zero values mean "not set"; the resolver fills in env vars and defaults.
type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// VariantConfig overrides the default table name and source folder for one
// import variant.
type VariantConfig struct {
	Table  string `yaml:"table"`
	Folder string `yaml:"folder"`
}

// ProjectConfig is the parsed relload.yaml.
type ProjectConfig struct {
	Dataset    string                   `yaml:"dataset"`
	CSVRoot    string                   `yaml:"csv_root"`
	AuthMethod string                   `yaml:"auth_method"`
	Connection ConnectionConfig         `yaml:"connection"`
	Variants   map[string]VariantConfig `yaml:"variants"`
}

const ConfigFileName = "relload.yaml"

// Load reads the project file from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the project file at an explicit path, for --config.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed %s: %v: %w", filepath.Base(path), err, relload.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Variant returns the per-variant overrides for name, if present.
func (c *ProjectConfig) Variant(name string) (VariantConfig, bool) {
	if c == nil || c.Variants == nil {
		return VariantConfig{}, false
	}
	v, ok := c.Variants[name]
	return v, ok
}
