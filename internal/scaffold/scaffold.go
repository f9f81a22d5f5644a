// Package scaffold writes starter project files for relload init.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vvka-141/relload/pkg/relload"
)

//go:embed templates
var templatesFS embed.FS

// DefaultDataset is the folder date prefix used when none is configured.
const DefaultDataset = "20250922"

// starterFiles maps embedded templates to their output names. The .env
// template carries a non-dot name so the embed picks it up.
var starterFiles = []struct {
	template string
	output   string
}{
	{"templates/relload.yaml", "relload.yaml"},
	{"templates/env.example", ".env"},
	{"templates/requirements.txt", "requirements.txt"},
}

// Options control what the scaffolder fills into the starter files.
type Options struct {
	// Dataset is the date prefix for the default CSV folders.
	// Empty means DefaultDataset.
	Dataset string

	// Connection prefills the connection section of relload.yaml.
	// Zero fields fall back to the package defaults, so a zero
	// Options scaffolds the same files the shell launchers assumed.
	Connection relload.ConnectionConfig
}

// Scaffolder creates the relload.yaml, .env and requirements.txt
// starter files for a new project directory.
type Scaffolder struct {
	logger relload.Logger
}

// NewScaffolder creates a Scaffolder.
// Panics if logger is nil.
func NewScaffolder(logger relload.Logger) *Scaffolder {
	if logger == nil {
		panic("scaffold.NewScaffolder: logger must not be nil")
	}
	return &Scaffolder{logger: logger}
}

// Init writes the starter files into targetDir, creating the directory
// if needed. Files that already exist are left untouched, so Init is
// safe to re-run in a live project.
func (s *Scaffolder) Init(targetDir string, opts Options) error {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
	}

	replacer := newReplacer(opts)
	for _, f := range starterFiles {
		path := filepath.Join(targetDir, f.output)
		if _, err := os.Stat(path); err == nil {
			s.logger.Info("%s already exists, leaving it untouched", f.output)
			continue
		}

		content, err := templatesFS.ReadFile(f.template)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", f.template, err)
		}
		if err := os.WriteFile(path, []byte(replacer.Replace(string(content))), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		s.logger.Info("created %s", f.output)
	}
	return nil
}

// newReplacer builds the placeholder substitution for the templates,
// filling unset connection fields with the package defaults.
func newReplacer(opts Options) *strings.Replacer {
	conn := opts.Connection
	if conn.Host == "" {
		conn.Host = relload.DefaultHost
	}
	if conn.Port == 0 {
		conn.Port = relload.DefaultPort
	}
	if conn.Database == "" {
		conn.Database = relload.DefaultDatabase
	}
	if conn.Username == "" {
		conn.Username = relload.DefaultUser
	}
	if conn.SSLMode == "" {
		conn.SSLMode = relload.DefaultSSLMode
	}

	dataset := opts.Dataset
	if dataset == "" {
		dataset = DefaultDataset
	}

	return strings.NewReplacer(
		"{{DATASET}}", dataset,
		"{{AUTH_METHOD}}", authConfigName(conn.AuthMethod),
		"{{DB_HOST}}", conn.Host,
		"{{DB_PORT}}", strconv.Itoa(conn.Port),
		"{{DB_NAME}}", conn.Database,
		"{{DB_USER}}", conn.Username,
		"{{SSL_MODE}}", conn.SSLMode,
	)
}

// authConfigName renders an AuthMethod in the spelling relload.yaml and
// --auth-method accept.
func authConfigName(m relload.AuthMethod) string {
	switch m {
	case relload.AuthMethodAWSIAM:
		return "aws-iam"
	case relload.AuthMethodGoogleIAM:
		return "gcp-iam"
	case relload.AuthMethodAzureEntraID:
		return "azure-ad"
	default:
		return "password"
	}
}
