package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/relload/pkg/relload"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `dataset: "20250922"
csv_root: /data/exports
auth_method: azure-ad

connection:
  host: myhost
  port: 5433
  user: myuser
  database: mydb
  sslmode: require
  azure_tenant_id: tenant-1
  azure_client_id: client-1

variants:
  org:
    table: releases_org_export
    folder: 20250922/org/csv
  per:
    folder: 20250922/per/csv
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "20250922", cfg.Dataset)
	assert.Equal(t, "/data/exports", cfg.CSVRoot)
	assert.Equal(t, "azure-ad", cfg.AuthMethod)
	assert.Equal(t, "myhost", cfg.Connection.Host)
	assert.Equal(t, 5433, cfg.Connection.Port)
	assert.Equal(t, "myuser", cfg.Connection.User)
	assert.Equal(t, "mydb", cfg.Connection.Database)
	assert.Equal(t, "require", cfg.Connection.SSLMode)
	assert.Equal(t, "tenant-1", cfg.Connection.AzureTenantID)
	assert.Equal(t, "client-1", cfg.Connection.AzureClientID)

	org, ok := cfg.Variant("org")
	require.True(t, ok)
	assert.Equal(t, "releases_org_export", org.Table)
	assert.Equal(t, "20250922/org/csv", org.Folder)

	per, ok := cfg.Variant("per")
	require.True(t, ok)
	assert.Equal(t, "", per.Table)
	assert.Equal(t, "20250922/per/csv", per.Folder)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	content := `dataset: "20250101"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "20250101", cfg.Dataset)
	assert.Equal(t, "", cfg.Connection.Host)
	assert.Equal(t, 0, cfg.Connection.Port)

	_, ok := cfg.Variant("org")
	assert.False(t, ok)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.True(t, errors.Is(err, relload.ErrInvalidConfig), "expected ErrInvalidConfig, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataset: \"20250922\"\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "20250922", cfg.Dataset)
}
