package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/relload/internal/config"
	"github.com/vvka-141/relload/pkg/relload"
)

// mapEnv builds a lookupEnv over a fixed map.
func mapEnv(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// fakePrompter is a scripted SecretPrompter.
type fakePrompter struct {
	secret      string
	err         error
	interactive bool
	prompted    bool
}

func (f *fakePrompter) ReadSecret(prompt string) (string, error) {
	f.prompted = true
	return f.secret, f.err
}

func (f *fakePrompter) Interactive() bool { return f.interactive }

func TestResolveConnection_Defaults(t *testing.T) {
	r := NewResolver(mapEnv(nil), nil, nil)

	cfg, err := r.ResolveConnection(ConnFlags{})
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "venture_db", cfg.Database)
	assert.Equal(t, "postgres", cfg.Username)
	assert.Equal(t, "postgres", cfg.Password)
	assert.Equal(t, "prefer", cfg.SSLMode)
	assert.Equal(t, relload.AuthMethodStandard, cfg.AuthMethod)
}

func TestResolveConnection_PartialEnvOverride(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvDBHost: "db.example.com",
	}), nil, nil)

	cfg, err := r.ResolveConnection(ConnFlags{})
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "venture_db", cfg.Database)
}

func TestResolveConnection_FlagBeatsEnvBeatsProject(t *testing.T) {
	project := &config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host: "yaml-host",
			Port: 6000,
			User: "yaml-user",
		},
	}
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvDBHost: "env-host",
	}), nil, project)

	cfg, err := r.ResolveConnection(ConnFlags{Host: "flag-host"})
	require.NoError(t, err)

	assert.Equal(t, "flag-host", cfg.Host, "flag wins over env and project")
	assert.Equal(t, 6000, cfg.Port, "project wins when flag and env unset")
	assert.Equal(t, "yaml-user", cfg.Username)
}

func TestResolveConnection_EmptyEnvCountsAsUnset(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvDBHost: "",
	}), nil, nil)

	cfg, err := r.ResolveConnection(ConnFlags{})
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
}

func TestResolveConnection_BadPort(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvDBPort: "abc",
	}), nil, nil)

	_, err := r.ResolveConnection(ConnFlags{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, relload.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "DB_PORT")
}

func TestResolveConnection_PasswordPrecedence(t *testing.T) {
	t.Run("env wins over prompt", func(t *testing.T) {
		prompter := &fakePrompter{secret: "typed", interactive: true}
		r := NewResolver(mapEnv(map[string]string{
			relload.EnvDBPassword: "from-env",
		}), prompter, nil)

		cfg, err := r.ResolveConnection(ConnFlags{})
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Password)
		assert.False(t, prompter.prompted)
	})

	t.Run("interactive prompt used", func(t *testing.T) {
		prompter := &fakePrompter{secret: "typed", interactive: true}
		r := NewResolver(mapEnv(nil), prompter, nil)

		cfg, err := r.ResolveConnection(ConnFlags{})
		require.NoError(t, err)
		assert.Equal(t, "typed", cfg.Password)
		assert.True(t, prompter.prompted)
	})

	t.Run("empty prompt entry falls back to default", func(t *testing.T) {
		prompter := &fakePrompter{secret: "", interactive: true}
		r := NewResolver(mapEnv(nil), prompter, nil)

		cfg, err := r.ResolveConnection(ConnFlags{})
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Password)
	})

	t.Run("non-interactive skips prompt", func(t *testing.T) {
		prompter := &fakePrompter{secret: "typed", interactive: false}
		r := NewResolver(mapEnv(nil), prompter, nil)

		cfg, err := r.ResolveConnection(ConnFlags{})
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Password)
		assert.False(t, prompter.prompted)
	})

	t.Run("token auth never prompts", func(t *testing.T) {
		prompter := &fakePrompter{secret: "typed", interactive: true}
		r := NewResolver(mapEnv(nil), prompter, nil)

		cfg, err := r.ResolveConnection(ConnFlags{AuthMethod: "azure-ad"})
		require.NoError(t, err)
		assert.Empty(t, cfg.Password)
		assert.False(t, prompter.prompted)
	})
}

func TestResolveConnection_AuthMethod(t *testing.T) {
	r := NewResolver(mapEnv(nil), nil, nil)

	cfg, err := r.ResolveConnection(ConnFlags{AuthMethod: "aws-iam", AWSRegion: "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, relload.AuthMethodAWSIAM, cfg.AuthMethod)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)

	_, err = r.ResolveConnection(ConnFlags{AuthMethod: "kerberos"})
	assert.True(t, errors.Is(err, relload.ErrUnsupportedAuthMethod))
}

func TestResolveImport_OrgDefaults(t *testing.T) {
	r := NewResolver(mapEnv(nil), nil, nil)

	cfg, err := r.ResolveImport(relload.VariantOrg, ImportFlags{})
	require.NoError(t, err)

	assert.Equal(t, relload.VariantOrg, cfg.Variant)
	assert.Equal(t, "releases_org_export", cfg.Table)
	assert.Equal(t, "20250922/org/csv", cfg.CSVFolder)
	assert.Empty(t, cfg.CSVFile)
}

func TestResolveImport_OrgTableOverride(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvTableName: "org_staging",
	}), nil, nil)

	cfg, err := r.ResolveImport(relload.VariantOrg, ImportFlags{})
	require.NoError(t, err)
	assert.Equal(t, "org_staging", cfg.Table)
}

func TestResolveImport_PerTableFixed(t *testing.T) {
	// TABLE_NAME only applies to the org variant.
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvTableName: "org_staging",
	}), nil, nil)

	cfg, err := r.ResolveImport(relload.VariantPer, ImportFlags{})
	require.NoError(t, err)
	assert.Equal(t, "releases_per_export", cfg.Table)
	assert.Equal(t, "20250922/per/csv", cfg.CSVFolder)
}

func TestResolveImport_ProjectDatasetAndRoot(t *testing.T) {
	project := &config.ProjectConfig{
		Dataset: "20260101",
		CSVRoot: "/data/exports",
	}
	r := NewResolver(mapEnv(nil), nil, project)

	cfg, err := r.ResolveImport(relload.VariantRawFeedPer, ImportFlags{})
	require.NoError(t, err)
	assert.Equal(t, "/data/exports/20260101/raw_feed_per", cfg.CSVFolder)
}

func TestResolveImport_ProjectVariantFolder(t *testing.T) {
	project := &config.ProjectConfig{
		Variants: map[string]config.VariantConfig{
			"per": {Folder: "custom/per"},
		},
	}
	r := NewResolver(mapEnv(nil), nil, project)

	cfg, err := r.ResolveImport(relload.VariantPer, ImportFlags{})
	require.NoError(t, err)
	assert.Equal(t, "custom/per", cfg.CSVFolder)
}

func TestResolveImport_SingleFileOrgOnly(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvCSVFilePath: "20250922/org/csv/one.csv",
	}), nil, nil)

	cfg, err := r.ResolveImport(relload.VariantOrg, ImportFlags{})
	require.NoError(t, err)
	assert.Equal(t, "20250922/org/csv/one.csv", cfg.CSVFile)

	cfg, err = r.ResolveImport(relload.VariantPer, ImportFlags{})
	require.NoError(t, err)
	assert.Empty(t, cfg.CSVFile, "CSV_FILE_PATH ignored outside org")
}

func TestResolveImport_PerLogFile(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvPerImportLog: "per_import.log",
	}), nil, nil)

	cfg, err := r.ResolveImport(relload.VariantPer, ImportFlags{})
	require.NoError(t, err)
	assert.Equal(t, "per_import.log", cfg.LogFile)

	cfg, err = r.ResolveImport(relload.VariantOrg, ImportFlags{})
	require.NoError(t, err)
	assert.Empty(t, cfg.LogFile)
}

func TestResolveImport_InvalidTableName(t *testing.T) {
	r := NewResolver(mapEnv(nil), nil, nil)

	_, err := r.ResolveImport(relload.VariantOrg, ImportFlags{Table: "bad;name"})
	assert.True(t, errors.Is(err, relload.ErrInvalidConfig))
}

func TestResolveScriptEnv(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{
		relload.EnvDBHost: "db.example.com",
	}), nil, nil)

	env, err := r.ResolveScriptEnv(ImportFlags{})
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", env[relload.EnvDBHost])
	assert.Equal(t, "5432", env[relload.EnvDBPort])
	assert.Equal(t, "venture_db", env[relload.EnvDBName])
	assert.Equal(t, "postgres", env[relload.EnvDBUser])
	assert.Equal(t, "postgres", env[relload.EnvDBPassword])
	assert.Equal(t, "releases_org_export", env[relload.EnvTableName])
	assert.Equal(t, "20250922/org/csv", env[relload.EnvCSVFolderPath])
	_, hasFile := env[relload.EnvCSVFilePath]
	assert.False(t, hasFile)
}
