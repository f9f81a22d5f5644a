package db

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/vvka-141/relload/internal/config"
	"github.com/vvka-141/relload/internal/schema"
	"github.com/vvka-141/relload/pkg/relload"
)

// ConnFlags represents connection parameters from CLI flags.
// Zero values mean "not provided"; the resolver falls through to
// environment variables, the project file, and built-in defaults.
type ConnFlags struct {
	Host       string
	Port       int
	Database   string
	Username   string
	Password   string
	SSLMode    string
	AuthMethod string

	AzureTenantID  string
	AzureClientID  string
	AWSRegion      string
	GoogleInstance string
}

// ImportFlags represents the full flag set of an import command.
type ImportFlags struct {
	ConnFlags

	Table     string
	CSVFolder string
	CSVFile   string
	LogFile   string
	Report    string
	Force     bool
	Verbose   bool
}

// SecretPrompter supplies the non-echoed password prompt. Tests inject a
// canned implementation so resolution never touches a terminal.
type SecretPrompter interface {
	// ReadSecret prompts for a secret without echoing it.
	ReadSecret(prompt string) (string, error)

	// Interactive reports whether prompting is possible at all
	// (stdin and stdout are a terminal).
	Interactive() bool
}

// Resolver produces resolved configurations from flags, environment
// variables, the optional project file, and built-in defaults, in that
// precedence order. Empty-string environment values count as unset.
type Resolver struct {
	lookupEnv func(string) (string, bool)
	prompter  SecretPrompter
	project   *config.ProjectConfig
}

// NewResolver creates a resolver. A nil lookupEnv falls back to
// os.LookupEnv; a nil prompter disables the password prompt; a nil project
// means no project file was found.
func NewResolver(lookupEnv func(string) (string, bool), prompter SecretPrompter, project *config.ProjectConfig) *Resolver {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &Resolver{
		lookupEnv: lookupEnv,
		prompter:  prompter,
		project:   project,
	}
}

// env returns the named environment variable, treating empty as unset.
func (r *Resolver) env(name string) string {
	v, ok := r.lookupEnv(name)
	if !ok {
		return ""
	}
	return v
}

// ResolveConnection resolves the database connection parameters.
func (r *Resolver) ResolveConnection(flags ConnFlags) (relload.ConnectionConfig, error) {
	cfg := relload.ConnectionConfig{
		AdditionalParams: make(map[string]string),
	}

	var pc config.ConnectionConfig
	var projectAuth string
	if r.project != nil {
		pc = r.project.Connection
		projectAuth = r.project.AuthMethod
	}

	// Host: flag > DB_HOST > relload.yaml > default
	cfg.Host = firstNonEmpty(flags.Host, r.env(relload.EnvDBHost), pc.Host, relload.DefaultHost)

	// Port: flag > DB_PORT > relload.yaml > default
	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case r.env(relload.EnvDBPort) != "":
		raw := r.env(relload.EnvDBPort)
		port, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid $%s value %q: must be an integer: %w", relload.EnvDBPort, raw, relload.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = relload.DefaultPort
	}

	cfg.Database = firstNonEmpty(flags.Database, r.env(relload.EnvDBName), pc.Database, relload.DefaultDatabase)
	cfg.Username = firstNonEmpty(flags.Username, r.env(relload.EnvDBUser), pc.User, relload.DefaultUser)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, pc.SSLMode, relload.DefaultSSLMode)

	authMethod, err := relload.ParseAuthMethod(firstNonEmpty(flags.AuthMethod, projectAuth))
	if err != nil {
		return cfg, err
	}
	cfg.AuthMethod = authMethod

	cfg.AzureTenantID = firstNonEmpty(flags.AzureTenantID, r.env("AZURE_TENANT_ID"), pc.AzureTenantID)
	cfg.AzureClientID = firstNonEmpty(flags.AzureClientID, r.env("AZURE_CLIENT_ID"), pc.AzureClientID)
	cfg.AzureClientSecret = r.env("AZURE_CLIENT_SECRET")
	cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, r.env("AWS_REGION"), pc.AWSRegion)
	cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)

	cfg.Password, err = r.resolvePassword(flags, cfg.AuthMethod)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

// resolvePassword resolves the password: flag > DB_PASSWORD > non-echoed
// prompt (interactive, standard auth only) > default. An empty prompt entry
// falls back to the default. Token-based auth methods never prompt; the
// token replaces the password at connect time.
func (r *Resolver) resolvePassword(flags ConnFlags, method relload.AuthMethod) (string, error) {
	if flags.Password != "" {
		return flags.Password, nil
	}
	if v := r.env(relload.EnvDBPassword); v != "" {
		return v, nil
	}
	if method != relload.AuthMethodStandard {
		return "", nil
	}
	if r.prompter != nil && r.prompter.Interactive() {
		entered, err := r.prompter.ReadSecret(fmt.Sprintf("Password for %s: ", relload.EnvDBPassword))
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		if entered != "" {
			return entered, nil
		}
	}
	return relload.DefaultPassword, nil
}

// ResolveImport resolves the full configuration for one import variant and
// validates the result.
func (r *Resolver) ResolveImport(variant relload.Variant, flags ImportFlags) (relload.ImportConfig, error) {
	tbl, err := schema.For(variant)
	if err != nil {
		return relload.ImportConfig{}, err
	}

	cfg := relload.ImportConfig{
		Variant: variant,
		Force:   flags.Force,
		Verbose: flags.Verbose,
	}

	cfg.Connection, err = r.ResolveConnection(flags.ConnFlags)
	if err != nil {
		return cfg, err
	}

	variantCfg, _ := r.projectVariant(variant)

	// Table: fixed per variant, except org where TABLE_NAME (or --table)
	// overrides the default.
	cfg.Table = tbl.DefaultName
	if variant == relload.VariantOrg {
		cfg.Table = firstNonEmpty(flags.Table, r.env(relload.EnvTableName), variantCfg.Table, tbl.DefaultName)
	}

	cfg.CSVFolder = firstNonEmpty(flags.CSVFolder, r.env(relload.EnvCSVFolderPath), variantCfg.Folder, r.defaultFolder(tbl))

	if variant == relload.VariantOrg {
		cfg.CSVFile = firstNonEmpty(flags.CSVFile, r.env(relload.EnvCSVFilePath))
	}
	if variant == relload.VariantPer {
		cfg.LogFile = firstNonEmpty(flags.LogFile, r.env(relload.EnvPerImportLog))
	}
	cfg.ReportPath = flags.Report

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ResolveScriptEnv resolves the KEY=VALUE environment exported to a legacy
// import script. Defaults follow the org variant, matching the wrapper the
// scripts were historically launched from.
func (r *Resolver) ResolveScriptEnv(flags ImportFlags) (map[string]string, error) {
	cfg, err := r.ResolveImport(relload.VariantOrg, flags)
	if err != nil {
		return nil, err
	}

	env := map[string]string{
		relload.EnvDBHost:        cfg.Connection.Host,
		relload.EnvDBPort:        strconv.Itoa(cfg.Connection.Port),
		relload.EnvDBName:        cfg.Connection.Database,
		relload.EnvDBUser:        cfg.Connection.Username,
		relload.EnvDBPassword:    cfg.Connection.Password,
		relload.EnvTableName:     cfg.Table,
		relload.EnvCSVFolderPath: cfg.CSVFolder,
	}
	if cfg.CSVFile != "" {
		env[relload.EnvCSVFilePath] = cfg.CSVFile
	}
	return env, nil
}

// projectVariant returns the project-file overrides for the variant.
func (r *Resolver) projectVariant(variant relload.Variant) (config.VariantConfig, bool) {
	if r.project == nil {
		return config.VariantConfig{}, false
	}
	return r.project.Variant(variant.String())
}

// defaultFolder computes the built-in source folder for a table, honoring
// the project file's dataset prefix and csv_root.
func (r *Resolver) defaultFolder(tbl schema.Table) string {
	folder := tbl.DefaultFolder
	if r.project != nil {
		if ds := r.project.Dataset; ds != "" {
			// The catalog default is "<dataset>/<suffix>"; swap the
			// dataset segment for the configured one.
			if _, suffix, ok := strings.Cut(folder, "/"); ok {
				folder = path.Join(ds, suffix)
			}
		}
		if root := r.project.CSVRoot; root != "" && !path.IsAbs(folder) {
			folder = path.Join(root, folder)
		}
	}
	return folder
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
