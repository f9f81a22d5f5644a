package relload_test

import (
	"errors"
	"testing"

	"github.com/vvka-141/relload/pkg/relload"
)

func validConnection() relload.ConnectionConfig {
	return relload.ConnectionConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "venture_db",
		Username: "postgres",
		Password: "postgres",
		SSLMode:  "prefer",
	}
}

func TestImportConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    relload.ImportConfig
		wantError bool
		errorType error
	}{
		{
			name: "valid config",
			config: relload.ImportConfig{
				Variant:    relload.VariantOrg,
				Connection: validConnection(),
				Table:      "releases_org_export",
				CSVFolder:  "20250922/org/csv",
			},
			wantError: false,
		},
		{
			name: "valid single file mode",
			config: relload.ImportConfig{
				Variant:    relload.VariantOrg,
				Connection: validConnection(),
				Table:      "releases_org_export",
				CSVFile:    "20250922/org/csv/part_001.csv",
			},
			wantError: false,
		},
		{
			name: "missing table",
			config: relload.ImportConfig{
				Variant:    relload.VariantOrg,
				Connection: validConnection(),
				CSVFolder:  "20250922/org/csv",
			},
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name: "table is not an identifier",
			config: relload.ImportConfig{
				Variant:    relload.VariantOrg,
				Connection: validConnection(),
				Table:      "releases; DROP TABLE students",
				CSVFolder:  "20250922/org/csv",
			},
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name: "missing csv source",
			config: relload.ImportConfig{
				Variant:    relload.VariantOrg,
				Connection: validConnection(),
				Table:      "releases_org_export",
			},
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name: "single file mode outside org",
			config: relload.ImportConfig{
				Variant:    relload.VariantPer,
				Connection: validConnection(),
				Table:      "releases_per_export",
				CSVFolder:  "20250922/per/csv",
				CSVFile:    "extra.csv",
			},
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name: "multiple validation errors",
			config: relload.ImportConfig{
				Variant: relload.Variant(99),
			},
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantError {
				if err == nil {
					t.Errorf("Validate() expected error, got nil")
					return
				}

				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("Validate() error type = %v, want %v", err, tt.errorType)
				}
			} else {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestConnectionConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*relload.ConnectionConfig)
		wantError bool
		errorType error
	}{
		{
			name:      "valid",
			mutate:    func(c *relload.ConnectionConfig) {},
			wantError: false,
		},
		{
			name:      "missing host",
			mutate:    func(c *relload.ConnectionConfig) { c.Host = "" },
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name:      "port zero",
			mutate:    func(c *relload.ConnectionConfig) { c.Port = 0 },
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name:      "port too large",
			mutate:    func(c *relload.ConnectionConfig) { c.Port = 70000 },
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name:      "missing database",
			mutate:    func(c *relload.ConnectionConfig) { c.Database = "" },
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name:      "missing user",
			mutate:    func(c *relload.ConnectionConfig) { c.Username = "" },
			wantError: true,
			errorType: relload.ErrInvalidConfig,
		},
		{
			name:      "undefined auth method",
			mutate:    func(c *relload.ConnectionConfig) { c.AuthMethod = relload.AuthMethod(42) },
			wantError: true,
			errorType: relload.ErrUnsupportedAuthMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConnection()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantError {
				if err == nil {
					t.Errorf("Validate() expected error, got nil")
					return
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("Validate() error type = %v, want %v", err, tt.errorType)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestAuthMethod_String(t *testing.T) {
	tests := []struct {
		method relload.AuthMethod
		want   string
	}{
		{relload.AuthMethodStandard, "Standard"},
		{relload.AuthMethodAWSIAM, "AWS IAM"},
		{relload.AuthMethodGoogleIAM, "Google IAM"},
		{relload.AuthMethodAzureEntraID, "Azure Entra ID"},
		{relload.AuthMethod(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.method.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAuthMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    relload.AuthMethod
		wantErr bool
	}{
		{"", relload.AuthMethodStandard, false},
		{"password", relload.AuthMethodStandard, false},
		{"standard", relload.AuthMethodStandard, false},
		{"aws-iam", relload.AuthMethodAWSIAM, false},
		{"gcp-iam", relload.AuthMethodGoogleIAM, false},
		{"azure-ad", relload.AuthMethodAzureEntraID, false},
		{"kerberos", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := relload.ParseAuthMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAuthMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseAuthMethod(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if err != nil && !errors.Is(err, relload.ErrUnsupportedAuthMethod) {
				t.Errorf("ParseAuthMethod(%q) error type = %v, want ErrUnsupportedAuthMethod", tt.input, err)
			}
		})
	}
}

func TestImportResult_Failed(t *testing.T) {
	r := &relload.ImportResult{FilesImported: 3}
	if r.Failed() {
		t.Errorf("Failed() = true for a clean run")
	}

	r.FilesFailed = 1
	if !r.Failed() {
		t.Errorf("Failed() = false with a failed file")
	}
}
