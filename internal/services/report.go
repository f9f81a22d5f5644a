package services

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/relload/pkg/relload"
)

// RunReport is the YAML-serializable record of one import run.
// Written by --report; it carries everything needed to audit a run after
// the fact, including per-file checksums of the raw source bytes.
type RunReport struct {
	RunID     string       `yaml:"run_id"`
	Variant   string       `yaml:"variant"`
	Table     string       `yaml:"table"`
	StartedAt time.Time    `yaml:"started_at"`
	Duration  string       `yaml:"duration"`
	Rows      int64        `yaml:"rows_inserted"`
	Imported  int          `yaml:"files_imported"`
	Skipped   int          `yaml:"files_skipped"`
	Failed    int          `yaml:"files_failed"`
	TotalRows int64        `yaml:"table_total_rows,omitempty"`
	TableSize string       `yaml:"table_size,omitempty"`
	Files     []FileReport `yaml:"files"`
}

// FileReport is the per-file slice of a RunReport.
type FileReport struct {
	Name     string `yaml:"name"`
	Checksum string `yaml:"checksum,omitempty"`
	Rows     int64  `yaml:"rows"`
	Duration string `yaml:"duration"`
	Skipped  bool   `yaml:"skipped,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// NewRunReport builds the report for a finished run. The run ID is a fresh
// UUID; startedAt is the wall time the job began.
func NewRunReport(result *relload.ImportResult, startedAt time.Time) RunReport {
	report := RunReport{
		RunID:     uuid.NewString(),
		Variant:   result.Variant.String(),
		Table:     result.Table,
		StartedAt: startedAt,
		Duration:  result.Duration.Round(time.Millisecond).String(),
		Rows:      result.RowsInserted,
		Imported:  result.FilesImported,
		Skipped:   result.FilesSkipped,
		Failed:    result.FilesFailed,
		TotalRows: result.TotalRows,
		TableSize: result.TableSize,
	}

	for _, f := range result.Files {
		fr := FileReport{
			Name:     f.Name,
			Checksum: f.Checksum,
			Rows:     f.Rows,
			Duration: f.Duration.Round(time.Millisecond).String(),
			Skipped:  f.Skipped,
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		report.Files = append(report.Files, fr)
	}
	return report
}

// WriteReport marshals the report as YAML to path.
func WriteReport(path string, report RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report %s: %w", path, err)
	}
	return nil
}
