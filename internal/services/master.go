package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/relload/pkg/relload"
)

// JobStatus is the outcome of one variant within a master run.
type JobStatus string

const (
	JobOK      JobStatus = "OK"
	JobFailed  JobStatus = "FAILED"
	JobSkipped JobStatus = "SKIPPED"
)

// JobOutcome records one variant's slice of the master run summary.
type JobOutcome struct {
	Variant  relload.Variant
	Status   JobStatus
	Rows     int64
	Duration time.Duration
}

// MasterService runs all variants sequentially in canonical order:
// org, then per, then raw-feed-per.
//
// One confirmation happens up front. When a job fails, the continue prompt
// decides whether the remaining jobs run; non-interactive runs stop at the
// first failure.
type MasterService struct {
	importer relload.Importer
	resolve  func(relload.Variant) (relload.ImportConfig, error)
	approver relload.Approver
	// continuePrompt asks whether to keep going after a failed job.
	// Nil means never continue.
	continuePrompt func(ctx context.Context) (bool, error)
	logger         relload.Logger
	out            func(format string, args ...any)
}

// NewMasterService creates a MasterService. importer, resolve, approver,
// logger and out are required; continuePrompt may be nil for
// non-interactive runs.
func NewMasterService(
	importer relload.Importer,
	resolve func(relload.Variant) (relload.ImportConfig, error),
	approver relload.Approver,
	continuePrompt func(ctx context.Context) (bool, error),
	logger relload.Logger,
	out func(format string, args ...any),
) *MasterService {
	if importer == nil {
		panic("importer cannot be nil")
	}
	if resolve == nil {
		panic("resolve cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if out == nil {
		panic("out cannot be nil")
	}

	return &MasterService{
		importer:       importer,
		resolve:        resolve,
		approver:       approver,
		continuePrompt: continuePrompt,
		logger:         logger,
		out:            out,
	}
}

// RunAll imports every variant in order and prints the summary table.
// Returns nil only when every job succeeded; any failed job makes the
// run's error wrap ErrImportFailed.
func (m *MasterService) RunAll(ctx context.Context) error {
	approved, err := m.approver.RequestApproval(ctx, "org → per → raw-feed-per")
	if err != nil {
		return err
	}
	if !approved {
		return relload.ErrCancelled
	}

	start := time.Now()
	variants := relload.AllVariants()
	outcomes := make([]JobOutcome, 0, len(variants))
	stopped := false

	for i, variant := range variants {
		if stopped {
			outcomes = append(outcomes, JobOutcome{Variant: variant, Status: JobSkipped})
			continue
		}
		if ctx.Err() != nil {
			return fmt.Errorf("master run interrupted: %w", relload.ErrInterrupted)
		}

		outcome, err := m.runJob(ctx, variant)
		outcomes = append(outcomes, outcome)

		if errors.Is(err, relload.ErrInterrupted) {
			return err
		}
		if err != nil && i < len(variants)-1 {
			if !m.askContinue(ctx) {
				stopped = true
			}
		}
	}

	m.printSummary(outcomes, time.Since(start))

	for _, o := range outcomes {
		if o.Status != JobOK {
			return fmt.Errorf("master run finished with failures: %w", relload.ErrImportFailed)
		}
	}
	return nil
}

// runJob resolves and imports one variant.
func (m *MasterService) runJob(ctx context.Context, variant relload.Variant) (JobOutcome, error) {
	outcome := JobOutcome{Variant: variant, Status: JobFailed}

	config, err := m.resolve(variant)
	if err != nil {
		m.logger.Error("Failed to resolve %s configuration: %v", variant, err)
		return outcome, err
	}

	m.out("")
	m.out("=== Importing %s into %s ===", variant, config.Table)

	jobStart := time.Now()
	result, err := m.importer.Import(ctx, config)
	outcome.Duration = time.Since(jobStart)
	if result != nil {
		outcome.Rows = result.RowsInserted
	}
	if err != nil {
		m.logger.Error("%s import failed: %v", variant, err)
		return outcome, err
	}

	outcome.Status = JobOK
	return outcome, nil
}

// askContinue runs the continue prompt after a failed job.
func (m *MasterService) askContinue(ctx context.Context) bool {
	if m.continuePrompt == nil {
		return false
	}
	cont, err := m.continuePrompt(ctx)
	if err != nil {
		m.logger.Error("Failed to read answer: %v", err)
		return false
	}
	return cont
}

// printSummary writes the master run summary table.
func (m *MasterService) printSummary(outcomes []JobOutcome, total time.Duration) {
	m.out("")
	m.out("%-14s %-8s %12s %12s", "VARIANT", "STATUS", "ROWS", "DURATION")

	var rows int64
	for _, o := range outcomes {
		duration := "-"
		if o.Status != JobSkipped {
			duration = FormatDuration(o.Duration)
		}
		m.out("%-14s %-8s %12s %12s", o.Variant, o.Status, groupDigits(o.Rows), duration)
		rows += o.Rows
	}

	m.out("%-14s %-8s %12s %12s", "TOTAL", "", groupDigits(rows), FormatDuration(total))
}

// FormatDuration renders a duration as "1d 2h 3m 4s": the largest non-zero
// units only, seconds always shown.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	seconds := d - minutes*time.Minute

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds/time.Second))

	return strings.Join(parts, " ")
}
