package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Compact bool `mapstructure:"compact"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

type Option func(*Reporter)

func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.writer = w
		}
	}
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeInternal, "logger cannot be nil for json reporter")
	}
	r := &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type jsonReport struct {
	Summary jsonSummary      `json:"summary"`
	Results []jsonResultItem `json:"results"`
}

type jsonSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type jsonResultItem struct {
	Status       domain.SyncStatus   `json:"status"`
	Resource     string              `json:"resource"`
	StackPath    string              `json:"stack_path,omitempty"`
	LogicalID    string              `json:"logical_id"`
	Kind         domain.ResourceKind `json:"kind,omitempty"`
	SyncFlow     string              `json:"sync_flow,omitempty"`
	PhysicalID   string              `json:"physical_id,omitempty"`
	DurationMS   int64               `json:"duration_ms"`
	ErrorCode    errors.Code         `json:"error_code,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Suggestion   string              `json:"suggestion,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, results []domain.SyncResult) error {
	report := jsonReport{
		Summary: jsonSummary{Total: len(results)},
		Results: make([]jsonResultItem, 0, len(results)),
	}

	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled.")
			return ctx.Err()
		}

		switch res.Status {
		case domain.StatusSucceeded:
			report.Summary.Succeeded++
		case domain.StatusSkipped:
			report.Summary.Skipped++
		case domain.StatusFailed:
			report.Summary.Failed++
		}

		item := jsonResultItem{
			Status:     res.Status,
			Resource:   res.Identifier.String(),
			StackPath:  res.Identifier.StackPath,
			LogicalID:  res.Identifier.LogicalID,
			Kind:       res.Kind,
			SyncFlow:   res.FlowName,
			PhysicalID: res.PhysicalID,
			DurationMS: res.Duration.Milliseconds(),
		}
		if res.Error != nil {
			item.ErrorCode = errors.GetCode(res.Error)
			item.ErrorMessage = res.Error.Error()
			if _, suggestion, ok := errors.GetUserFacingMessage(res.Error); ok {
				item.Suggestion = suggestion
			}
		}
		report.Results = append(report.Results, item)
	}

	encoder := json.NewEncoder(r.writer)
	if !r.config.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return errors.Wrap(fmt.Errorf("failed to encode JSON report: %w", err), errors.CodeInternal, "failed to write report")
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
