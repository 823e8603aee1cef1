package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
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
		return nil, errors.New(errors.CodeInternal, "logger cannot be nil for text reporter")
	}
	r := &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if f, ok := r.writer.(*os.File); cfg.NoColor || !ok || !isTerminal(f) {
		color.NoColor = true
	}
	return r, nil
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// Report prints one row per flow in execution order, then the totals.
func (r *Reporter) Report(ctx context.Context, results []domain.SyncResult) error {
	if len(results) == 0 {
		fmt.Fprintln(r.writer, "No resources were synced.")
		return nil
	}

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintln(tw, "Sync Report")
	fmt.Fprintln(tw, "===========")
	fmt.Fprintln(tw, "Status\tKind\tResource\tPhysical ID\tDuration\tDetails")
	fmt.Fprintln(tw, "------\t----\t--------\t-----------\t--------\t-------")

	var succeeded, failed, skipped int
	for _, res := range results {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var status, details string
		switch res.Status {
		case domain.StatusSucceeded:
			succeeded++
			status = green("[OK]")
			details = "Synced with " + res.FlowName + "."
		case domain.StatusFailed:
			failed++
			status = red("[FAILED]")
			details = errorDetails(res.Error)
		case domain.StatusSkipped:
			skipped++
			status = yellow("[SKIPPED]")
			details = errorDetails(res.Error)
		default:
			status = "[UNKNOWN]"
			details = "Unknown sync status."
		}

		physicalID := res.PhysicalID
		if physicalID == "" {
			physicalID = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			status, res.Kind, res.Identifier, physicalID, res.Duration.Round(time.Millisecond), details)
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Total Resources:\t%d\n", len(results))
	fmt.Fprintf(tw, "Succeeded:\t%s\n", green(succeeded))
	fmt.Fprintf(tw, "Skipped:\t%s\n", yellow(skipped))
	fmt.Fprintf(tw, "Failed:\t%s\n", red(failed))
	return nil
}

// errorDetails prefers the user facing message and its suggestion over the
// raw error chain.
func errorDetails(err error) string {
	if err == nil {
		return ""
	}
	if msg, suggestion, ok := errors.GetUserFacingMessage(err); ok {
		if suggestion == "" {
			return msg
		}
		return msg + " (" + suggestion + ")"
	}
	return truncate(err.Error())
}

func truncate(s string) string {
	const maxLen = 120
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
