package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

const DefaultConcurrency = 4

// physicalIDReporter is implemented by flows that know which deployed
// resource they touched.
type physicalIDReporter interface {
	PhysicalID() string
}

// SyncFlowExecutor runs flows with bounded concurrency. A failing flow is
// recorded and never stops the others.
type SyncFlowExecutor struct {
	concurrency int
	logger      ports.Logger
	now         func() time.Time
}

func NewSyncFlowExecutor(concurrency int, logger ports.Logger) (*SyncFlowExecutor, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		return nil, errors.New(errors.CodeInternal, "logger cannot be nil for sync flow executor")
	}
	return &SyncFlowExecutor{
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Execute returns one result per non nil flow, in input order. The error is
// only set when ctx ends before every flow finished.
func (e *SyncFlowExecutor) Execute(ctx context.Context, flows []ports.SyncFlow) ([]domain.SyncResult, error) {
	results := make([]domain.SyncResult, len(flows))
	ran := make([]bool, len(flows))

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)

	for i, flow := range flows {
		if flow == nil {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		ran[i] = true
		g.Go(func() error {
			results[i] = e.run(ctx, flow)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.SyncResult, 0, len(flows))
	for i := range results {
		if ran[i] {
			out = append(out, results[i])
		}
	}

	if err := ctx.Err(); err != nil {
		e.logger.Warnf(ctx, "Sync cancelled after %d of %d flows: %v", len(out), len(flows), err)
		return out, err
	}
	return out, nil
}

func (e *SyncFlowExecutor) run(ctx context.Context, flow ports.SyncFlow) (result domain.SyncResult) {
	id := flow.Identifier()
	logger := e.logger.WithFields(map[string]any{"resource": id.String(), "flow": flow.Name()})

	result = domain.SyncResult{
		FlowName:   flow.Name(),
		Identifier: id,
		Kind:       flow.Kind(),
	}
	start := e.now()
	defer func() {
		if r := recover(); r != nil {
			result.Status = domain.StatusFailed
			result.Error = errors.New(errors.CodeSyncFlowError, fmt.Sprintf("sync flow panicked: %v", r))
			logger.Errorf(ctx, result.Error, "Sync flow aborted")
		}
		result.Duration = e.now().Sub(start)
		if p, ok := flow.(physicalIDReporter); ok {
			result.PhysicalID = p.PhysicalID()
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Status = domain.StatusSkipped
		result.Error = err
		return result
	}

	logger.Infof(ctx, "Syncing %s", id)
	err := flow.Execute(ctx)
	switch {
	case err == nil:
		result.Status = domain.StatusSucceeded
		logger.Infof(ctx, "Finished syncing %s", id)
	case errors.Is(err, errors.CodeInfraSyncRequired):
		result.Status = domain.StatusSkipped
		result.Error = err
		logger.Warnf(ctx, "Skipped %s: %v", id, err)
	default:
		result.Status = domain.StatusFailed
		result.Error = err
		logger.Errorf(ctx, err, "Failed to sync %s", id)
	}
	return result
}
