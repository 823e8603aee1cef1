package app

import (
	"context"
	"fmt"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

// Application wires one sync run: load physical ids, build a flow per target,
// execute them and report.
type Application struct {
	Factory  ports.SyncFlowFactory
	Executor ports.SyncExecutor
	Reporter ports.Reporter
	Logger   ports.Logger

	targets   []domain.ResourceIdentifier
	listAll   func() []domain.ResourceIdentifier
	accountID func(ctx context.Context) (string, error)
}

type Option func(*Application)

// WithTargets syncs only ids. Without it every resource from the lister is
// synced.
func WithTargets(ids []domain.ResourceIdentifier) Option {
	return func(a *Application) { a.targets = ids }
}

func WithResourceLister(list func() []domain.ResourceIdentifier) Option {
	return func(a *Application) { a.listAll = list }
}

func WithAccountResolver(resolve func(ctx context.Context) (string, error)) Option {
	return func(a *Application) { a.accountID = resolve }
}

func NewApplication(factory ports.SyncFlowFactory, executor ports.SyncExecutor, reporter ports.Reporter, logger ports.Logger, opts ...Option) *Application {
	a := &Application{
		Factory:  factory,
		Executor: executor,
		Reporter: reporter,
		Logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run returns a user facing SYNC_FLOW_ERROR when any flow failed. Skipped
// flows do not fail the run.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting sync...")

	if a.accountID != nil {
		if acc, err := a.accountID(ctx); err != nil {
			a.Logger.Warnf(ctx, "Could not resolve AWS account: %v", err)
		} else {
			a.Logger.Infof(ctx, "Syncing into AWS account %s", acc)
		}
	}

	if err := a.Factory.LoadPhysicalIDMapping(ctx); err != nil {
		a.Logger.Errorf(ctx, err, "Failed to load physical ids")
		return err
	}

	flows := a.buildFlows(ctx)
	if len(flows) == 0 {
		a.Logger.Warnf(ctx, "No resources to sync")
	}

	results, execErr := a.Executor.Execute(ctx, flows)
	if err := a.Reporter.Report(ctx, results); err != nil && execErr == nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to report sync results")
	}
	if execErr != nil {
		a.Logger.Errorf(ctx, execErr, "Sync interrupted")
		return execErr
	}

	failed := 0
	for _, res := range results {
		if res.Status == domain.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		return errors.NewUserFacing(errors.CodeSyncFlowError,
			fmt.Sprintf("%d of %d resources failed to sync", failed, len(results)),
			"See the report above for the failing resources.")
	}

	a.Logger.Infof(ctx, "Sync completed successfully")
	return nil
}

func (a *Application) buildFlows(ctx context.Context) []ports.SyncFlow {
	targets := a.targets
	explicit := len(targets) > 0
	if !explicit && a.listAll != nil {
		targets = a.listAll()
	}

	flows := make([]ports.SyncFlow, 0, len(targets))
	for _, id := range targets {
		flow := a.Factory.CreateSyncFlow(id)
		if flow == nil {
			if explicit {
				a.Logger.Warnf(ctx, "No sync flow for %s, skipping", id)
			}
			continue
		}
		flows = append(flows, flow)
	}
	return flows
}
