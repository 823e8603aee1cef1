package service

import (
	"context"
	stderrs "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	portsmocks "github.com/olusolaa/stack-sync/internal/core/ports/mocks"
	"github.com/olusolaa/stack-sync/internal/errors"
	"github.com/olusolaa/stack-sync/internal/log"
)

type ExecutorTestSuite struct {
	suite.Suite
	executor *SyncFlowExecutor
}

func (s *ExecutorTestSuite) SetupTest() {
	executor, err := NewSyncFlowExecutor(2, log.Nop())
	s.Require().NoError(err)
	s.executor = executor
}

func (s *ExecutorTestSuite) newFlow(rawID string, kind domain.ResourceKind, execErr error) *portsmocks.SyncFlow {
	flow := portsmocks.NewSyncFlow(s.T())
	flow.On("Name").Return("flow-" + rawID)
	flow.On("Identifier").Return(domain.ParseResourceIdentifier(rawID))
	flow.On("Kind").Return(kind)
	flow.On("Execute", mock.Anything).Return(execErr).Once()
	return flow
}

func (s *ExecutorTestSuite) TestMixedOutcomes() {
	infra := errors.New(errors.CodeInfraSyncRequired, "DefinitionBody is inline")
	failure := errors.Wrap(stderrs.New("AccessDenied"), errors.CodePlatformAPIError, "UpdateFunctionCode failed")

	flows := []ports.SyncFlow{
		s.newFlow("Function1", domain.KindFunction, nil),
		nil,
		s.newFlow("Api", domain.KindRestAPI, infra),
		s.newFlow("Child/Layer", domain.KindLayerVersion, failure),
	}

	results, err := s.executor.Execute(context.Background(), flows)
	s.Require().NoError(err)
	s.Require().Len(results, 3)

	s.Equal(domain.StatusSucceeded, results[0].Status)
	s.Equal("Function1", results[0].Identifier.String())
	s.Equal("flow-Function1", results[0].FlowName)
	s.Equal(domain.KindFunction, results[0].Kind)
	s.NoError(results[0].Error)

	s.Equal(domain.StatusSkipped, results[1].Status)
	s.Same(infra, results[1].Error)

	s.Equal(domain.StatusFailed, results[2].Status)
	s.Equal("Child/Layer", results[2].Identifier.String())
	s.ErrorIs(results[2].Error, failure)
}

func (s *ExecutorTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flow := portsmocks.NewSyncFlow(s.T())
	results, err := s.executor.Execute(ctx, []ports.SyncFlow{flow})
	s.ErrorIs(err, context.Canceled)
	s.Empty(results)
}

func (s *ExecutorTestSuite) TestEmpty() {
	results, err := s.executor.Execute(context.Background(), nil)
	s.NoError(err)
	s.Empty(results)
}

func TestExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(ExecutorTestSuite))
}

type blockingFlow struct {
	id      string
	active  *int32
	maxSeen *int32
}

func (b *blockingFlow) Name() string                          { return "blocking" }
func (b *blockingFlow) Identifier() domain.ResourceIdentifier { return domain.ParseResourceIdentifier(b.id) }
func (b *blockingFlow) Kind() domain.ResourceKind             { return domain.KindFunction }
func (b *blockingFlow) PhysicalID() string                    { return "phys-" + b.id }

func (b *blockingFlow) Execute(context.Context) error {
	n := atomic.AddInt32(b.active, 1)
	for {
		seen := atomic.LoadInt32(b.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(b.maxSeen, seen, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	atomic.AddInt32(b.active, -1)
	return nil
}

func TestExecutor_RespectsConcurrencyLimit(t *testing.T) {
	executor, err := NewSyncFlowExecutor(2, log.Nop())
	require.NoError(t, err)

	var active, maxSeen int32
	var flows []ports.SyncFlow
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		flows = append(flows, &blockingFlow{id: id, active: &active, maxSeen: &maxSeen})
	}

	results, err := executor.Execute(context.Background(), flows)
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxSeen), int32(2))
	for i, r := range results {
		assert.Equal(t, domain.StatusSucceeded, r.Status)
		assert.Equal(t, "phys-"+flows[i].Identifier().String(), r.PhysicalID)
	}
}

type panickingFlow struct{}

func (panickingFlow) Name() string                          { return "panics" }
func (panickingFlow) Identifier() domain.ResourceIdentifier { return domain.ParseResourceIdentifier("Boom") }
func (panickingFlow) Kind() domain.ResourceKind             { return domain.KindHTTPAPI }
func (panickingFlow) Execute(context.Context) error         { panic("nil map") }

func TestExecutor_RecoversPanics(t *testing.T) {
	executor, err := NewSyncFlowExecutor(0, log.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultConcurrency, executor.concurrency)

	results, err := executor.Execute(context.Background(), []ports.SyncFlow{panickingFlow{}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.StatusFailed, results[0].Status)
	assert.True(t, errors.Is(results[0].Error, errors.CodeSyncFlowError))
}

func TestNewSyncFlowExecutor_NilLogger(t *testing.T) {
	_, err := NewSyncFlowExecutor(1, nil)
	assert.Error(t, err)
}
