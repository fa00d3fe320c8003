package core

import (
	"context"
	"errors"
	"testing"

	"github.com/dreamscape/testkit/internal/iocache"
	"github.com/dreamscape/testkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRunCoverage_RecordsHistory(t *testing.T) {
	cfg := newTestConfig(t)
	writeSummary(t, cfg, "auth-service", `{"total": {"lines": {"total": 100, "covered": 95, "pct": 95}}}`)

	store := &iocache.MockHistoryStore{}
	store.On("RecordCoverageRun", mock.MatchedBy(func(r *schema.CoverageReport) bool {
		return r.Summary.OverallCoverage == 95
	})).Return(int64(7), nil)
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	report, err := RunCoverage(WithSuppressOutput(context.Background()), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 95, report.Summary.OverallCoverage)
	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestRunCoverage_HistoryFailureIsNotFatal(t *testing.T) {
	cfg := newTestConfig(t)

	store := &iocache.MockHistoryStore{}
	store.On("RecordCoverageRun", mock.Anything).Return(int64(0), errors.New("database is locked"))
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	report, err := RunCoverage(WithSuppressOutput(context.Background()), cfg, mgr)
	require.NoError(t, err)
	assert.NotNil(t, report)
	store.AssertExpectations(t)
}

func TestRunCoverage_HistoryDisabled(t *testing.T) {
	cfg := newTestConfig(t)

	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(nil)

	_, err := RunCoverage(WithSuppressOutput(context.Background()), cfg, mgr)
	require.NoError(t, err)

	_, err = RunCoverage(WithSuppressOutput(context.Background()), cfg, nil)
	require.NoError(t, err)
}

func TestRunTestReport_RecordsHistory(t *testing.T) {
	cfg := newTestConfig(t)

	store := &iocache.MockHistoryStore{}
	store.On("RecordTestRun", mock.AnythingOfType("*schema.TestReport")).Return(int64(3), nil)
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	report, err := RunTestReport(WithSuppressOutput(context.Background()), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 23, report.Summary.TotalTests)
	store.AssertExpectations(t)
}

func TestExecuteCommands_Suppressed(t *testing.T) {
	cfg := newTestConfig(t)
	ctx := WithSuppressOutput(context.Background())

	assert.NoError(t, ExecuteCoverage(ctx, cfg, nil))
	assert.NoError(t, ExecuteTestReport(ctx, cfg, nil))
	assert.NoError(t, ExecuteSequence(ctx, cfg, []string{"b.test.ts", "a.test.ts"}))
	assert.NoError(t, ExecuteSetup(ctx, cfg))
}
