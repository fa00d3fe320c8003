package iocache

import (
	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordCoverageRun implements the HistoryStore interface.
func (m *MockHistoryStore) RecordCoverageRun(report *schema.CoverageReport) (int64, error) {
	args := m.Called(report)
	return args.Get(0).(int64), args.Error(1)
}

// RecordTestRun implements the HistoryStore interface.
func (m *MockHistoryStore) RecordTestRun(report *schema.TestReport) (int64, error) {
	args := m.Called(report)
	return args.Get(0).(int64), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.ReportRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ReportRunRecord)
	return runs, args.Error(1)
}

// GetAllServiceCoverage implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllServiceCoverage() ([]schema.ServiceCoverageRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.ServiceCoverageRecord)
	return rows, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	return m.Called().Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	return m.Called().Error(0)
}
