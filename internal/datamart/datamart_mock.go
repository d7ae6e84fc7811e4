package datamart

import (
	"context"

	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"github.com/stretchr/testify/mock"
)

// MockDatamart is a mock implementation of Datamart for testing.
type MockDatamart struct {
	mock.Mock
}

var _ contract.Datamart = &MockDatamart{} // Compile-time check

// Ping implements the Datamart interface.
func (m *MockDatamart) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// PortfolioRows implements the Datamart interface.
func (m *MockDatamart) PortfolioRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// RiskRows implements the Datamart interface.
func (m *MockDatamart) RiskRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// SummaryRows implements the Datamart interface.
func (m *MockDatamart) SummaryRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// TechnologyRows implements the Datamart interface.
func (m *MockDatamart) TechnologyRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// ArchitectureRows implements the Datamart interface.
func (m *MockDatamart) ArchitectureRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// SecurityRows implements the Datamart interface.
func (m *MockDatamart) SecurityRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// CriterionNames implements the Datamart interface.
func (m *MockDatamart) CriterionNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// PerformanceRows implements the Datamart interface.
func (m *MockDatamart) PerformanceRows(ctx context.Context, criterion string) ([]schema.Row, error) {
	args := m.Called(ctx, criterion)
	return rowsArg(args), args.Error(1)
}

// PerformanceFallbackRows implements the Datamart interface.
func (m *MockDatamart) PerformanceFallbackRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// LatestCriterionRows implements the Datamart interface.
func (m *MockDatamart) LatestCriterionRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// ApplicationRows implements the Datamart interface.
func (m *MockDatamart) ApplicationRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// HealthHistoryRows implements the Datamart interface.
func (m *MockDatamart) HealthHistoryRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// QualityHistoryRows implements the Datamart interface.
func (m *MockDatamart) QualityHistoryRows(ctx context.Context) ([]schema.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args), args.Error(1)
}

// AppHealthRows implements the Datamart interface.
func (m *MockDatamart) AppHealthRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	args := m.Called(ctx, key)
	return rowsArg(args), args.Error(1)
}

// AppExists implements the Datamart interface.
func (m *MockDatamart) AppExists(ctx context.Context, key schema.ApplicationKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// AppViolationRows implements the Datamart interface.
func (m *MockDatamart) AppViolationRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	args := m.Called(ctx, key)
	return rowsArg(args), args.Error(1)
}

// AppRiskRows implements the Datamart interface.
func (m *MockDatamart) AppRiskRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	args := m.Called(ctx, key)
	return rowsArg(args), args.Error(1)
}

// AppProductivityRows implements the Datamart interface.
func (m *MockDatamart) AppProductivityRows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	args := m.Called(ctx, key)
	return rowsArg(args), args.Error(1)
}

// AppISORows implements the Datamart interface.
func (m *MockDatamart) AppISORows(ctx context.Context, key schema.ApplicationKey) ([]schema.Row, error) {
	args := m.Called(ctx, key)
	return rowsArg(args), args.Error(1)
}

// Status implements the Datamart interface.
func (m *MockDatamart) Status(ctx context.Context) (schema.DatamartStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.DatamartStatus), args.Error(1)
}

// Close implements the Datamart interface.
func (m *MockDatamart) Close() error {
	args := m.Called()
	return args.Error(0)
}

func rowsArg(args mock.Arguments) []schema.Row {
	rows, _ := args.Get(0).([]schema.Row)
	return rows
}
