package synth

import (
	"github.com/castinsight/castdash/schema"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

var _ Provider = &MockProvider{} // Compile-time check

// HealthTrend implements the Provider interface.
func (m *MockProvider) HealthTrend(anchor *float64, months int) schema.HealthTrend {
	args := m.Called(anchor, months)
	return args.Get(0).(schema.HealthTrend)
}

// QualityTrend implements the Provider interface.
func (m *MockProvider) QualityTrend(anchors schema.QualityAnchors, months int) schema.QualityTrend {
	args := m.Called(anchors, months)
	return args.Get(0).(schema.QualityTrend)
}

// CWEFindings implements the Provider interface.
func (m *MockProvider) CWEFindings(key schema.ApplicationKey) []schema.CWEFinding {
	args := m.Called(key)
	findings, _ := args.Get(0).([]schema.CWEFinding)
	return findings
}
