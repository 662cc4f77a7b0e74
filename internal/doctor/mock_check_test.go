package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check with typed expectation helpers.
type MockCheck struct {
	mock.Mock
}

// NewMockCheck creates a MockCheck whose expectations are asserted when t ends.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockCheckExpecter records expectations on a MockCheck.
type MockCheckExpecter struct {
	mock *mock.Mock
}

// EXPECT starts an expectation.
func (m *MockCheck) EXPECT() *MockCheckExpecter {
	return &MockCheckExpecter{mock: &m.Mock}
}

// Name implements Check.
func (m *MockCheck) Name() string {
	ret := m.Called()
	return ret.String(0)
}

// Category implements Check.
func (m *MockCheck) Category() string {
	ret := m.Called()
	return ret.String(0)
}

// Run implements Check.
func (m *MockCheck) Run(ctx context.Context) *CheckResult {
	ret := m.Called(ctx)
	result, _ := ret.Get(0).(*CheckResult)
	return result
}

// MockCheckNameCall is an expectation on Name.
type MockCheckNameCall struct {
	*mock.Call
}

// Name expects a call to Name.
func (e *MockCheckExpecter) Name() *MockCheckNameCall {
	return &MockCheckNameCall{Call: e.mock.On("Name")}
}

// Return sets the returned name.
func (c *MockCheckNameCall) Return(name string) *MockCheckNameCall {
	c.Call.Return(name)
	return c
}

// Maybe marks the call optional.
func (c *MockCheckNameCall) Maybe() *MockCheckNameCall {
	c.Call.Maybe()
	return c
}

// MockCheckRunCall is an expectation on Run.
type MockCheckRunCall struct {
	*mock.Call
}

// Run expects a call to Run with ctx.
func (e *MockCheckExpecter) Run(ctx any) *MockCheckRunCall {
	return &MockCheckRunCall{Call: e.mock.On("Run", ctx)}
}

// Return sets the returned result.
func (c *MockCheckRunCall) Return(result *CheckResult) *MockCheckRunCall {
	c.Call.Return(result)
	return c
}
