package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLLMProvider is a mock implementation of the llm.Provider interface
type MockLLMProvider struct {
	mock.Mock
}

func (m *MockLLMProvider) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func (m *MockLLMProvider) Name() string {
	return "mock"
}

func (m *MockLLMProvider) Model() string {
	return "mock-model"
}
