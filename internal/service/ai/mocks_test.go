package ai

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockOracle for testing
type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
