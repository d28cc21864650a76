package service

import (
	"context"

	"edugen/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockTextModel ---
type MockTextModel struct {
	mock.Mock
}

func (m *MockTextModel) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
