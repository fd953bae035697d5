package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"imgtext/internal/domain"
	"imgtext/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ExtractFromPage(ctx context.Context, req service.ExtractRequest) (*domain.BatchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockExtractionService) AnalyzeImage(ctx context.Context, req service.AnalyzeRequest) (*domain.RecognitionOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecognitionOutcome), args.Error(1)
}
