package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"imgtext/internal/port"
)

// MockTextRecognizer is a mock implementation of port.TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) Recognize(ctx context.Context, input port.RecognizeInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// MockRecognizerFactory is a mock implementation of port.RecognizerFactory.
type MockRecognizerFactory struct {
	mock.Mock
}

func (m *MockRecognizerFactory) NewRecognizer(credential string) (port.TextRecognizer, error) {
	args := m.Called(credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.TextRecognizer), args.Error(1)
}
