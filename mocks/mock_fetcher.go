package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"imgtext/internal/domain"
)

// MockImageFetcher is a mock implementation of port.ImageFetcher.
type MockImageFetcher struct {
	mock.Mock
}

func (m *MockImageFetcher) FetchImage(ctx context.Context, ref domain.ImageReference) (*domain.RawImage, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawImage), args.Error(1)
}

// MockPageFetcher is a mock implementation of port.PageFetcher.
type MockPageFetcher struct {
	mock.Mock
}

func (m *MockPageFetcher) FetchPage(ctx context.Context, pageURL *url.URL) ([]byte, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockImageNormalizer is a mock implementation of port.ImageNormalizer.
type MockImageNormalizer struct {
	mock.Mock
}

func (m *MockImageNormalizer) Normalize(img *domain.RawImage, ref domain.ImageReference) (*domain.RawImage, error) {
	args := m.Called(img, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawImage), args.Error(1)
}
