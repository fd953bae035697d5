package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"imgtext/internal/config"
	"imgtext/internal/domain"
	"imgtext/internal/extractor"
	"imgtext/internal/port"
	"imgtext/internal/recognizer"
	"imgtext/internal/resolver"
)

// ExtractRequest is the DTO for page extraction requests.
type ExtractRequest struct {
	TargetURL  string
	Credential string
}

// AnalyzeRequest is the DTO for single-image analysis requests. ImageData is
// base64, optionally carrying a data:image/...;base64, prefix.
type AnalyzeRequest struct {
	ImageData  string
	Credential string
}

// ExtractionService defines the text extraction contract.
type ExtractionService interface {
	ExtractFromPage(ctx context.Context, req ExtractRequest) (*domain.BatchResult, error)
	AnalyzeImage(ctx context.Context, req AnalyzeRequest) (*domain.RecognitionOutcome, error)
}

type extractionService struct {
	pages        port.PageFetcher
	extractor    *extractor.Extractor
	orchestrator *Orchestrator
	recognizers  port.RecognizerFactory
	maxImages    int
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	pages port.PageFetcher,
	ext *extractor.Extractor,
	orchestrator *Orchestrator,
	recognizers port.RecognizerFactory,
	cfg *config.BatchConfig,
) ExtractionService {
	return &extractionService{
		pages:        pages,
		extractor:    ext,
		orchestrator: orchestrator,
		recognizers:  recognizers,
		maxImages:    cfg.MaxImages,
	}
}

func (s *extractionService) ExtractFromPage(ctx context.Context, req ExtractRequest) (*domain.BatchResult, error) {
	if req.Credential == "" {
		return nil, domain.ErrMissingCredential
	}
	if strings.TrimSpace(req.TargetURL) == "" {
		return nil, domain.ErrMissingTarget
	}
	pageURL, err := resolver.ParseTarget(req.TargetURL)
	if err != nil {
		return nil, err
	}

	rec, err := s.recognizers.NewRecognizer(req.Credential)
	if err != nil {
		return nil, fmt.Errorf("creating recognizer: %w", err)
	}

	entry := log.WithField("target", pageURL.String())
	entry.Info("extractionService.ExtractFromPage: fetching page")

	body, err := s.pages.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPageFetchFailed, err)
	}
	doc, err := extractor.ParseDocument(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing html: %w", domain.ErrPageFetchFailed, err)
	}

	refs := s.extractor.Extract(doc, pageURL)
	entry.Infof("extractionService.ExtractFromPage: %d image references found", len(refs))
	if len(refs) == 0 {
		return nil, domain.ErrNoImagesFound
	}
	if s.maxImages > 0 && len(refs) > s.maxImages {
		entry.Warnf("extractionService.ExtractFromPage: capping %d references at %d", len(refs), s.maxImages)
		refs = refs[:s.maxImages]
	}

	return s.orchestrator.Run(ctx, refs, rec), nil
}

var dataImagePrefix = regexp.MustCompile(`^data:image/[\w.+-]+;base64,`)

func (s *extractionService) AnalyzeImage(ctx context.Context, req AnalyzeRequest) (*domain.RecognitionOutcome, error) {
	if req.Credential == "" {
		return nil, domain.ErrMissingCredential
	}
	data := strings.TrimSpace(dataImagePrefix.ReplaceAllString(strings.TrimSpace(req.ImageData), ""))
	if data == "" {
		return nil, domain.ErrMissingImageData
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return nil, domain.ErrInvalidImageData
	}

	rec, err := s.recognizers.NewRecognizer(req.Credential)
	if err != nil {
		return nil, fmt.Errorf("creating recognizer: %w", err)
	}

	outcome, err := Recognize(ctx, rec, data)
	if err != nil {
		var rlErr *recognizer.RateLimitError
		if errors.As(err, &rlErr) {
			return nil, fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRecognitionFailed, err)
	}
	return outcome, nil
}
