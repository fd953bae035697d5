package service

import (
	"context"
	"encoding/base64"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"imgtext/internal/domain"
	"imgtext/internal/port"
	"imgtext/internal/recognizer"
)

// Orchestrator drives each image through fetch, normalize and recognize.
// With concurrency 1 (the default) items run strictly one after another; a
// larger value bounds the number of items in flight. Results always keep
// discovery order.
type Orchestrator struct {
	fetcher     port.ImageFetcher
	normalizer  port.ImageNormalizer
	concurrency int
}

// NewOrchestrator creates an Orchestrator. concurrency values below 1 mean sequential.
func NewOrchestrator(fetcher port.ImageFetcher, normalizer port.ImageNormalizer, concurrency int) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{fetcher: fetcher, normalizer: normalizer, concurrency: concurrency}
}

// batchRun is the state of one Run call. Each slot of results is written by
// exactly one item.
type batchRun struct {
	refs       []domain.ImageReference
	recognizer port.TextRecognizer
	results    []domain.ExtractionResult
}

// Run processes refs in order. Per-item failures are recorded as failed
// results and never stop the batch.
func (o *Orchestrator) Run(ctx context.Context, refs []domain.ImageReference, rec port.TextRecognizer) *domain.BatchResult {
	run := &batchRun{
		refs:       refs,
		recognizer: rec,
		results:    make([]domain.ExtractionResult, len(refs)),
	}

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i := range refs {
		g.Go(func() error {
			run.results[i] = o.processItem(ctx, run, i)
			return nil
		})
	}
	_ = g.Wait()

	out := &domain.BatchResult{Results: run.results, Total: len(refs)}
	for i := range run.results {
		if run.results[i].Success {
			out.SuccessCount++
		} else {
			out.FailureCount++
		}
	}

	log.WithFields(log.Fields{
		"success": out.SuccessCount,
		"failure": out.FailureCount,
		"total":   out.Total,
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	}).Info("orchestrator.Run: batch complete")
	return out
}

func (o *Orchestrator) processItem(ctx context.Context, run *batchRun, i int) domain.ExtractionResult {
	ref := run.refs[i]
	entry := log.WithFields(log.Fields{"item": i + 1, "total": len(run.refs), "url": logRef(ref)})

	stage := domain.StageFetching
	img, err := o.fetcher.FetchImage(ctx, ref)
	if err != nil {
		return failed(entry, ref, stage, err)
	}

	stage = domain.StageNormalizing
	img, err = o.normalizer.Normalize(img, ref)
	if err != nil {
		return failed(entry, ref, stage, err)
	}

	stage = domain.StageRecognizing
	outcome, err := Recognize(ctx, run.recognizer, base64.StdEncoding.EncodeToString(img.Bytes))
	if err != nil {
		return failed(entry, ref, stage, err)
	}

	entry.WithField("outcome", outcome.Kind).Debug("orchestrator.processItem: recognized")
	return domain.ExtractionResult{
		ImageURL: ref.String(),
		Text:     outcome.Text,
		Success:  true,
		Outcome:  outcome.Kind,
		Reason:   outcome.Reason,
		Stage:    domain.StageSucceeded,
	}
}

// Recognize runs the recognizing stage on an already base64-encoded image.
func Recognize(ctx context.Context, rec port.TextRecognizer, imageBase64 string) (*domain.RecognitionOutcome, error) {
	raw, err := rec.Recognize(ctx, port.RecognizeInput{
		ImageBase64: imageBase64,
		MediaType:   domain.RecognitionMediaType,
		Instruction: recognizer.BuildInstruction(),
	})
	if err != nil {
		return nil, err
	}
	outcome := recognizer.Classify(raw)
	return &outcome, nil
}

func failed(entry *log.Entry, ref domain.ImageReference, stage domain.ItemStage, err error) domain.ExtractionResult {
	entry.WithField("stage", stage).Warnf("orchestrator.processItem: item failed: %v", err)
	return domain.ExtractionResult{
		ImageURL: ref.String(),
		Text:     domain.ProcessingFailedText,
		Success:  false,
		Outcome:  domain.OutcomeFailed,
		Reason:   string(stage),
		Stage:    domain.StageFailed,
	}
}

// logRef keeps inline data URIs from flooding the logs.
func logRef(ref domain.ImageReference) string {
	if ref.IsDataURI() {
		return recognizer.Truncate(ref.String(), 48)
	}
	return ref.String()
}
