// Package extract pulls OCR text and a caption out of a decoded image.
// Both collaborators are external engines behind small interfaces so they can
// be backed by native libraries or hosted models.
package extract

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vokinneberg/handwritten-math-solver/internal/imaging"
)

const errorPrefix = "Error processing image: "

//go:generate mockgen -source=extractor.go -destination=mock_engines.go -package=extract OCREngine,Captioner

// OCREngine recognizes text in an image
type OCREngine interface {
	Name() string
	Recognize(ctx context.Context, img *imaging.Image) (string, error)
}

// Captioner describes an image in one sentence
type Captioner interface {
	Name() string
	Caption(ctx context.Context, img *imaging.Image) (string, error)
}

// Result is the outcome of extraction. When Err is set both text fields are empty.
type Result struct {
	OCRText string
	Caption string
	Err     error
}

// Text returns the value for the prompt's OCR slot: the recognized text, or
// the rendered error when extraction failed.
func (r Result) Text() string {
	if r.Err != nil {
		return ErrorText(r.Err)
	}
	return r.OCRText
}

// ErrorText renders an image-processing failure for the OCR slot
func ErrorText(err error) string {
	return errorPrefix + err.Error()
}

// Extractor runs OCR and captioning for an image
type Extractor struct {
	ocr            OCREngine
	captioner      Captioner
	ocrTimeout     time.Duration
	captionTimeout time.Duration
}

// NewExtractor creates an extractor; a zero timeout leaves the call bounded only by ctx
func NewExtractor(ocr OCREngine, captioner Captioner, ocrTimeout, captionTimeout time.Duration) *Extractor {
	return &Extractor{
		ocr:            ocr,
		captioner:      captioner,
		ocrTimeout:     ocrTimeout,
		captionTimeout: captionTimeout,
	}
}

// Extract runs OCR and captioning concurrently and waits for both.
// A failure of either call discards both outputs.
func (e *Extractor) Extract(ctx context.Context, img *imaging.Image) Result {
	var ocrText, caption string

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		callCtx, cancel := withTimeout(gctx, e.ocrTimeout)
		defer cancel()

		text, err := e.ocr.Recognize(callCtx, img)
		if err != nil {
			return fmt.Errorf("%s ocr failed: %w", e.ocr.Name(), err)
		}
		ocrText = text
		return nil
	})

	g.Go(func() error {
		callCtx, cancel := withTimeout(gctx, e.captionTimeout)
		defer cancel()

		text, err := e.captioner.Caption(callCtx, img)
		if err != nil {
			return fmt.Errorf("%s captioning failed: %w", e.captioner.Name(), err)
		}
		caption = text
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{Err: err}
	}

	return Result{OCRText: ocrText, Caption: caption}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// NoopCaptioner returns an empty caption; used when captioning is disabled
type NoopCaptioner struct{}

func (NoopCaptioner) Name() string { return "noop" }

func (NoopCaptioner) Caption(context.Context, *imaging.Image) (string, error) {
	return "", nil
}
