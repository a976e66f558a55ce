package solver

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vokinneberg/handwritten-math-solver/internal/extract"
	"github.com/vokinneberg/handwritten-math-solver/internal/imaging"
	"github.com/vokinneberg/handwritten-math-solver/internal/prompt"
	"github.com/vokinneberg/handwritten-math-solver/internal/types"
)

//go:generate mockgen -source=pipeline.go -destination=mock_pipeline.go -package=solver Extractor,Answerer

// Extractor defines the interface for OCR and captioning of a decoded image
type Extractor interface {
	Extract(ctx context.Context, img *imaging.Image) extract.Result
}

// Answerer defines the interface for the external reasoning model.
// A nil image means a text-only call.
type Answerer interface {
	Answer(ctx context.Context, prompt string, img *imaging.Image) (string, error)
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithAnswerTimeout bounds each call to the answer model
func WithAnswerTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.answerTimeout = d }
}

// WithSkipBlank skips OCR and captioning when the image is classified as blank
func WithSkipBlank(skip bool) Option {
	return func(p *Pipeline) { p.skipBlank = skip }
}

// Pipeline orchestrates decode, blank detection, extraction, prompt composition and answering
type Pipeline struct {
	decoder       *imaging.Decoder
	extractor     Extractor
	answerer      Answerer
	answerTimeout time.Duration
	skipBlank     bool
}

// NewPipeline creates a new pipeline
func NewPipeline(decoder *imaging.Decoder, extractor Extractor, answerer Answerer, opts ...Option) *Pipeline {
	p := &Pipeline{
		decoder:   decoder,
		extractor: extractor,
		answerer:  answerer,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask answers a question about an optional base64 image. It never fails:
// every error ends up in the returned answer text.
func (p *Pipeline) Ask(ctx context.Context, question, image string) types.AskResponse {
	var (
		img     *imaging.Image
		ocrText string
		caption string
	)

	if image == "" {
		slog.Info("No image data received in request")
	} else {
		slog.Info("Received base64 image", "length", len(image))

		decoded, err := p.decoder.Decode(image)
		switch {
		case err != nil:
			slog.Error("Error processing image", "error", err)
			ocrText = extract.ErrorText(err)
		case decoded == nil:
			slog.Info("Image data is empty after stripping header")
		default:
			img = decoded
			ocrText, caption = p.extract(ctx, img)
		}
	}

	composed := prompt.Compose(question, ocrText, caption)

	answer, err := p.answer(ctx, composed, img)
	if err != nil {
		slog.Error("Error from answer model", "error", err)
		return types.AskResponse{Answer: "Error: " + err.Error()}
	}

	slog.Info("Answer generated", "answer", answer)
	return types.AskResponse{Answer: answer}
}

// extract runs blank detection and then OCR and captioning.
// It returns the OCR slot text (possibly an error string) and the caption.
func (p *Pipeline) extract(ctx context.Context, img *imaging.Image) (string, string) {
	verdict, err := imaging.DetectBlank(img)
	if err != nil {
		slog.Warn("Blank detection failed, treating image as non-blank", "error", err)
	} else {
		slog.Info("Non-white pixels", "non_white", verdict.NonWhite, "total", verdict.Total, "ratio", verdict.Ratio)
		if verdict.Blank {
			slog.Info("Image appears to be blank (almost all white)")
			if p.skipBlank {
				return "", ""
			}
		} else {
			slog.Info("Image has drawing, proceeding with OCR and captioning")
		}
	}

	res := p.extractor.Extract(ctx, img)
	if res.Err != nil {
		slog.Error("Error processing image", "error", res.Err)
		return res.Text(), ""
	}

	slog.Info("OCR extracted text", "text", res.OCRText)
	slog.Info("Image caption", "caption", res.Caption)
	return res.OCRText, res.Caption
}

func (p *Pipeline) answer(ctx context.Context, composed string, img *imaging.Image) (string, error) {
	if p.answerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.answerTimeout)
		defer cancel()
	}

	if img != nil {
		slog.Info("Sending prompt and image for multimodal analysis")
	} else {
		slog.Info("Sending prompt only (no image provided or could not decode image)")
	}

	answer, err := p.answerer.Answer(ctx, composed, img)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
