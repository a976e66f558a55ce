package solver

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/vokinneberg/handwritten-math-solver/internal/extract"
	"github.com/vokinneberg/handwritten-math-solver/internal/imaging"
)

const preamble = "User asked: solve x. If an image is provided, it is a handwritten math problem. Please extract the math problem from the image and solve it."

// pngDataURL renders a white 100x100 canvas with the given number of black rows
func pngDataURL(t *testing.T, blackRows int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 40, 100, 40+blackRows), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestPipeline_Ask(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		image      func(t *testing.T) string
		opts       []Option
		setupMocks func(*MockExtractor, *MockAnswerer)
		wantAnswer string
	}{
		{
			name:     "question only",
			question: "2+2=",
			image:    func(*testing.T) string { return "" },
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ans.EXPECT().
					Answer(gomock.Any(), "User asked: 2+2=. If an image is provided, it is a handwritten math problem. Please extract the math problem from the image and solve it.", gomock.Nil()).
					Return("4", nil)
			},
			wantAnswer: "4",
		},
		{
			name:     "empty data url is no image",
			question: "solve x",
			image:    func(*testing.T) string { return "data:image/png;base64," },
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ans.EXPECT().Answer(gomock.Any(), preamble, gomock.Nil()).Return("x = 1", nil)
			},
			wantAnswer: "x = 1",
		},
		{
			name:     "invalid base64 becomes ocr error text",
			question: "solve x",
			image:    func(*testing.T) string { return "not-base64-!!" },
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ans.EXPECT().Answer(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
					func(ctx context.Context, prompt string, img *imaging.Image) (string, error) {
						if !strings.HasPrefix(prompt, preamble+" OCR extracted text: Error processing image: invalid base64 payload") ||
							strings.Contains(prompt, "Image caption:") {
							return "unexpected prompt: " + prompt, nil
						}
						return "cannot read the image", nil
					})
			},
			wantAnswer: "cannot read the image",
		},
		{
			name:     "drawing is extracted and sent with image",
			question: "solve x",
			image:    func(t *testing.T) string { return pngDataURL(t, 5) },
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ext.EXPECT().Extract(gomock.Any(), gomock.Not(gomock.Nil())).
					Return(extract.Result{OCRText: "x+1=2\n", Caption: "a handwritten equation"})
				ans.EXPECT().
					Answer(gomock.Any(), preamble+" OCR extracted text: x+1=2 Image caption: a handwritten equation", gomock.Not(gomock.Nil())).
					Return("x = 1", nil)
			},
			wantAnswer: "x = 1",
		},
		{
			name:     "extraction failure keeps the image",
			question: "solve x",
			image:    func(t *testing.T) string { return pngDataURL(t, 5) },
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ext.EXPECT().Extract(gomock.Any(), gomock.Any()).
					Return(extract.Result{Err: errors.New("tesseract ocr failed: boom")})
				ans.EXPECT().
					Answer(gomock.Any(), preamble+" OCR extracted text: Error processing image: tesseract ocr failed: boom", gomock.Not(gomock.Nil())).
					Return("x = 1", nil)
			},
			wantAnswer: "x = 1",
		},
		{
			name:     "blank image is still extracted by default",
			question: "solve x",
			image:    func(t *testing.T) string { return pngDataURL(t, 0) },
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ext.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(extract.Result{Caption: "a white square"})
				ans.EXPECT().
					Answer(gomock.Any(), preamble+" Image caption: a white square", gomock.Not(gomock.Nil())).
					Return("The image is empty.", nil)
			},
			wantAnswer: "The image is empty.",
		},
		{
			name:     "blank image skips extraction when enabled",
			question: "solve x",
			image:    func(t *testing.T) string { return pngDataURL(t, 0) },
			opts:     []Option{WithSkipBlank(true)},
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ans.EXPECT().Answer(gomock.Any(), preamble, gomock.Not(gomock.Nil())).Return("The image is empty.", nil)
			},
			wantAnswer: "The image is empty.",
		},
		{
			name:     "drawing is extracted even when skip blank is enabled",
			question: "solve x",
			image:    func(t *testing.T) string { return pngDataURL(t, 2) },
			opts:     []Option{WithSkipBlank(true)},
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ext.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(extract.Result{OCRText: "7"})
				ans.EXPECT().Answer(gomock.Any(), preamble+" OCR extracted text: 7", gomock.Any()).Return("7", nil)
			},
			wantAnswer: "7",
		},
		{
			name:     "answer model error is returned in the answer",
			question: "2+2=",
			image:    func(*testing.T) string { return "" },
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ans.EXPECT().Answer(gomock.Any(), gomock.Any(), gomock.Nil()).Return("", errors.New("quota exceeded"))
			},
			wantAnswer: "Error: quota exceeded",
		},
		{
			name:     "answer is trimmed",
			question: "2+2=",
			image:    func(*testing.T) string { return "" },
			setupMocks: func(ext *MockExtractor, ans *MockAnswerer) {
				ans.EXPECT().Answer(gomock.Any(), gomock.Any(), gomock.Nil()).Return("\n 4 \n", nil)
			},
			wantAnswer: "4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockExtractor := NewMockExtractor(ctrl)
			mockAnswerer := NewMockAnswerer(ctrl)
			tt.setupMocks(mockExtractor, mockAnswerer)

			pipeline := NewPipeline(imaging.NewDecoder(1_000_000), mockExtractor, mockAnswerer, tt.opts...)
			resp := pipeline.Ask(context.Background(), tt.question, tt.image(t))

			if resp.Answer != tt.wantAnswer {
				t.Errorf("Ask() answer = %q, want %q", resp.Answer, tt.wantAnswer)
			}
		})
	}
}

func TestPipeline_Ask_AnswerTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExtractor := NewMockExtractor(ctrl)
	mockAnswerer := NewMockAnswerer(ctrl)
	mockAnswerer.EXPECT().Answer(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
		func(ctx context.Context, prompt string, img *imaging.Image) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

	pipeline := NewPipeline(imaging.NewDecoder(0), mockExtractor, mockAnswerer, WithAnswerTimeout(10*time.Millisecond))
	resp := pipeline.Ask(context.Background(), "2+2=", "")

	if resp.Answer != "Error: "+context.DeadlineExceeded.Error() {
		t.Errorf("Ask() answer = %q, want deadline error", resp.Answer)
	}
}

func TestPipeline_Ask_OversizedImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExtractor := NewMockExtractor(ctrl)
	mockAnswerer := NewMockAnswerer(ctrl)
	mockAnswerer.EXPECT().Answer(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
		func(ctx context.Context, prompt string, img *imaging.Image) (string, error) {
			if !strings.Contains(prompt, "Error processing image: image too large") {
				t.Errorf("Answer() prompt = %q, want size error", prompt)
			}
			return "too big", nil
		})

	pipeline := NewPipeline(imaging.NewDecoder(100), mockExtractor, mockAnswerer)
	resp := pipeline.Ask(context.Background(), "solve x", pngDataURL(t, 5))

	if resp.Answer != "too big" {
		t.Errorf("Ask() answer = %q, want %q", resp.Answer, "too big")
	}
}
