package extract

import (
	"context"
	"fmt"
	"runtime"

	"github.com/otiai10/gosseract/v2"

	"github.com/vokinneberg/handwritten-math-solver/internal/imaging"
)

// Tesseract implements OCREngine with the gosseract client.
// A client is created per call since a single client is not safe for concurrent use.
// At most GOMAXPROCS native calls run at once, abandoned ones included.
type Tesseract struct {
	languages     []string
	clientFactory func() *gosseract.Client
	slots         chan struct{}
}

// NewTesseract creates a Tesseract engine for the given languages
func NewTesseract(languages ...string) *Tesseract {
	return &Tesseract{
		languages:     append([]string(nil), languages...),
		clientFactory: gosseract.NewClient,
		slots:         make(chan struct{}, runtime.GOMAXPROCS(0)),
	}
}

func (t *Tesseract) Name() string { return "tesseract" }

// Version reports the linked libtesseract version
func (t *Tesseract) Version() string { return gosseract.Version() }

// Recognize returns the raw recognized text. The native call cannot be
// interrupted, so on ctx expiry it is abandoned and finishes in the background,
// holding its slot until it returns.
func (t *Tesseract) Recognize(ctx context.Context, img *imaging.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := img.PNG()
	if err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case t.slots <- struct{}{}:
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() { <-t.slots }()
		text, err := t.recognize(data)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

func (t *Tesseract) recognize(data []byte) (string, error) {
	c := t.clientFactory()
	defer c.Close()

	if len(t.languages) > 0 {
		if err := c.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
