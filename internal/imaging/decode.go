package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	// Registered decoders for image.Decode
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageTooLarge is returned when the declared image area exceeds the decoder limit
var ErrImageTooLarge = errors.New("image too large")

// Image is a decoded RGB bitmap, 3 bytes per pixel in row-major order
type Image struct {
	Width  int
	Height int
	Pix    []uint8
	// Format is the name of the source codec, e.g. "png" or "jpeg"
	Format string
}

// RGB returns the colour of the pixel at (x, y)
func (im *Image) RGB(x, y int) (r, g, b uint8) {
	i := (y*im.Width + x) * 3
	return im.Pix[i], im.Pix[i+1], im.Pix[i+2]
}

// PNG encodes the bitmap as an opaque PNG
func (im *Image) PNG() ([]byte, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			r, g, b := im.RGB(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Decoder turns base64 image payloads into RGB bitmaps
type Decoder struct {
	maxPixels int
}

// NewDecoder creates a decoder; maxPixels <= 0 disables the size check
func NewDecoder(maxPixels int) *Decoder {
	return &Decoder{maxPixels: maxPixels}
}

// Decode decodes a base64 payload, optionally prefixed by a data-URL header.
// An empty payload yields (nil, nil): there is no image to process.
func (d *Decoder) Decode(payload string) (img *Image, err error) {
	// Codecs panic on headers that pass DecodeConfig but cannot be allocated.
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("failed to decode image: %v", r)
		}
	}()

	data := StripDataURL(payload)
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}

	raw, err := decodeBase64(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot identify image file: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("cannot identify image file: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if d.maxPixels > 0 && cfg.Width > d.maxPixels/cfg.Height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, d.maxPixels)
	}

	decoded, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	out := toRGB(decoded)
	out.Format = format
	return out, nil
}

// StripDataURL drops everything up to and including the last comma
func StripDataURL(payload string) string {
	if idx := strings.LastIndexByte(payload, ','); idx >= 0 {
		return payload[idx+1:]
	}
	return payload
}

// decodeBase64 tries padded standard, unpadded standard, then URL-safe alphabets
func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	if b, err2 := base64.RawStdEncoding.DecodeString(s); err2 == nil {
		return b, nil
	}
	if b, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return b, nil
	}
	return nil, err
}

// toRGB drops alpha from the non-premultiplied colour of every pixel
func toRGB(img image.Image) *Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := &Image{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*3),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			i += 3
		}
	}
	return out
}
