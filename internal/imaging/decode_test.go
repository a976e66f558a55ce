package imaging

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// grayTIFF builds an uncompressed 8-bit grayscale TIFF header with a single
// empty strip. Only the header is valid; there is no pixel data.
func grayTIFF(t *testing.T, width, height uint32) string {
	t.Helper()
	type entry struct {
		tag, typ uint16
		value    uint32
	}
	const (
		typeShort = 3
		typeLong  = 4
	)
	entries := []entry{
		{tag: 256, typ: typeLong, value: width},
		{tag: 257, typ: typeLong, value: height},
		{tag: 258, typ: typeShort, value: 8},
		{tag: 262, typ: typeShort, value: 1},
		{tag: 273, typ: typeLong, value: 0},
		{tag: 279, typ: typeLong, value: 0},
	}

	var buf bytes.Buffer
	buf.WriteString("II")
	fields := []any{uint16(42), uint32(8), uint16(len(entries))}
	for _, e := range entries {
		fields = append(fields, e.tag, e.typ, uint32(1), e.value)
	}
	fields = append(fields, uint32(0))
	for _, v := range fields {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("Failed to write tiff: %v", err)
		}
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecoder_Decode_NoImage(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty string", payload: ""},
		{name: "whitespace", payload: "   \n"},
		{name: "data url header only", payload: "data:image/png;base64,"},
		{name: "header with trailing whitespace", payload: "data:image/png;base64,  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewDecoder(0).Decode(tt.payload)
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if img != nil {
				t.Errorf("Decode() = %+v, want nil image", img)
			}
		})
	}
}

func TestDecoder_Decode_Errors(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 4, 4))

	tests := []struct {
		name        string
		payload     string
		maxPixels   int
		errContains string
		errIs       error
	}{
		{
			name:        "invalid base64",
			payload:     "not-base64-!!",
			errContains: "invalid base64 payload",
		},
		{
			name:        "not an image",
			payload:     "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello world")),
			errContains: "cannot identify image file",
		},
		{
			name:        "image too large",
			payload:     encodePNG(t, small),
			maxPixels:   10,
			errContains: "exceeds 10 pixels",
			errIs:       ErrImageTooLarge,
		},
		{
			name:        "huge tiff over limit",
			payload:     grayTIFF(t, 0xFFFFFFFF, 0xFFFFFFFF),
			maxPixels:   40_000_000,
			errContains: "exceeds 40000000 pixels",
			errIs:       ErrImageTooLarge,
		},
		{
			name:        "huge tiff without limit",
			payload:     grayTIFF(t, 0xFFFFFFFF, 0xFFFFFFFF),
			errContains: "failed to decode image",
		},
		{
			name:        "zero width tiff",
			payload:     grayTIFF(t, 0, 16),
			errContains: "invalid dimensions 0x16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewDecoder(tt.maxPixels).Decode(tt.payload)
			if err == nil {
				t.Fatalf("Decode() expected error but got image %+v", img)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Decode() error = %v, want error containing %q", err, tt.errContains)
			}
			if tt.errIs != nil && !errors.Is(err, tt.errIs) {
				t.Errorf("Decode() error = %v, want errors.Is %v", err, tt.errIs)
			}
		})
	}
}

func TestDecoder_Decode_PNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	// Fully transparent pixel keeps its stored colour once alpha is dropped
	src.SetNRGBA(2, 1, color.NRGBA{R: 40, G: 50, B: 60, A: 0})

	tests := []struct {
		name    string
		payload string
	}{
		{name: "data url", payload: "data:image/png;base64," + encodePNG(t, src)},
		{name: "raw base64", payload: encodePNG(t, src)},
		{name: "unpadded base64", payload: strings.TrimRight(encodePNG(t, src), "=")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewDecoder(1000).Decode(tt.payload)
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if img.Width != 3 || img.Height != 2 {
				t.Fatalf("Decode() size = %dx%d, want 3x2", img.Width, img.Height)
			}
			if img.Format != "png" {
				t.Errorf("Decode() format = %q, want png", img.Format)
			}
			if len(img.Pix) != 3*2*3 {
				t.Fatalf("Decode() len(Pix) = %d, want 18", len(img.Pix))
			}

			if r, g, b := img.RGB(0, 0); r != 255 || g != 255 || b != 255 {
				t.Errorf("RGB(0,0) = %d,%d,%d, want white", r, g, b)
			}
			if r, g, b := img.RGB(1, 0); r != 10 || g != 20 || b != 30 {
				t.Errorf("RGB(1,0) = %d,%d,%d, want 10,20,30", r, g, b)
			}
			if r, g, b := img.RGB(2, 1); r != 40 || g != 50 || b != 60 {
				t.Errorf("RGB(2,1) = %d,%d,%d, want 40,50,60", r, g, b)
			}
		})
	}
}

func TestImage_PNG(t *testing.T) {
	img := &Image{Width: 2, Height: 1, Pix: []uint8{255, 0, 0, 0, 0, 255}}

	data, err := img.PNG()
	if err != nil {
		t.Fatalf("PNG() unexpected error: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() unexpected error: %v", err)
	}
	r, _, b, a := decoded.At(1, 0).RGBA()
	if r != 0 || b != 0xffff || a != 0xffff {
		t.Errorf("pixel (1,0) = r%d b%d a%d, want opaque blue", r, b, a)
	}
}

func TestStripDataURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "data:image/png;base64,QUJD", want: "QUJD"},
		{in: "QUJD", want: "QUJD"},
		{in: "a,b,c", want: "c"},
		{in: "data:image/png;base64,", want: ""},
	}

	for _, tt := range tests {
		if got := StripDataURL(tt.in); got != tt.want {
			t.Errorf("StripDataURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
