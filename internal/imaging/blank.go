package imaging

import (
	"errors"
	"fmt"
)

// BlankThreshold is the non-white pixel ratio below which an image counts as blank
const BlankThreshold = 0.005

// ErrEmptyImage is returned when blank detection has no pixels to inspect
var ErrEmptyImage = errors.New("image has no pixels")

// Verdict is the outcome of blank detection
type Verdict struct {
	NonWhite int
	Total    int
	Ratio    float64
	Blank    bool
}

// DetectBlank counts pixels that differ from pure white in any channel.
// The image is blank when fewer than BlankThreshold of its pixels are non-white.
func DetectBlank(img *Image) (Verdict, error) {
	if img == nil {
		return Verdict{}, ErrEmptyImage
	}

	total := img.Width * img.Height
	if total <= 0 {
		return Verdict{}, ErrEmptyImage
	}
	if len(img.Pix) < total*3 {
		return Verdict{}, fmt.Errorf("pixel buffer has %d bytes, want %d", len(img.Pix), total*3)
	}

	nonWhite := 0
	for i := 0; i < total*3; i += 3 {
		if img.Pix[i] != 0xff || img.Pix[i+1] != 0xff || img.Pix[i+2] != 0xff {
			nonWhite++
		}
	}

	ratio := float64(nonWhite) / float64(total)
	return Verdict{
		NonWhite: nonWhite,
		Total:    total,
		Ratio:    ratio,
		Blank:    ratio < BlankThreshold,
	}, nil
}
