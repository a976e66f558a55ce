// Package prompt builds the text sent to the answer model.
package prompt

import (
	"fmt"
	"strings"
)

const preambleTemplate = "User asked: %s. If an image is provided, it is a handwritten math problem. Please extract the math problem from the image and solve it."

// Compose joins the question preamble, OCR text and caption in that order.
// Empty OCR text or caption is left out.
func Compose(question, ocrText, caption string) string {
	var b strings.Builder
	fmt.Fprintf(&b, preambleTemplate, question)

	if ocrText != "" {
		b.WriteString(" OCR extracted text: ")
		b.WriteString(strings.TrimSpace(ocrText))
	}
	if caption != "" {
		b.WriteString(" Image caption: ")
		b.WriteString(strings.TrimSpace(caption))
	}

	return b.String()
}
