// Package parser turns uploaded PDF bytes into normalized plain text.
// It is the only place that touches the PDF library; callers get back text or
// a typed failure, nothing else.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNotPDF is returned when the payload does not carry a PDF signature.
	ErrNotPDF = errors.New("invalid PDF file: missing PDF signature")
	// ErrEmptyFile is returned for a zero-length payload.
	ErrEmptyFile = errors.New("invalid PDF buffer: buffer is empty")
	// ErrUnreadable is returned when the PDF library cannot extract any text.
	ErrUnreadable = errors.New("failed to parse resume PDF")
)

var (
	controlChars  = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	multiSpaces   = regexp.MustCompile(`[ \t]{2,}`)
	lineEdges     = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
)

// ExtractText extracts and normalizes plain text from PDF bytes.
func ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) < 4 || !bytes.HasPrefix(data, []byte("%PDF")) {
		return "", ErrNotPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := NormalizeText(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("%w: no extractable text", ErrUnreadable)
	}
	return text, nil
}

// NormalizeText strips control characters, collapses runs of whitespace and
// trims line edges while preserving paragraph breaks.
func NormalizeText(text string) string {
	text = controlChars.ReplaceAllString(text, "")
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	text = multiSpaces.ReplaceAllString(text, " ")
	text = lineEdges.ReplaceAllString(text, "")
	// line-edge trimming can expose new triple newlines
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
