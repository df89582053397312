package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const DefaultMaxBytes = 32 << 20

var (
	// ErrInvalidPDF means the input could not be parsed as a PDF.
	ErrInvalidPDF = errors.New("pdf: invalid document")

	// ErrTooLarge means the input exceeds the configured size limit.
	ErrTooLarge = errors.New("pdf: document too large")
)

// Extractor pulls plain text out of PDF documents.
type Extractor struct {
	maxBytes int64
}

// NewExtractor returns an extractor rejecting documents over maxBytes.
// maxBytes <= 0 means DefaultMaxBytes.
func NewExtractor(maxBytes int64) *Extractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Extractor{maxBytes: maxBytes}
}

// ExtractReader reads the whole document from r and extracts its text.
func (e *Extractor) ExtractReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, e.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("pdf: read document: %w", err)
	}
	return e.Extract(data)
}

// Extract returns the text of every page, in page order, one page per line
// group. Pages without text are skipped.
func (e *Extractor) Extract(data []byte) (text string, err error) {
	if int64(len(data)) > e.maxBytes {
		return "", ErrTooLarge
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return "", ErrInvalidPDF
	}

	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf: page %d: %w", i, err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
