// Package extract converts uploaded resume documents to plain text for the
// extraction pipeline.
package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxDocumentBytes caps accepted document size. Resumes are small;
// anything larger is either not a resume or would blow up prompt cost.
const DefaultMaxDocumentBytes = 10 << 20 // 10 MiB

// Options configures extraction behavior.
type Options struct {
	// MaxDocumentBytes rejects documents larger than this. Zero means
	// DefaultMaxDocumentBytes.
	MaxDocumentBytes int
}

// Text extracts best-effort plain text from raw PDF bytes. Text within a page
// is whitespace-joined; pages are newline-joined. Pages with no extractable
// text (e.g. scanned images) are skipped, so an image-only PDF yields an
// empty string and a nil error. Malformed bytes fail with *DocumentParseError.
func Text(content []byte, opts *Options) (text string, err error) {
	// The pdf library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DocumentParseError{Message: fmt.Sprintf("not a readable PDF: %v", r)}
		}
	}()

	maxBytes := DefaultMaxDocumentBytes
	if opts != nil && opts.MaxDocumentBytes > 0 {
		maxBytes = opts.MaxDocumentBytes
	}

	if len(content) == 0 {
		return "", &DocumentParseError{Message: "empty document"}
	}
	if len(content) > maxBytes {
		return "", &DocumentParseError{Message: "document exceeds size limit"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &DocumentParseError{Message: "not a readable PDF", Cause: err}
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable page, not an unreadable document.
			continue
		}

		pageText = normalizeWhitespace(pageText)
		if pageText == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	return sanitizeUTF8(strings.Join(pages, "\n")), nil
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// sanitizeUTF8 replaces invalid byte sequences so downstream prompt building
// never sees broken encoding.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		sb.WriteRune(r)
	}
	return sb.String()
}
