package extract

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF assembles a one-page PDF containing the given text, with a
// correctly computed cross-reference table.
func minimalPDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n",
		fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
		"5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		buf.WriteString(obj)
	}

	xrefStart := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(objects)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart))
	return buf.Bytes()
}

func TestText_SinglePage(t *testing.T) {
	content := minimalPDF("Hello World")

	text, err := Text(content, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello World")
}

func TestText_EmptyInput(t *testing.T) {
	_, err := Text(nil, nil)
	var parseErr *DocumentParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "empty")
}

func TestText_NotAPDF(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "plain text", content: []byte("this is not a pdf")},
		{name: "binary garbage", content: []byte{0x00, 0x01, 0x02, 0xFF, 0xFE}},
		{name: "truncated header", content: []byte("%PDF-1.4\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Text(tt.content, nil)
			var parseErr *DocumentParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestText_SizeLimit(t *testing.T) {
	content := minimalPDF("Hello")

	_, err := Text(content, &Options{MaxDocumentBytes: 10})
	var parseErr *DocumentParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "size limit")

	// A generous limit accepts the same document.
	_, err = Text(content, &Options{MaxDocumentBytes: 1 << 20})
	assert.NoError(t, err)
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", normalizeWhitespace("  a\n\tb   c "))
	assert.Equal(t, "", normalizeWhitespace(" \n\t "))
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "plain", sanitizeUTF8("plain"))

	broken := string([]byte{'a', 0xFF, 'b'})
	cleaned := sanitizeUTF8(broken)
	assert.True(t, strings.HasPrefix(cleaned, "a"))
	assert.True(t, strings.HasSuffix(cleaned, "b"))
	assert.True(t, len(cleaned) >= 2)
}
