package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// DefaultMaxFileSize limits how large a single PDF may be.
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// maxTextSize caps extracted text per document.
	maxTextSize = 10 * 1024 * 1024 // 10MB
)

// Extractor converts PDF bytes to plain text, one page at a time.
type Extractor struct {
	maxFileSize int64
}

// NewExtractor creates an extractor with the given file size limit.
// A non-positive limit falls back to DefaultMaxFileSize.
func NewExtractor(maxFileSize int64) *Extractor {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Extractor{maxFileSize: maxFileSize}
}

// ExtractText returns the concatenation of per-page text joined by
// newlines. A page with no extractable text contributes an empty string,
// so a structurally valid but textless PDF yields "" without error. An
// error is returned only when the document itself cannot be opened.
func (e *Extractor) ExtractText(data []byte) (text string, err error) {
	if int64(len(data)) > e.maxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(data), e.maxFileSize)
	}

	// The underlying parser can panic on malformed cross-reference
	// tables; treat that the same as an unreadable document.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	total := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		content := e.extractPageText(reader, pageNum)
		if total+len(content) > maxTextSize {
			content = content[:maxTextSize-total]
		}
		pages = append(pages, content)
		total += len(content)
		if total >= maxTextSize {
			break
		}
	}

	return strings.Join(pages, "\n"), nil
}

// extractPageText pulls plain text from one page, degrading to "" when
// the page is broken.
func (e *Extractor) extractPageText(reader *pdf.Reader, pageNum int) (content string) {
	defer func() {
		if recover() != nil {
			content = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}

// ExtractTextFile reads a PDF from disk and extracts its text.
func (e *Extractor) ExtractTextFile(path string) (string, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return "", fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() > e.maxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), e.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %w", err)
	}
	return e.ExtractText(data)
}
