package extractor

import (
	"path/filepath"
	"strings"
)

// PlaceholderText is what the placeholder provider reports for any document,
// pending real extraction.
const PlaceholderText = "Sample extracted text from the document."

// Extractor turns raw document bytes into plain text.
type Extractor interface {
	Extract(filename, contentType string, data []byte) (string, error)
}

// placeholderExtractor ignores the document and returns a fixed text. It is
// the shipped default so the API works without any document tooling.
type placeholderExtractor struct{}

func NewPlaceholderExtractor() Extractor {
	return placeholderExtractor{}
}

func (placeholderExtractor) Extract(_, _ string, _ []byte) (string, error) {
	return PlaceholderText, nil
}

// localExtractor extracts text in-process, choosing a format by content type
// with a filename-extension fallback. Unknown formats get a best-effort plain
// text decode.
type localExtractor struct{}

func NewLocalExtractor() Extractor {
	return localExtractor{}
}

func (localExtractor) Extract(filename, contentType string, data []byte) (string, error) {
	switch {
	case contentType == "application/pdf" || hasExt(filename, ".pdf"):
		return ExtractPDF(data)
	case isDOCXContentType(contentType) || hasExt(filename, ".docx"):
		return ExtractDOCX(data)
	default:
		return ExtractTXT(data)
	}
}

func hasExt(filename, ext string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ext
}

// isDOCXContentType checks if the content type is a DOCX file
// Handles various DOCX MIME type variations
func isDOCXContentType(contentType string) bool {
	docxTypes := []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.wordprocessingml",
		"application/docx",
		"application/x-docx",
	}

	for _, docxType := range docxTypes {
		if contentType == docxType {
			return true
		}
	}

	return false
}
