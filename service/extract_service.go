package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reco-ai/knowledge-be/types"
)

// ExtractService turns a source document into a single text stream with
// inline image placeholders plus the raw bytes of every referenced image.
// Placeholder tokens are unique per document; their order in the text stream
// follows the document's natural reading order.
type ExtractService struct{}

func NewExtractService() *ExtractService {
	return &ExtractService{}
}

// Extract dispatches on the detected document format. An unknown extension
// fails with types.ErrUnsupportedFormat and produces no partial output.
func (s *ExtractService) Extract(filePath string) (string, []types.ExtractedImage, error) {
	format, err := DetectFormat(filePath)
	if err != nil {
		return "", nil, err
	}
	doc := types.Document{Path: filePath, Format: format}
	switch doc.Format {
	case types.FormatDOCX:
		return s.extractFromDOCX(doc.Path)
	default:
		return s.extractFromPDF(doc.Path)
	}
}

// DetectFormat derives the document format from the file extension.
func DetectFormat(filePath string) (types.DocumentFormat, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return types.FormatPDF, nil
	case ".docx":
		return types.FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, ext)
	}
}

// PlaceholderToken builds the inline marker standing in for an image until
// annotation resolves it.
func PlaceholderToken(filename string) string {
	return "[image_placeholder:" + filename + "]"
}

// GetFileNameWithoutExt extracts filename without extension from a file path
func GetFileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return base
}

// cleanText applies the replacements in a fixed order: control-character
// removal can create new double spaces, so the space collapse runs last.
func cleanText(text string) string {
	replacements := []struct {
		old string
		new string
	}{
		{"\u0000", ""},   // Null character
		{"\ufffd", ""},   // Unicode replacement character
		{"\u001b", ""},   // Escape character
		{"\r", ""},       // Carriage return
		{"\f", "\n"},     // Form feed to newline
		{"  ", " "},      // Multiple spaces to single space
	}
	cleaned := text
	for _, r := range replacements {
		cleaned = strings.ReplaceAll(cleaned, r.old, r.new)
	}
	return strings.TrimSpace(cleaned)
}
