package analyzer

import (
	"context"

	"github.com/tmuriuki/legal-document-analyzer/internal/models"
)

// Analyzer produces a legal document analysis from extracted text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisResult, error)
}

// placeholderAnalyzer returns a fixed analysis independent of the document
// content, pending real model integration. Shipped default.
type placeholderAnalyzer struct{}

func NewPlaceholderAnalyzer() Analyzer {
	return placeholderAnalyzer{}
}

func (placeholderAnalyzer) Analyze(_ context.Context, _ string) (*models.AnalysisResult, error) {
	return PlaceholderResult(), nil
}

// PlaceholderResult is the canonical stub analysis payload.
func PlaceholderResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary:   "This is a summary of the document.",
		Pros:      []string{"Clear terms and conditions", "Well-defined responsibilities"},
		Cons:      []string{"Complex language", "Ambiguous timelines"},
		Loopholes: []string{"No penalty for non-compliance"},
	}
}

func emptyDocumentResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary:   "Document is empty.",
		Pros:      []string{},
		Cons:      []string{},
		Loopholes: []string{},
	}
}

func failedAnalysisResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary:   "Failed to analyze document.",
		Pros:      []string{},
		Cons:      []string{},
		Loopholes: []string{},
	}
}
