package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tmuriuki/legal-document-analyzer/internal/analyzer"
	"github.com/tmuriuki/legal-document-analyzer/internal/extractor"
	"github.com/tmuriuki/legal-document-analyzer/internal/models"
	"github.com/tmuriuki/legal-document-analyzer/internal/repository"
	"github.com/tmuriuki/legal-document-analyzer/internal/storage"
	"github.com/tmuriuki/legal-document-analyzer/internal/utils"
)

type countingExtractor struct {
	calls int
}

func (e *countingExtractor) Extract(_, _ string, _ []byte) (string, error) {
	e.calls++
	return "extracted text", nil
}

type failingExtractor struct{}

func (failingExtractor) Extract(_, _ string, _ []byte) (string, error) {
	return "", errors.New("unreadable document")
}

type failingStorage struct{}

func (failingStorage) Upload(context.Context, string, []byte, string) error {
	return errors.New("storage down")
}

func (failingStorage) Download(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage down")
}

func (failingStorage) Delete(context.Context, string) error {
	return errors.New("storage down")
}

func newDefaultService() DocumentService {
	return NewServiceWith(
		repository.NewMemoryRepository(),
		storage.NewMemoryStorage(),
		extractor.NewPlaceholderExtractor(),
		analyzer.NewPlaceholderAnalyzer(),
		utils.NewLogger("error"),
	)
}

func uploadSample(t *testing.T, svc DocumentService) string {
	t.Helper()

	resp, err := svc.UploadDocument(context.Background(), &models.UploadRequest{
		File:        []byte("%PDF-1.4 sample"),
		Filename:    "contract.pdf",
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("UploadDocument() error = %v", err)
	}
	if resp.DocID == "" {
		t.Fatal("UploadDocument() returned empty doc id")
	}
	return resp.DocID
}

func TestUploadDocumentCreatesReceivedRecord(t *testing.T) {
	svc := newDefaultService()

	docID := uploadSample(t, svc)

	doc, err := svc.GetDocument(context.Background(), docID)
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if doc.Status != models.StatusReceived {
		t.Errorf("Status = %q, want %q", doc.Status, models.StatusReceived)
	}
	if doc.ExtractedText != "" {
		t.Errorf("ExtractedText = %q, want empty before analysis", doc.ExtractedText)
	}
}

func TestUploadDocumentUniqueIDs(t *testing.T) {
	svc := newDefaultService()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id := uploadSample(t, svc)
		if seen[id] {
			t.Fatalf("duplicate doc id %q", id)
		}
		seen[id] = true
	}
}

func TestUploadDocumentStorageFailure(t *testing.T) {
	svc := NewServiceWith(
		repository.NewMemoryRepository(),
		failingStorage{},
		extractor.NewPlaceholderExtractor(),
		analyzer.NewPlaceholderAnalyzer(),
		utils.NewLogger("error"),
	)

	_, err := svc.UploadDocument(context.Background(), &models.UploadRequest{
		File:        []byte("data"),
		Filename:    "contract.pdf",
		ContentType: "application/pdf",
	})
	if err == nil {
		t.Fatal("expected error when storage fails")
	}
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("err = %v, want internal AppError", err)
	}
}

func TestGetDocumentUnknownID(t *testing.T) {
	svc := newDefaultService()

	_, err := svc.GetDocument(context.Background(), "missing")
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want not-found AppError", err)
	}
}

func TestAnalyzeDocumentUnknownID(t *testing.T) {
	svc := newDefaultService()

	_, err := svc.AnalyzeDocument(context.Background(), "missing")
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want not-found AppError", err)
	}
}

func TestAnalyzeDocumentMarksProcessed(t *testing.T) {
	svc := newDefaultService()
	ctx := context.Background()

	docID := uploadSample(t, svc)

	result, err := svc.AnalyzeDocument(ctx, docID)
	if err != nil {
		t.Fatalf("AnalyzeDocument() error = %v", err)
	}
	if result.Summary != "This is a summary of the document." {
		t.Errorf("Summary = %q", result.Summary)
	}

	doc, err := svc.GetDocument(ctx, docID)
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if doc.Status != models.StatusProcessed {
		t.Errorf("Status = %q, want %q", doc.Status, models.StatusProcessed)
	}
	if doc.ExtractedText != extractor.PlaceholderText {
		t.Errorf("ExtractedText = %q, want %q", doc.ExtractedText, extractor.PlaceholderText)
	}
}

func TestAnalyzeDocumentCachesResult(t *testing.T) {
	counting := &countingExtractor{}
	svc := NewServiceWith(
		repository.NewMemoryRepository(),
		storage.NewMemoryStorage(),
		counting,
		analyzer.NewPlaceholderAnalyzer(),
		utils.NewLogger("error"),
	)
	ctx := context.Background()

	docID := uploadSample(t, svc)

	first, err := svc.AnalyzeDocument(ctx, docID)
	if err != nil {
		t.Fatalf("AnalyzeDocument() error = %v", err)
	}
	second, err := svc.AnalyzeDocument(ctx, docID)
	if err != nil {
		t.Fatalf("AnalyzeDocument() second call error = %v", err)
	}

	if counting.calls != 1 {
		t.Errorf("extractor called %d times, want 1", counting.calls)
	}
	if first.Summary != second.Summary {
		t.Errorf("cached result differs: %q vs %q", first.Summary, second.Summary)
	}
}

func TestAnalyzeDocumentExtractionFailure(t *testing.T) {
	svc := NewServiceWith(
		repository.NewMemoryRepository(),
		storage.NewMemoryStorage(),
		failingExtractor{},
		analyzer.NewPlaceholderAnalyzer(),
		utils.NewLogger("error"),
	)
	ctx := context.Background()

	docID := uploadSample(t, svc)

	_, err := svc.AnalyzeDocument(ctx, docID)
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("err = %v, want bad-request AppError", err)
	}

	// Failed analysis must not flip the status
	doc, err := svc.GetDocument(ctx, docID)
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if doc.Status != models.StatusReceived {
		t.Errorf("Status = %q, want %q after failed analysis", doc.Status, models.StatusReceived)
	}
}

func TestListDocuments(t *testing.T) {
	svc := newDefaultService()
	ctx := context.Background()

	first := uploadSample(t, svc)
	second := uploadSample(t, svc)

	docs, err := svc.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("ListDocuments() returned %d docs, want 2", len(docs))
	}
	if docs[0].DocID != first || docs[1].DocID != second {
		t.Errorf("ListDocuments() order = [%s %s], want [%s %s]", docs[0].DocID, docs[1].DocID, first, second)
	}
	for _, doc := range docs {
		if doc.Status != models.StatusReceived {
			t.Errorf("doc %s status = %q, want %q", doc.DocID, doc.Status, models.StatusReceived)
		}
	}
}
