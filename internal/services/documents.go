package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmuriuki/legal-document-analyzer/internal/analyzer"
	"github.com/tmuriuki/legal-document-analyzer/internal/config"
	"github.com/tmuriuki/legal-document-analyzer/internal/extractor"
	"github.com/tmuriuki/legal-document-analyzer/internal/models"
	"github.com/tmuriuki/legal-document-analyzer/internal/repository"
	"github.com/tmuriuki/legal-document-analyzer/internal/storage"
	"github.com/tmuriuki/legal-document-analyzer/internal/utils"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
	GetDocument(ctx context.Context, id string) (*models.DocumentDetail, error)
	ListDocuments(ctx context.Context) ([]*models.DocumentMetadata, error)
	AnalyzeDocument(ctx context.Context, id string) (*models.AnalysisResult, error)
}

type documentService struct {
	repo      repository.Repository
	storage   storage.Storage
	extractor extractor.Extractor
	analyzer  analyzer.Analyzer
	logger    *utils.Logger
}

// NewService wires the collaborators selected by configuration. The defaults
// are the in-memory blob store and the placeholder providers.
func NewService(repo repository.Repository, cfg *config.Config, logger *utils.Logger) DocumentService {
	var blobStore storage.Storage
	switch cfg.StorageBackend {
	case config.StorageS3:
		s3Storage, err := storage.NewS3Storage(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", "error", err)
		}
		blobStore = s3Storage
	default:
		blobStore = storage.NewMemoryStorage()
	}

	var textExtractor extractor.Extractor
	switch cfg.ExtractorProvider {
	case config.ProviderLocal:
		textExtractor = extractor.NewLocalExtractor()
	default:
		textExtractor = extractor.NewPlaceholderExtractor()
	}

	var docAnalyzer analyzer.Analyzer
	switch cfg.AnalyzerProvider {
	case config.ProviderGemini:
		geminiAnalyzer, err := analyzer.NewGeminiAnalyzer(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini analyzer", "error", err)
		}
		docAnalyzer = geminiAnalyzer
	default:
		docAnalyzer = analyzer.NewPlaceholderAnalyzer()
	}

	return NewServiceWith(repo, blobStore, textExtractor, docAnalyzer, logger)
}

// NewServiceWith accepts explicit collaborators.
func NewServiceWith(repo repository.Repository, blobStore storage.Storage, textExtractor extractor.Extractor, docAnalyzer analyzer.Analyzer, logger *utils.Logger) DocumentService {
	return &documentService{
		repo:      repo,
		storage:   blobStore,
		extractor: textExtractor,
		analyzer:  docAnalyzer,
		logger:    logger,
	}
}

func (s *documentService) UploadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	docID := utils.GenerateID()

	storageKey := fmt.Sprintf("raw/%s%s", docID, strings.ToLower(filepath.Ext(req.Filename)))
	if err := s.storage.Upload(ctx, storageKey, req.File, req.ContentType); err != nil {
		s.logger.Error("Failed to store document", "error", err, "storage_key", storageKey)
		return nil, utils.NewInternalError("Failed to store document")
	}

	now := time.Now()
	doc := &models.Document{
		ID:          docID,
		Filename:    req.Filename,
		FileSize:    int64(len(req.File)),
		ContentType: req.ContentType,
		StorageKey:  storageKey,
		Status:      models.StatusReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("Failed to save document record", "error", err, "doc_id", docID)
		// Attempt to cleanup stored bytes
		_ = s.storage.Delete(ctx, storageKey)
		return nil, utils.NewInternalError("Failed to save document metadata")
	}

	s.logger.Info("Document uploaded",
		"doc_id", docID,
		"filename", req.Filename,
		"content_type", req.ContentType,
		"file_size", doc.FileSize)

	return &models.UploadResponse{
		DocID:   docID,
		Message: "Document processing started.",
	}, nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*models.DocumentDetail, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get document", "error", err, "doc_id", id)
		return nil, utils.NewInternalError("Failed to retrieve document")
	}
	if doc == nil {
		return nil, utils.NewNotFoundError("Document not found")
	}

	return &models.DocumentDetail{
		DocID:         doc.ID,
		Status:        doc.Status,
		ExtractedText: doc.ExtractedText,
	}, nil
}

func (s *documentService) ListDocuments(ctx context.Context) ([]*models.DocumentMetadata, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list documents", "error", err)
		return nil, utils.NewInternalError("Failed to list documents")
	}

	metadata := make([]*models.DocumentMetadata, 0, len(docs))
	for _, doc := range docs {
		metadata = append(metadata, &models.DocumentMetadata{
			DocID:  doc.ID,
			Status: doc.Status,
		})
	}
	return metadata, nil
}

func (s *documentService) AnalyzeDocument(ctx context.Context, id string) (*models.AnalysisResult, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get document", "error", err, "doc_id", id)
		return nil, utils.NewInternalError("Failed to retrieve document")
	}
	if doc == nil {
		return nil, utils.NewNotFoundError("File not found")
	}

	// Re-analysis returns the cached result
	if doc.AnalyzedAt != nil && doc.Analysis != nil {
		s.logger.Info("Document already analyzed, returning cached results", "doc_id", id)
		return doc.Analysis, nil
	}

	data, err := s.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		s.logger.Error("Failed to load document bytes", "error", err, "doc_id", id, "storage_key", doc.StorageKey)
		return nil, utils.NewInternalError("Failed to load document")
	}

	text, err := s.extractor.Extract(doc.Filename, doc.ContentType, data)
	if err != nil {
		s.logger.Warn("No text extracted from document", "error", err, "doc_id", id, "filename", doc.Filename)
		return nil, utils.NewBadRequestError("No text could be extracted from the document. The file may be empty or corrupted")
	}

	s.logger.Info("Starting document analysis", "doc_id", id, "text_length", len(text))
	result, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		s.logger.Error("Failed to analyze document", "error", err, "doc_id", id)
		return nil, utils.NewInternalError("Failed to analyze document")
	}

	if err := s.repo.UpdateAnalysis(ctx, id, text, result); err != nil {
		s.logger.Error("Failed to save analysis", "error", err, "doc_id", id)
		return nil, utils.NewInternalError("Failed to save analysis results")
	}

	s.logger.Info("Document analyzed",
		"doc_id", id,
		"summary_length", len(result.Summary),
		"pros", len(result.Pros),
		"cons", len(result.Cons),
		"loopholes", len(result.Loopholes))

	return result, nil
}
