package repository

import (
	"context"
	"sync"
	"time"

	"github.com/tmuriuki/legal-document-analyzer/internal/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	UpdateAnalysis(ctx context.Context, id, extractedText string, result *models.AnalysisResult) error
}

// memoryRepository is the process-scoped document store. Records live for the
// process lifetime only and are never deleted.
type memoryRepository struct {
	mu    sync.RWMutex
	docs  map[string]*models.Document
	order []string
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		docs: make(map[string]*models.Document),
	}
}

func (r *memoryRepository) Create(_ context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *doc
	r.docs[doc.ID] = &stored
	r.order = append(r.order, doc.ID)
	return nil
}

// GetByID returns (nil, nil) when no record exists for id.
func (r *memoryRepository) GetByID(_ context.Context, id string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}

	copied := *doc
	return &copied, nil
}

// List returns all records in creation order.
func (r *memoryRepository) List(_ context.Context) ([]*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*models.Document, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.docs[id]
		docs = append(docs, &copied)
	}
	return docs, nil
}

func (r *memoryRepository) UpdateAnalysis(_ context.Context, id, extractedText string, result *models.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil
	}

	now := time.Now()
	doc.ExtractedText = extractedText
	doc.Analysis = result
	doc.Status = models.StatusProcessed
	doc.AnalyzedAt = &now
	doc.UpdatedAt = now
	return nil
}
