package models

import (
	"time"
)

type DocumentStatus string

const (
	StatusReceived  DocumentStatus = "received"
	StatusProcessed DocumentStatus = "processed"
)

type Document struct {
	ID            string          `json:"doc_id"`
	Filename      string          `json:"filename"`
	FileSize      int64           `json:"file_size"`
	ContentType   string          `json:"content_type"`
	StorageKey    string          `json:"storage_key"`
	Status        DocumentStatus  `json:"status"`
	ExtractedText string          `json:"extracted_text,omitempty"`
	Analysis      *AnalysisResult `json:"analysis,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	AnalyzedAt    *time.Time      `json:"analyzed_at,omitempty"`
}

type UploadRequest struct {
	File        []byte
	Filename    string
	ContentType string
}

type UploadResponse struct {
	DocID   string `json:"doc_id"`
	Message string `json:"message"`
}

type DocumentMetadata struct {
	DocID  string         `json:"doc_id"`
	Status DocumentStatus `json:"status"`
}

type DocumentDetail struct {
	DocID         string         `json:"doc_id"`
	Status        DocumentStatus `json:"status"`
	ExtractedText string         `json:"extracted_text"`
}

type AnalyzeRequest struct {
	FileID string `json:"file_id"`
}

type AnalysisResult struct {
	Summary   string   `json:"summary"`
	Pros      []string `json:"pros"`
	Cons      []string `json:"cons"`
	Loopholes []string `json:"loopholes"`
}
