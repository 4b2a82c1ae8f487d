package router

import (
	"net/http"

	"github.com/tmuriuki/legal-document-analyzer/internal/handlers"
	"github.com/tmuriuki/legal-document-analyzer/internal/metrics"
	"github.com/tmuriuki/legal-document-analyzer/internal/middleware"
	"github.com/tmuriuki/legal-document-analyzer/internal/services"
	"github.com/tmuriuki/legal-document-analyzer/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(docService services.DocumentService, logger *utils.Logger, m *metrics.HTTPServerMetrics, maxFileSize int64) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))
	r.Use(m.Middleware())

	// Document handler
	docHandler := handlers.NewDocumentHandler(docService, logger, m, maxFileSize)

	// Root
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Welcome to the Legal Document Analyzer API"}`))
	}).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Document endpoints; /process-document is kept as an alias for clients
	// of the original upload route
	r.HandleFunc("/upload", docHandler.UploadDocument).Methods(http.MethodPost)
	r.HandleFunc("/process-document", docHandler.UploadDocument).Methods(http.MethodPost)
	r.HandleFunc("/documents", docHandler.ListDocuments).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id}", docHandler.GetDocument).Methods(http.MethodGet)
	r.HandleFunc("/analyze", docHandler.AnalyzeDocument).Methods(http.MethodPost)

	// Observability
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	return r
}
