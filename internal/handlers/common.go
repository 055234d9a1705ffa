package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labeling"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/models"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/storage"
)

const maxUploadBytes = 10 * 1024 * 1024

type Handler struct {
	batchStore      *storage.BatchStore
	labelingService *labeling.Service
	uploadsDir      string
	staticDir       string
}

type ImageProcessResult struct {
	ImageFilename string
	ImageFilePath string
	Width         int
	Height        int
}

// New returns a handler backed by svc. Photos are saved under UPLOADS_DIR
// (default "uploads").
func New(svc *labeling.Service) *Handler {
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	return &Handler{
		batchStore:      storage.New(),
		labelingService: svc,
		uploadsDir:      uploadsDir,
		staticDir:       "static",
	}
}

// Routes registers every endpoint on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/labels", h.HandleLabels)
	mux.HandleFunc("/api/extract", h.HandleExtract)
	mux.HandleFunc("/api/batches", h.HandleBatches)
	mux.HandleFunc("/api/batches/", h.HandleBatchDetail)
	mux.HandleFunc("/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Batch helpers
func (h *Handler) getBatchOrError(w http.ResponseWriter, batchID string) (*models.LabelBatch, bool) {
	batch, exists := h.batchStore.Get(batchID)
	if !exists {
		h.writeError(w, "Batch not found", http.StatusNotFound)
		return nil, false
	}
	return batch, true
}

// File operation helpers
func (h *Handler) ensureUploadsDir() error {
	return os.MkdirAll(h.uploadsDir, 0755)
}
