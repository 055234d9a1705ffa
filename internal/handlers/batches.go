package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/export"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/models"
)

func (h *Handler) HandleBatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, h.batchStore.GetAll())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleBatchDetail(w http.ResponseWriter, r *http.Request) {
	batchID := strings.TrimPrefix(r.URL.Path, "/api/batches/")
	if id, ok := strings.CutSuffix(batchID, "/export"); ok {
		h.handleBatchExport(w, r, id)
		return
	}
	if batchID == "" || strings.Contains(batchID, "/") {
		h.writeError(w, "Batch not found", http.StatusNotFound)
		return
	}

	batch, ok := h.getBatchOrError(w, batchID)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, batch)
	case http.MethodPut:
		var updated models.LabelBatch
		if err := decodeJSON(w, r, &updated); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		for _, item := range updated.Items {
			if _, ok := models.ParseReason(string(item.Reason)); !ok {
				h.writeError(w, "Invalid reason: "+string(item.Reason), http.StatusBadRequest)
				return
			}
			if item.Qty < 1 {
				h.writeError(w, "Invalid qty for item "+item.ID, http.StatusBadRequest)
				return
			}
		}
		updated.ID = batchID
		updated.CreatedAt = batch.CreatedAt
		updated.UpdatedAt = time.Now()
		h.batchStore.Set(batchID, &updated)
		h.writeJSON(w, updated)
	case http.MethodDelete:
		h.batchStore.Delete(batchID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleBatchExport downloads a batch as an xlsx damage report
func (h *Handler) handleBatchExport(w http.ResponseWriter, r *http.Request, batchID string) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	batch, ok := h.getBatchOrError(w, batchID)
	if !ok {
		return
	}

	data, err := export.BatchXLSX(batch)
	if err != nil {
		slog.Error("Failed to export batch", "batch", batchID, "err", err)
		h.writeError(w, "Failed to export batch", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="damage-report-%s.xlsx"`, batchID))
	_, _ = w.Write(data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes)).Decode(v)
}
