package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/models"
	"github.com/google/uuid"
)

// HandleLabels accepts one label photo, reads it and adds it to a batch
func (h *Handler) HandleLabels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("files")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	reason, ok := models.ParseReason(r.FormValue("reason"))
	if !ok {
		h.writeError(w, fmt.Sprintf("Invalid reason. Must be one of %s", joinReasons()), http.StatusBadRequest)
		return
	}

	qty := models.DefaultQuantity
	if v := strings.TrimSpace(r.FormValue("qty")); v != "" {
		qty, err = strconv.Atoi(v)
		if err != nil || qty < 1 {
			h.writeError(w, "Invalid qty. Must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	if err := h.ensureUploadsDir(); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Limit file size to 10MB
	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if len(fileData) >= maxUploadBytes {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}
	if len(fileData) == 0 {
		h.writeError(w, "Empty file", http.StatusBadRequest)
		return
	}

	result, err := h.processImageFile(fileData, header.Filename)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	item := h.labelingService.ReadLabel(r.Context(), fileData, r.FormValue("provider"), r.FormValue("model"))
	item.ID = uuid.NewString()
	item.ImagePath = result.ImageFilename
	item.ImageURL = "/static/uploads/" + result.ImageFilename
	item.ImageWidth = result.Width
	item.ImageHeight = result.Height
	item.Reason = reason
	item.Notes = strings.TrimSpace(r.FormValue("notes"))
	item.Qty = qty

	batchID := strings.TrimSpace(r.FormValue("batch_id"))
	if batchID == "" {
		batchID = uuid.NewString()
	}
	batch := h.batchStore.Append(batchID, item)

	h.writeJSON(w, map[string]any{
		"batch_id": batchID,
		"item":     item,
		"items":    len(batch.Items),
	})
}

// HandleExtract runs field extraction on a transcript that is already text
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(w, r, &request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	item := h.labelingService.ReadTranscript(request.Text)
	h.writeJSON(w, map[string]any{
		"fields": item.Fields,
		"issues": item.Issues,
	})
}

func joinReasons() string {
	names := make([]string, len(models.Reasons))
	for i, r := range models.Reasons {
		names[i] = "'" + string(r) + "'"
	}
	return strings.Join(names, ", ")
}
