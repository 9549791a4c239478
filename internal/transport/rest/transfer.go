package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/worktrack-backend/internal/service/transfer"
)

// transferService defines the minimal interface needed by TransferHandler.
type transferService interface {
	Export(ctx context.Context) (*transfer.Document, error)
	Import(ctx context.Context, doc *transfer.Document) (transfer.ImportResult, error)
}

// TransferHandler serves export/import REST endpoints.
type TransferHandler struct {
	svc transferService
	log *slog.Logger
}

// NewTransferHandler creates a TransferHandler.
func NewTransferHandler(svc transferService, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{svc: svc, log: logger.With("handler", "transfer")}
}

const maxImportBytes = 16 << 20

// Export handles GET /export. The response downloads as a file.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Export(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	filename := fmt.Sprintf("worktrack-export-%s.json", doc.ExportDate.Format(time.DateOnly))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, doc)
}

// Import handles POST /import. It replaces all of the user's data with
// the uploaded document.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	var doc transfer.Document
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Import(r.Context(), &doc)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"projects": result.Projects,
		"sessions": result.Sessions,
	})
}
