package httpadapter

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"campaign-ids/internal/export"
)

// maxImportBytes caps the size of an uploaded export.
const maxImportBytes = 10 << 20

// handleExport returns the filtered history as a downloadable csv (default)
// or json document.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	filter, err := parseFilter(q)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	payload, err := h.svc.Export(r.Context(), format, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	name := fmt.Sprintf("campaign_records_%s.%s", time.Now().UTC().Format("20060102150405"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(payload); err != nil {
		h.logger.Error("write export error", slog.Any("error", err))
	}
}

// handleImport loads a prior export from the request body. The format query
// parameter selects csv (default) or json.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		h.badRequest(w, "could not read request body")
		return
	}
	res, err := h.svc.Import(r.Context(), format, payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}
