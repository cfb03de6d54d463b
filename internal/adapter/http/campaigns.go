package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campaign-ids/internal/core/domain"
)

// handleGenerate decodes criteria from the request body and generates a new
// campaign ID. It returns 201 with the stored record, 400 for malformed JSON,
// 422 for invalid criteria and 409 when no unique ID could be found.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var criteria domain.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	rec, err := h.svc.Generate(r.Context(), criteria)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/campaigns/"+rec.ID)
	h.writeJSON(w, http.StatusCreated, rec)
}

// handleSearch lists the campaign history filtered by query parameters. See
// parseFilter for the accepted parameters.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	records, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDecode splits an ID into platform, objective, creation time and
// suffix. Malformed IDs produce HTTP 400.
func (h *Handler) handleDecode(w http.ResponseWriter, r *http.Request) {
	parts, err := h.svc.Decode(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, parts)
}
