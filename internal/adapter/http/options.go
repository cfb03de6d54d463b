package httpadapter

import (
	"net/http"

	"campaign-ids/internal/core/domain"
)

type option struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type optionsResponse struct {
	Platforms     []option `json:"platforms"`
	Objectives    []option `json:"objectives"`
	Genders       []string `json:"genders"`
	Devices       []string `json:"devices"`
	LocationTypes []string `json:"location_types"`
	MinAge        int      `json:"min_age"`
	MaxAge        int      `json:"max_age"`
}

// handleOptions lists the recognized values a client needs to build a
// generation form.
func (h *Handler) handleOptions(w http.ResponseWriter, _ *http.Request) {
	resp := optionsResponse{
		Genders:       domain.Genders,
		Devices:       domain.Devices,
		LocationTypes: domain.LocationTypes,
		MinAge:        domain.MinAge,
		MaxAge:        domain.MaxAge,
	}
	for _, p := range domain.Platforms {
		resp.Platforms = append(resp.Platforms, option{Name: string(p), Code: p.Code()})
	}
	for _, o := range domain.Objectives {
		resp.Objectives = append(resp.Objectives, option{Name: string(o), Code: o.Code()})
	}
	h.writeJSON(w, http.StatusOK, resp)
}
