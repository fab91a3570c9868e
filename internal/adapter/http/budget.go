package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type budgetResponse struct {
	CampaignID string  `json:"campaign_id"`
	Active     bool    `json:"active"`
	Initial    float64 `json:"initial_budget"`
	Remaining  float64 `json:"budget_remaining"`
	Spent      float64 `json:"spent"`
}

// handleBudget returns the live budget of a campaign. It expects an {id}
// path parameter bound by the router. Unknown campaigns result in HTTP 404.
func (h *Handler) handleBudget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status, ok := h.svc.Budget(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(budgetResponse{
		CampaignID: status.CampaignID,
		Active:     status.Active,
		Initial:    status.Initial.Float64(),
		Remaining:  status.Remaining.Float64(),
		Spent:      status.Spent.Float64(),
	})
	if err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
