package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"geo-bidder/internal/core/port"
)

// handleBid evaluates a bid request. The body is decoded into a
// port.BidRequestPayload; malformed JSON or missing required fields produce
// HTTP 400. Every evaluated request, including an invalid location, is
// answered with HTTP 200 and a JSON decision carrying latency_ms.
func (h *Handler) handleBid(w http.ResponseWriter, r *http.Request) {
	start := h.now()

	var payload port.BidRequestPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	req, err := payload.ToDomain()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	decision := h.svc.Evaluate(req)
	resp := port.NewBidResponsePayload(req.RequestID, decision, sinceMs(h.now, start))

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		// encoding should rarely fail; log and move on
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
