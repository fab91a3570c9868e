package httpadapter

import "net/http"

// handleHealth reports liveness. The catalog is loaded before the server
// starts, so a running server is always ready.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
