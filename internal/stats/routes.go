package stats

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts /api/stats and, when feed is non-nil, the
// /ws/stats websocket.
func RegisterRoutes(r chi.Router, src Lister, feed *Feed) {
	r.Get("/api/stats", handleStats(src))
	if feed != nil {
		r.Handle("/ws/stats", feed)
	}
}

func handleStats(src Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := Current(r.Context(), src)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(snap)
	}
}
