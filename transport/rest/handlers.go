package rest

import (
	"encoding/json"
	"net/http"
)

type handlers struct {
	scores scoresProvider
}

func newHandlers(scores scoresProvider) *handlers {
	return &handlers{scores: scores}
}

func (that *handlers) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// scoresHandler reports the full win ledger.
func (that *handlers) scoresHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := that.scores.Summary(r.Context())
	if err != nil {
		http.Error(w, "failed to load scores", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(summary); err != nil {
		http.Error(w, "failed to encode scores", http.StatusInternalServerError)
	}
}
