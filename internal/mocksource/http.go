package mocksource

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler serves a fixed set of entries at GET /leaderboard.
type Handler struct {
	body []byte
	fail bool
}

// NewHandler encodes entries once; every request gets the same body.
func NewHandler(entries []Entry, fail bool) (*Handler, error) {
	if entries == nil {
		entries = []Entry{}
	}
	body, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return &Handler{body: body, fail: fail}, nil
}

// Register attaches the leaderboard route to r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/leaderboard", h.HandleLeaderboard).Methods(http.MethodGet)
}

// HandleLeaderboard handles GET /leaderboard requests.
func (h *Handler) HandleLeaderboard(w http.ResponseWriter, _ *http.Request) {
	if h.fail {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.body)
}
