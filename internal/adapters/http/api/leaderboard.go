package api

import (
	"net/http"
	"time"

	"github.com/okian/minerboard/internal/domain/model"
	"github.com/okian/minerboard/pkg/logger"
)

// leaderboardResponse is the JSON twin of the dashboard page.
type leaderboardResponse struct {
	RunID     string         `json:"run_id"`
	FetchedAt time.Time      `json:"fetched_at"`
	Dropped   []string       `json:"dropped_columns"`
	Columns   []string       `json:"columns"`
	Rows      [][]any        `json:"rows"`
	Metrics   []model.Metric `json:"metrics"`
	Charts    []model.Chart  `json:"charts"`
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	runner Runner
	logger logger.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(runner Runner, l logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{runner: runner, logger: l}
}

// HandleGetLeaderboard handles GET /api/leaderboard requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.runner.Run(r.Context())
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}

	dropped := d.Dropped
	if dropped == nil {
		dropped = []string{}
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{
		RunID:     d.RunID,
		FetchedAt: d.FetchedAt.UTC(),
		Dropped:   dropped,
		Columns:   d.Frame.Columns,
		Rows:      jsonRows(d.Frame),
		Metrics:   d.Metrics,
		Charts:    d.Charts,
	})
}
