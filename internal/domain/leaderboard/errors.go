package leaderboard

import "errors"

// ErrShape marks failures while turning a decoded frame into a board.
// Column-level causes are wrapped alongside it (frame.ErrMissingColumn,
// frame.ErrNotNumeric, frame.ErrNotString).
var ErrShape = errors.New("leaderboard shape failed")
