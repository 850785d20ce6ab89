package engine

import "github.com/google/uuid"

// newMatchID mints a fresh match identifier, replacing the ad hoc ID
// schemes the teacher's RPC handlers build from string concatenation.
func newMatchID() string {
	return "match_" + uuid.NewString()
}

func newHistoryID() string {
	return "hist_" + uuid.NewString()
}
