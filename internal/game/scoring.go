package game

import (
	"math"
	"time"
)

const (
	maxQuestionScore = 100
	defaultTimeLimit = 30 // seconds
)

// scoreAnswer computes the points for a correct answer submitted at the given
// time. Full points at the moment the question started, decaying linearly to
// half at the question's time limit; the half-score floor holds no matter how
// late the answer arrives. Elapsed time is measured against the startedAt
// value as persisted, which may have been assigned by the storage backend.
func scoreAnswer(q Question, submitted time.Time) int {
	limit := q.TimeLimit
	if limit <= 0 {
		limit = defaultTimeLimit
	}

	elapsed := 0.0
	if q.StartedAt != nil {
		elapsed = submitted.Sub(*q.StartedAt).Seconds()
		if elapsed < 0 {
			elapsed = 0
		}
	}

	raw := int(math.Round(maxQuestionScore * (1 - elapsed/float64(2*limit))))
	floor := int(math.Round(maxQuestionScore * 0.5))
	if raw < floor {
		return floor
	}
	return raw
}
