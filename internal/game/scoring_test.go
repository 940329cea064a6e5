package game

import (
	"testing"
	"time"
)

func TestScoreAnswer(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		limit   int
		want    int
	}{
		{"instant answer", 0, 30, 100},
		{"halfway", 15 * time.Second, 30, 75},
		{"at the limit", 30 * time.Second, 30, 50},
		{"past the limit floor holds", 60 * time.Second, 30, 50},
		{"way past the limit", 10 * time.Minute, 30, 50},
		{"short limit decays faster", 5 * time.Second, 10, 75},
		{"clock skew before start", -5 * time.Second, 30, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Question{TimeLimit: tc.limit, StartedAt: &started}
			got := scoreAnswer(q, started.Add(tc.elapsed))
			if got != tc.want {
				t.Fatalf("elapsed %v, limit %d: expected %d points, got %d", tc.elapsed, tc.limit, tc.want, got)
			}
		})
	}
}

func TestScoreAnswerDefaults(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Zero time limit falls back to 30 seconds
	q := Question{TimeLimit: 0, StartedAt: &started}
	if got := scoreAnswer(q, started.Add(30*time.Second)); got != 50 {
		t.Fatalf("expected 50 with defaulted limit, got %d", got)
	}

	// Missing startedAt counts as an instant answer
	q = Question{TimeLimit: 30}
	if got := scoreAnswer(q, started); got != 100 {
		t.Fatalf("expected 100 without startedAt, got %d", got)
	}
}
