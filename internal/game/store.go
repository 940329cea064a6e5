package game

import "context"

// Store is the persistence collaborator behind the engine. Implementations
// must return ErrGameNotFound from Get when no game exists for the id, and
// must never hand out state shared with other callers.
type Store interface {
	Get(ctx context.Context, id string) (*Game, error)
	Put(ctx context.Context, g *Game) error
	ListIDs(ctx context.Context) ([]string, error)
}

// Generator produces a question set for the given topics. It may fail or
// return garbage; the engine treats both as a cue to fall back to the
// built-in default questions rather than blocking game start.
type Generator interface {
	Generate(ctx context.Context, topics []string) ([]Question, error)
}
