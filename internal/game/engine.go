package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultResultsDwell = 5 * time.Second
	codeRetries         = 10
	autoAdvanceTimeout  = 10 * time.Second
)

// Engine enforces the game lifecycle and is the sole writer of game state.
// All mutations to one game are serialized through a per-game mutex;
// operations on different games never block one another. State itself lives
// behind the Store, so the engine holds nothing per game beyond its lock and
// any pending auto-advance task.
type Engine struct {
	store Store
	gen   Generator
	dwell time.Duration
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	tasks *scheduler
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		dwell: defaultResultsDwell,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
		tasks: newScheduler(),
	}
}

// SetGenerator installs the question-generation collaborator. Without one the
// engine always uses the default question set.
func (e *Engine) SetGenerator(g Generator) {
	e.gen = g
}

// SetResultsDwell tunes how long a game sits in results before advancing on
// its own.
func (e *Engine) SetResultsDwell(d time.Duration) {
	if d > 0 {
		e.dwell = d
	}
}

// Close cancels all pending auto-advance tasks.
func (e *Engine) Close() {
	e.tasks.stopAll()
}

func (e *Engine) lock(gameID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[gameID] = l
	}
	return l
}

func (e *Engine) setStatus(g *Game, s Status) {
	g.Status = s
	g.StatusChangedAt = e.now().UTC()
}

// CreateGame allocates a fresh room code and persists an empty game in
// waiting. Topics are kept on the game so a later OpenLobby can generate
// questions without the caller repeating them.
func (e *Engine) CreateGame(ctx context.Context, hostID string, topics []string) (*Game, error) {
	var code string
	for i := 0; i < codeRetries; i++ {
		c, err := newRoomCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, err := e.store.Get(ctx, c); errors.Is(err, ErrGameNotFound) {
			code = c
			break
		} else if err != nil {
			return nil, fmt.Errorf("checking room code: %w", err)
		}
	}
	if code == "" {
		return nil, fmt.Errorf("failed to allocate unique room code after %d attempts", codeRetries)
	}

	now := e.now().UTC()
	g := &Game{
		ID:              code,
		HostID:          hostID,
		Status:          StatusWaiting,
		Players:         []Player{},
		Questions:       []Question{},
		Topics:          append([]string(nil), topics...),
		CreatedAt:       now,
		StatusChangedAt: now,
	}
	if err := e.store.Put(ctx, g); err != nil {
		return nil, fmt.Errorf("persisting game: %w", err)
	}
	log.Info().Str("game", code).Str("host", hostID).Strs("topics", topics).Msg("game created")
	return g.Clone(), nil
}

// AssignQuestions attaches the question list and opens the lobby. Host-only,
// valid only while the game is still waiting.
func (e *Engine) AssignQuestions(ctx context.Context, gameID, hostID string, questions []Question) (*Game, error) {
	l := e.lock(gameID)
	l.Lock()
	defer l.Unlock()

	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.HostID != hostID {
		return nil, ErrNotHost
	}
	if g.Status != StatusWaiting {
		return nil, ErrInvalidState
	}

	g.Questions = make([]Question, len(questions))
	for i := range questions {
		g.Questions[i] = questions[i].clone()
	}
	e.setStatus(g, StatusLobby)
	if err := e.store.Put(ctx, g); err != nil {
		return nil, fmt.Errorf("persisting game: %w", err)
	}
	log.Info().Str("game", gameID).Int("questions", len(g.Questions)).Msg("lobby open")
	return g.Clone(), nil
}

// OpenLobby generates questions for the game's topics and attaches them.
// Generation happens outside the per-game lock and its failure is absorbed:
// the lobby always opens, with the default question set if need be.
func (e *Engine) OpenLobby(ctx context.Context, gameID, hostID string, topics []string) (*Game, error) {
	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.HostID != hostID {
		return nil, ErrNotHost
	}
	if g.Status != StatusWaiting {
		return nil, ErrInvalidState
	}
	if len(topics) == 0 {
		topics = g.Topics
	}
	return e.AssignQuestions(ctx, gameID, hostID, e.generate(ctx, gameID, topics))
}

func (e *Engine) generate(ctx context.Context, gameID string, topics []string) []Question {
	if e.gen == nil {
		return DefaultQuestions()
	}
	questions, err := e.gen.Generate(ctx, topics)
	if err != nil {
		log.Warn().Err(err).Str("game", gameID).Msg("question generation failed, using defaults")
		return DefaultQuestions()
	}
	if len(questions) == 0 {
		log.Warn().Str("game", gameID).Msg("question generation returned nothing, using defaults")
		return DefaultQuestions()
	}
	return questions
}

// JoinGame adds a player to a game that is accepting players. Names are
// display-only and may repeat.
func (e *Engine) JoinGame(ctx context.Context, gameID, name string) (*Player, error) {
	l := e.lock(gameID)
	l.Lock()
	defer l.Unlock()

	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Status != StatusLobby {
		return nil, ErrInvalidState
	}

	p := Player{
		ID:      uuid.NewString(),
		Name:    name,
		Score:   0,
		Answers: []Answer{},
	}
	g.Players = append(g.Players, p)
	if err := e.store.Put(ctx, g); err != nil {
		return nil, fmt.Errorf("persisting game: %w", err)
	}
	log.Info().Str("game", gameID).Str("player", p.ID).Str("name", name).Msg("player joined")
	out := p.clone()
	return &out, nil
}

// StartTrivia moves a lobby into play. If no questions were ever assigned the
// default set is used so a failed upstream generation cannot block the start.
func (e *Engine) StartTrivia(ctx context.Context, gameID, hostID string) (*Game, error) {
	l := e.lock(gameID)
	l.Lock()
	defer l.Unlock()

	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.HostID != hostID {
		return nil, ErrNotHost
	}
	if g.Status != StatusLobby {
		return nil, ErrInvalidState
	}

	if len(g.Questions) == 0 {
		log.Info().Str("game", gameID).Msg("no questions assigned, using defaults")
		g.Questions = DefaultQuestions()
	}
	now := e.now().UTC()
	g.CurrentQuestionIndex = 0
	g.Questions[0].StartedAt = &now
	e.setStatus(g, StatusInProgress)
	if err := e.store.Put(ctx, g); err != nil {
		return nil, fmt.Errorf("persisting game: %w", err)
	}
	log.Info().Str("game", gameID).Int("players", len(g.Players)).Msg("trivia started")
	return g.Clone(), nil
}

// SubmitAnswer records a player's answer for the current question. Unknown
// game, wrong status, unknown player and duplicate answers are all expected
// race outcomes under concurrent submission and report (false, nil) rather
// than an error. Once every player on the persisted roster has answered, the
// game flips to results and an auto-advance task is armed.
func (e *Engine) SubmitAnswer(ctx context.Context, gameID, playerID, answer string) (bool, error) {
	l := e.lock(gameID)
	l.Lock()
	defer l.Unlock()

	g, err := e.store.Get(ctx, gameID)
	if errors.Is(err, ErrGameNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if g.Status != StatusInProgress {
		return false, nil
	}
	p := g.player(playerID)
	if p == nil {
		return false, nil
	}
	if p.answered(g.CurrentQuestionIndex) {
		// Idempotent receipt: the first answer stands.
		return false, nil
	}

	q := g.Questions[g.CurrentQuestionIndex]
	now := e.now().UTC()
	p.Answers = append(p.Answers, Answer{
		QuestionIndex: g.CurrentQuestionIndex,
		Answer:        answer,
		Timestamp:     now,
	})

	correct := q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) && q.Options[q.CorrectAnswer] == answer
	if correct {
		points := scoreAnswer(q, now)
		p.Score += points
		log.Info().Str("game", gameID).Str("player", playerID).Int("points", points).Int("score", p.Score).Msg("correct answer")
	} else {
		log.Info().Str("game", gameID).Str("player", playerID).Msg("incorrect answer")
	}

	// The roster that decides "everyone answered" is the one this write
	// persists, so a player who joined after the question went out is
	// counted, not skipped.
	finished := g.allAnswered(g.CurrentQuestionIndex)
	if finished {
		e.setStatus(g, StatusResults)
	}
	if err := e.store.Put(ctx, g); err != nil {
		return false, fmt.Errorf("persisting game: %w", err)
	}
	if finished {
		log.Info().Str("game", gameID).Int("question", g.CurrentQuestionIndex).Msg("all players answered, entering results")
		e.tasks.schedule(gameID, e.dwell, func() { e.autoAdvance(gameID) })
	}
	return true, nil
}

func (e *Engine) autoAdvance(gameID string) {
	ctx, cancel := context.WithTimeout(context.Background(), autoAdvanceTimeout)
	defer cancel()
	if _, err := e.AdvanceQuestion(ctx, gameID); err != nil {
		// A manual advance may have won the race; that's fine.
		if !errors.Is(err, ErrInvalidState) && !errors.Is(err, ErrGameNotFound) {
			log.Warn().Err(err).Str("game", gameID).Msg("auto-advance failed")
		}
	}
}

// AdvanceQuestion moves a game out of results, either into the next question
// or, when questions are exhausted, to its end. Safe to race between the
// dwell timer and an explicit caller; the loser sees ErrInvalidState.
func (e *Engine) AdvanceQuestion(ctx context.Context, gameID string) (*Question, error) {
	l := e.lock(gameID)
	l.Lock()
	defer l.Unlock()

	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Status != StatusResults {
		return nil, ErrInvalidState
	}
	e.tasks.cancel(gameID)

	next := g.CurrentQuestionIndex + 1
	if next >= len(g.Questions) {
		e.setStatus(g, StatusEnded)
		if err := e.store.Put(ctx, g); err != nil {
			return nil, fmt.Errorf("persisting game: %w", err)
		}
		log.Info().Str("game", gameID).Msg("game ended, all questions completed")
		return nil, nil
	}

	now := e.now().UTC()
	g.CurrentQuestionIndex = next
	g.Questions[next].StartedAt = &now
	e.setStatus(g, StatusInProgress)
	if err := e.store.Put(ctx, g); err != nil {
		return nil, fmt.Errorf("persisting game: %w", err)
	}
	log.Info().Str("game", gameID).Int("question", next).Msg("advanced to next question")
	q := g.Questions[next].clone()
	return &q, nil
}

// Leaderboard returns the players ordered by descending score, ties broken
// by join order.
func (e *Engine) Leaderboard(ctx context.Context, gameID string) ([]Player, error) {
	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	players := make([]Player, len(g.Players))
	for i := range g.Players {
		players[i] = g.Players[i].clone()
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})
	return players, nil
}

// ResultsBreakdown tallies the current question's answers per option. Only
// meaningful while the game shows results.
func (e *Engine) ResultsBreakdown(ctx context.Context, gameID string) (*Breakdown, error) {
	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Status != StatusResults {
		return nil, ErrInvalidState
	}

	q := g.Questions[g.CurrentQuestionIndex]
	counts := make(map[string]int, len(q.Options))
	for _, opt := range q.Options {
		counts[opt] = 0
	}
	for i := range g.Players {
		for _, a := range g.Players[i].Answers {
			if a.QuestionIndex != g.CurrentQuestionIndex {
				continue
			}
			if _, ok := counts[a.Answer]; ok {
				counts[a.Answer]++
			}
		}
	}
	return &Breakdown{Question: q.Text, Counts: counts}, nil
}

// EndGame is the host's escape hatch: it forces the game to ended from any
// state and is a no-op on a game already over.
func (e *Engine) EndGame(ctx context.Context, gameID, hostID string) error {
	l := e.lock(gameID)
	l.Lock()
	defer l.Unlock()

	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return err
	}
	if g.HostID != hostID {
		return ErrNotHost
	}
	if g.Status == StatusEnded {
		return nil
	}
	e.tasks.cancel(gameID)
	e.setStatus(g, StatusEnded)
	if err := e.store.Put(ctx, g); err != nil {
		return fmt.Errorf("persisting game: %w", err)
	}
	log.Info().Str("game", gameID).Msg("game ended by host")
	return nil
}

// Snapshot returns a copy of the game's full state.
func (e *Engine) Snapshot(ctx context.Context, gameID string) (*Game, error) {
	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

// CurrentQuestion returns the question in play.
func (e *Engine) CurrentQuestion(ctx context.Context, gameID string) (*Question, error) {
	g, err := e.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Status != StatusInProgress {
		return nil, ErrInvalidState
	}
	q := g.Questions[g.CurrentQuestionIndex].clone()
	return &q, nil
}

// ListGameIDs is a diagnostics helper.
func (e *Engine) ListGameIDs(ctx context.Context) ([]string, error) {
	return e.store.ListIDs(ctx)
}
