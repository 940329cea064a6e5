package game

import (
	"time"
)

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusLobby      Status = "lobby"
	StatusInProgress Status = "in_progress"
	StatusResults    Status = "results"
	StatusEnded      Status = "ended"
)

type Question struct {
	Text          string     `json:"text"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	TimeLimit     int        `json:"timeLimit"` // seconds
	StartedAt     *time.Time `json:"startedAt,omitempty"`
}

type Answer struct {
	QuestionIndex int       `json:"questionIndex"`
	Answer        string    `json:"answer"`
	Timestamp     time.Time `json:"timestamp"`
}

type Player struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Answers []Answer `json:"answers"`
}

type Game struct {
	ID                   string     `json:"id"`
	HostID               string     `json:"hostId"`
	Status               Status     `json:"status"`
	Players              []Player   `json:"players"`
	Questions            []Question `json:"questions"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	Topics               []string   `json:"topics,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	StatusChangedAt      time.Time  `json:"statusChangedAt"`
}

// Breakdown tallies how the current question was answered, one count per
// option. Options nobody picked are present with a zero count.
type Breakdown struct {
	Question string         `json:"question"`
	Counts   map[string]int `json:"results"`
}

func (q Question) clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	if q.StartedAt != nil {
		t := *q.StartedAt
		out.StartedAt = &t
	}
	return out
}

func (p Player) clone() Player {
	out := p
	out.Answers = append([]Answer(nil), p.Answers...)
	return out
}

// Clone returns a deep copy so callers never hold a reference into live
// engine or store state.
func (g *Game) Clone() *Game {
	out := *g
	out.Players = make([]Player, len(g.Players))
	for i := range g.Players {
		out.Players[i] = g.Players[i].clone()
	}
	out.Questions = make([]Question, len(g.Questions))
	for i := range g.Questions {
		out.Questions[i] = g.Questions[i].clone()
	}
	out.Topics = append([]string(nil), g.Topics...)
	return &out
}

// player returns a pointer into the game's roster, or nil.
func (g *Game) player(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

func (p *Player) answered(questionIndex int) bool {
	for _, a := range p.Answers {
		if a.QuestionIndex == questionIndex {
			return true
		}
	}
	return false
}

func (g *Game) allAnswered(questionIndex int) bool {
	for i := range g.Players {
		if !g.Players[i].answered(questionIndex) {
			return false
		}
	}
	return true
}
