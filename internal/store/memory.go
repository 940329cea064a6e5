package store

import (
	"context"
	"sort"
	"sync"

	"github.com/lmcginley620/SeniorProject/internal/game"
)

// Memory keeps games in a mutex-guarded map. Copies go in and copies come
// out, so no caller ever shares state with the map.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

func NewMemory() *Memory {
	return &Memory{games: make(map[string]*game.Game)}
}

func (m *Memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return g.Clone(), nil
}

func (m *Memory) Put(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *Memory) ListIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
