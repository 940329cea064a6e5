package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lmcginley620/SeniorProject/internal/game"
)

func testGame(id string) *game.Game {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &game.Game{
		ID:              id,
		HostID:          "host-1",
		Status:          game.StatusWaiting,
		Players:         []game.Player{},
		Questions:       []game.Question{},
		CreatedAt:       now,
		StatusChangedAt: now,
	}
}

func TestMemoryGetPut(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, "ABCD"); !errors.Is(err, game.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}

	g := testGame("ABCD")
	if err := m.Put(ctx, g); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := m.Get(ctx, "ABCD")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != "ABCD" || got.HostID != "host-1" {
		t.Fatalf("unexpected game %+v", got)
	}
}

func TestMemoryIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	g := testGame("ABCD")
	m.Put(ctx, g)

	// Mutating the value we put must not reach the store
	g.Status = game.StatusEnded
	g.Players = append(g.Players, game.Player{ID: "p1", Name: "Alice"})

	got, _ := m.Get(ctx, "ABCD")
	if got.Status != game.StatusWaiting {
		t.Fatalf("store leaked a caller mutation, status %s", got.Status)
	}
	if len(got.Players) != 0 {
		t.Fatal("store leaked a caller's player append")
	}

	// Mutating what we got back must not reach the store either
	got.Status = game.StatusEnded
	again, _ := m.Get(ctx, "ABCD")
	if again.Status != game.StatusWaiting {
		t.Fatal("store handed out shared state")
	}
}

func TestMemoryListIDs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	ids, err := m.ListIDs(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}

	m.Put(ctx, testGame("BBBB"))
	m.Put(ctx, testGame("AAAA"))

	ids, _ = m.ListIDs(ctx)
	if len(ids) != 2 || ids[0] != "AAAA" || ids[1] != "BBBB" {
		t.Fatalf("expected sorted [AAAA BBBB], got %v", ids)
	}
}
