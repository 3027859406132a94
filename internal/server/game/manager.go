package game

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

var ErrGameNotFound = errors.New("game not found")

type entry struct {
	mu sync.Mutex
	g  *GameState
}

// Manager owns every live game. Games are independent; calls on one game run
// one at a time.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*entry
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*entry)}
}

// NewGame starts a game from start, or from the standard layout when start is nil.
func (m *Manager) NewGame(start *xiangqi.Position) string {
	id := uuid.NewString()
	g := NewGameState(id, start)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = &entry{g: g}
	return id
}

func (m *Manager) get(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return e, nil
}

// Do runs fn with exclusive access to the game.
func (m *Manager) Do(id string, fn func(g *GameState) error) error {
	e, err := m.get(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.g)
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

// IDs lists the live games in a stable order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := maps.Keys(m.games)
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// EngineTurn asks mover for the side to move and commits its proposal. The game
// is not locked while mover thinks; the waiting flag keeps Play out meanwhile.
func (m *Manager) EngineTurn(ctx context.Context, id string, mover engine.Mover) (Record, error) {
	var req engine.Request
	err := m.Do(id, func(g *GameState) error {
		var err error
		req, err = g.BeginEngineTurn()
		return err
	})
	if err != nil {
		return Record{}, err
	}

	p, err := mover.ProposeMove(ctx, req)
	if err != nil {
		_ = m.Do(id, func(g *GameState) error {
			g.CancelEngineTurn(req.Turn)
			return nil
		})
		return Record{}, err
	}

	var rec Record
	err = m.Do(id, func(g *GameState) error {
		var err error
		rec, err = g.SubmitEngineMove(req.Turn, p)
		return err
	})
	return rec, err
}
