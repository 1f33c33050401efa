package tablehub

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerforbots/internal/game"
)

// ErrUnknownGame is returned when a lookup names a game id the registry
// has never seen (or has since evicted).
var ErrUnknownGame = errors.New("tablehub: unknown game")

// Registry owns every active Table in the process: spec.md §5's "Multiple
// games proceed in parallel" is this type spawning one actor goroutine
// per game.
type Registry struct {
	logger *log.Logger

	mu     sync.RWMutex
	tables map[string]*Table
	cancel map[string]context.CancelFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		logger: logger,
		tables: make(map[string]*Table),
		cancel: make(map[string]context.CancelFunc),
	}
}

// Create registers a new Table under id, starts its actor goroutine, and
// returns it. The caller still must assign seats (SitBot) and call
// Start() before submitting commands.
func (r *Registry) Create(ctx context.Context, id string, rules game.ChargingRules, seeds SeedSource) *Table {
	tableCtx, cancel := context.WithCancel(ctx)
	t := New(id, rules, r.logger, seeds)

	r.mu.Lock()
	r.tables[id] = t
	r.cancel[id] = cancel
	r.mu.Unlock()

	go t.Run(tableCtx)
	return t
}

// Get returns the Table registered under id, or ErrUnknownGame.
func (r *Registry) Get(id string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, ErrUnknownGame
	}
	return t, nil
}

// Remove stops id's actor goroutine and drops it from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	cancel, ok := r.cancel[id]
	delete(r.tables, id)
	delete(r.cancel, id)
	r.mu.Unlock()
	if ok {
		cancel()
	}
}

// Len reports how many games are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}
