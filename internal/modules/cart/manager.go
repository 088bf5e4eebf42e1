package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager opens short-lived Stores per request and serializes work on the
// same session within this process. Across processes the last write wins and
// connected tabs reconcile through hub pushes.
type Manager struct {
	storage Storage
	hub     *Hub
	literal string
	log     *zap.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(storage Storage, hub *Hub, discountLiteral string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		storage: storage,
		hub:     hub,
		literal: discountLiteral,
		log:     log,
		locks:   make(map[string]*sessionLock),
	}
}

func (m *Manager) DiscountLiteral() string { return m.literal }

// With hydrates the session's store, runs fn and returns the resulting snapshot.
func (m *Manager) With(ctx context.Context, session string, fn func(s *Store) error) (Snapshot, error) {
	unlock := m.lock(session)
	defer unlock()

	opts := StoreOptions{DiscountLiteral: m.literal, Log: m.log}
	if m.hub != nil {
		opts.Publisher = m.hub
	}
	store := NewStore(m.storage, session, opts)
	defer store.Teardown()

	if err := store.Hydrate(ctx); err != nil {
		return Snapshot{}, err
	}
	if fn != nil {
		if err := fn(store); err != nil {
			return Snapshot{}, err
		}
	}
	return store.Snapshot(), nil
}

// Get returns the current snapshot without changing anything.
func (m *Manager) Get(ctx context.Context, session string) (Snapshot, error) {
	return m.With(ctx, session, nil)
}

func (m *Manager) lock(session string) func() {
	m.mu.Lock()
	l, ok := m.locks[session]
	if !ok {
		l = &sessionLock{}
		m.locks[session] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, session)
		}
		m.mu.Unlock()
	}
}
