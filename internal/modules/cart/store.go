package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrStoreClosed = errors.New("cart store torn down")

// Publisher receives a snapshot after every persisted change.
type Publisher interface {
	Publish(session string, snap Snapshot)
}

type StoreOptions struct {
	DiscountLiteral string
	Publisher       Publisher
	Log             *zap.Logger
}

// Store owns the cart of one session. Create it with NewStore, load it with
// Hydrate and release it with Teardown. Mutations are persisted before they
// become visible.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	session  string
	opts     StoreOptions
	cart     Cart
	hydrated bool
	closed   bool
}

func NewStore(storage Storage, session string, opts StoreOptions) *Store {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Store{storage: storage, session: session, opts: opts}
}

func (s *Store) Session() string { return s.session }

// Hydrate replaces in-memory state with the persisted one. Unreadable items
// are logged and treated as an empty cart.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	itemsKey, discountKey := ItemsKey(s.session), DiscountKey(s.session)
	values, err := s.storage.Load(ctx, itemsKey, discountKey)
	if err != nil {
		return fmt.Errorf("hydrate cart: %w", err)
	}

	var next Cart
	if raw, ok := values[itemsKey]; ok && raw != "" {
		var items []Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.opts.Log.Warn("discarding unreadable cart", zap.String("session", s.session), zap.Error(err))
		} else {
			for _, it := range items {
				if _, err := next.AddItem(it, it.Quantity); err != nil {
					s.opts.Log.Warn("dropping invalid cart line", zap.String("session", s.session), zap.String("item_id", it.ID))
				}
			}
		}
	}
	next.SetDiscountCode(values[discountKey])

	s.cart = next
	s.hydrated = true
	return nil
}

// Teardown drops in-memory state and detaches the publisher. The store
// cannot be used afterwards.
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = Cart{}
	s.opts.Publisher = nil
	s.closed = true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(&s.cart, s.opts.DiscountLiteral)
}

func (s *Store) Item(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Item(id)
}

func (s *Store) AddItem(ctx context.Context, item Item, quantity int) (Snapshot, error) {
	return s.mutate(ctx, func(c *Cart) error {
		_, err := c.AddItem(item, quantity)
		return err
	})
}

func (s *Store) RemoveItem(ctx context.Context, id string) (Snapshot, error) {
	return s.mutate(ctx, func(c *Cart) error {
		c.RemoveItem(id)
		return nil
	})
}

func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) (Snapshot, error) {
	return s.mutate(ctx, func(c *Cart) error {
		_, err := c.UpdateQuantity(id, quantity)
		return err
	})
}

func (s *Store) Clear(ctx context.Context) (Snapshot, error) {
	return s.mutate(ctx, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

func (s *Store) SetDiscountCode(ctx context.Context, code string) (Snapshot, error) {
	return s.mutate(ctx, func(c *Cart) error {
		c.SetDiscountCode(code)
		return nil
	})
}

func (s *Store) mutate(ctx context.Context, fn func(c *Cart) error) (Snapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrStoreClosed
	}

	next := s.cart.clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	if err := s.persist(ctx, &next); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	s.cart = next
	snap := snapshotOf(&s.cart, s.opts.DiscountLiteral)
	pub := s.opts.Publisher
	s.mu.Unlock()

	if pub != nil {
		pub.Publish(s.session, snap)
	}
	return snap, nil
}

func (s *Store) persist(ctx context.Context, c *Cart) error {
	itemsKey, discountKey := ItemsKey(s.session), DiscountKey(s.session)
	if c.State() == StateEmpty && c.DiscountCode() == "" {
		if err := s.storage.Delete(ctx, itemsKey, discountKey); err != nil {
			return fmt.Errorf("persist cart: %w", err)
		}
		return nil
	}

	raw, err := json.Marshal(c.Items())
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Save(ctx, map[string]string{
		itemsKey:    string(raw),
		discountKey: c.DiscountCode(),
	}); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
