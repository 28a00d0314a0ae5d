package client

import (
	"context"
	"sync"
)

const cartKey = "cart"

// CartState is a point-in-time view of the cart. Aggregates are recomputed
// in full from the item list after every transition; they never drift
// incrementally.
type CartState struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// CartStore holds the client-local cart. Phase 1 of every operation is the
// pure local transition, which always commits; phase 2 is an advisory
// remote mutation whose failure is surfaced through the warn callback.
type CartStore struct {
	mu      sync.Mutex
	items   []CartItem
	syncer  Syncer
	storage *Storage
	warn    WarnFunc
}

// NewCartStore builds a cart store. syncer and storage may be nil for a
// purely local cart; warn defaults to logging.
func NewCartStore(syncer Syncer, storage *Storage, warn WarnFunc) *CartStore {
	if warn == nil {
		warn = logWarn
	}
	return &CartStore{syncer: syncer, storage: storage, warn: warn}
}

// State returns a copy of the current cart with freshly computed totals.
func (s *CartStore) State() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *CartStore) snapshot() CartState {
	items := make([]CartItem, len(s.items))
	copy(items, s.items)
	st := CartState{Items: items}
	for _, item := range items {
		st.TotalItems += item.Quantity
		st.TotalPrice += item.Product.DiscountedPrice * float64(item.Quantity)
	}
	return st
}

// Add puts one unit of the product in the cart, merging with an existing
// entry instead of duplicating it.
func (s *CartStore) Add(ctx context.Context, p Product) CartState {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Product.Ref == p.Ref {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, CartItem{Product: p, Quantity: 1})
	}
	s.persistLocked()
	st := s.snapshot()
	s.mu.Unlock()

	if s.shouldSync(p.Ref) {
		if err := s.syncer.AddToCart(ctx, p.Ref.Remote(), 1); err != nil {
			s.warn("add to cart", err)
		}
	}
	return st
}

// Remove deletes the entry. Removing an absent ref is a no-op.
func (s *CartStore) Remove(ctx context.Context, ref ProductRef) CartState {
	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.items[i].Product.Ref == ref {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		s.persistLocked()
	}
	st := s.snapshot()
	s.mu.Unlock()

	if removed && s.shouldSync(ref) {
		if err := s.syncer.RemoveFromCart(ctx, ref.Remote()); err != nil {
			s.warn("remove from cart", err)
		}
	}
	return st
}

// SetQuantity replaces an entry's quantity; anything below 1 removes the
// entry entirely.
func (s *CartStore) SetQuantity(ctx context.Context, ref ProductRef, quantity int) CartState {
	if quantity < 1 {
		return s.Remove(ctx, ref)
	}
	s.mu.Lock()
	updated := false
	for i := range s.items {
		if s.items[i].Product.Ref == ref {
			s.items[i].Quantity = quantity
			updated = true
			break
		}
	}
	if updated {
		s.persistLocked()
	}
	st := s.snapshot()
	s.mu.Unlock()

	if updated && s.shouldSync(ref) {
		if err := s.syncer.UpdateCartItem(ctx, ref.Remote(), quantity); err != nil {
			s.warn("update cart item", err)
		}
	}
	return st
}

// Clear empties the cart, with a single bulk clear on the server side.
func (s *CartStore) Clear(ctx context.Context) CartState {
	s.mu.Lock()
	s.items = nil
	s.persistLocked()
	st := s.snapshot()
	s.mu.Unlock()

	if s.syncer != nil && s.syncer.Authenticated() {
		if err := s.syncer.ClearCart(ctx); err != nil {
			s.warn("clear cart", err)
		}
	}
	return st
}

// Load initializes the cart on session start. With a session present the
// server view wins; otherwise, or when the fetch fails, the locally
// persisted snapshot is adopted instead (and never discarded).
func (s *CartStore) Load(ctx context.Context) CartState {
	if s.syncer != nil && s.syncer.Authenticated() {
		items, err := s.syncer.FetchCart(ctx)
		if err == nil {
			s.mu.Lock()
			s.items = items
			s.persistLocked()
			st := s.snapshot()
			s.mu.Unlock()
			return st
		}
		s.warn("load cart", err)
	}
	return s.loadLocal()
}

func (s *CartStore) loadLocal() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storage != nil {
		var items []CartItem
		found, err := s.storage.Load(cartKey, &items)
		if err != nil {
			s.warn("load cart from storage", err)
		} else if found {
			s.items = items
		}
	}
	return s.snapshot()
}

func (s *CartStore) persistLocked() {
	if s.storage == nil {
		return
	}
	items := s.items
	if items == nil {
		items = []CartItem{}
	}
	if err := s.storage.Save(cartKey, items); err != nil {
		s.warn("save cart", err)
	}
}

func (s *CartStore) shouldSync(ref ProductRef) bool {
	return s.syncer != nil && s.syncer.Authenticated() && ref.IsRemote()
}
