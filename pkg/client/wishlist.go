package client

import (
	"context"
	"sync"
)

const wishlistKey = "wishlist"

// WishlistState is a point-in-time view of the wishlist; TotalItems is the
// distinct product count, recomputed from the list.
type WishlistState struct {
	Items      []Product `json:"items"`
	TotalItems int       `json:"totalItems"`
}

// WishlistStore holds the client-local wishlist, a duplicate-free list of
// products. Same local-optimistic policy as CartStore.
type WishlistStore struct {
	mu      sync.Mutex
	items   []Product
	syncer  Syncer
	storage *Storage
	warn    WarnFunc
}

func NewWishlistStore(syncer Syncer, storage *Storage, warn WarnFunc) *WishlistStore {
	if warn == nil {
		warn = logWarn
	}
	return &WishlistStore{syncer: syncer, storage: storage, warn: warn}
}

func (s *WishlistStore) State() WishlistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *WishlistStore) snapshot() WishlistState {
	items := make([]Product, len(s.items))
	copy(items, s.items)
	return WishlistState{Items: items, TotalItems: len(items)}
}

// Add inserts the product; adding one already present is a no-op, locally
// and remotely.
func (s *WishlistStore) Add(ctx context.Context, p Product) WishlistState {
	s.mu.Lock()
	for _, item := range s.items {
		if item.Ref == p.Ref {
			st := s.snapshot()
			s.mu.Unlock()
			return st
		}
	}
	s.items = append(s.items, p)
	s.persistLocked()
	st := s.snapshot()
	s.mu.Unlock()

	if s.shouldSync(p.Ref) {
		if err := s.syncer.AddToWishlist(ctx, p.Ref.Remote()); err != nil {
			s.warn("add to wishlist", err)
		}
	}
	return st
}

func (s *WishlistStore) Remove(ctx context.Context, ref ProductRef) WishlistState {
	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.items[i].Ref == ref {
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
		if err := s.syncer.RemoveFromWishlist(ctx, ref.Remote()); err != nil {
			s.warn("remove from wishlist", err)
		}
	}
	return st
}

// Clear empties the wishlist. The server has no bulk wishlist clear, so the
// mirror is a sequence of per-item deletes; individual failures are warned
// and do not abort the remaining deletes.
func (s *WishlistStore) Clear(ctx context.Context) WishlistState {
	s.mu.Lock()
	var remote []string
	for _, item := range s.items {
		if item.Ref.IsRemote() {
			remote = append(remote, item.Ref.Remote())
		}
	}
	s.items = nil
	s.persistLocked()
	st := s.snapshot()
	s.mu.Unlock()

	if s.syncer != nil && s.syncer.Authenticated() {
		for _, id := range remote {
			if err := s.syncer.RemoveFromWishlist(ctx, id); err != nil {
				s.warn("clear wishlist", err)
			}
		}
	}
	return st
}

// Load initializes the wishlist on session start, server view first, local
// snapshot as the fallback.
func (s *WishlistStore) Load(ctx context.Context) WishlistState {
	if s.syncer != nil && s.syncer.Authenticated() {
		items, err := s.syncer.FetchWishlist(ctx)
		if err == nil {
			s.mu.Lock()
			s.items = items
			s.persistLocked()
			st := s.snapshot()
			s.mu.Unlock()
			return st
		}
		s.warn("load wishlist", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storage != nil {
		var items []Product
		found, err := s.storage.Load(wishlistKey, &items)
		if err != nil {
			s.warn("load wishlist from storage", err)
		} else if found {
			s.items = items
		}
	}
	return s.snapshot()
}

func (s *WishlistStore) persistLocked() {
	if s.storage == nil {
		return
	}
	items := s.items
	if items == nil {
		items = []Product{}
	}
	if err := s.storage.Save(wishlistKey, items); err != nil {
		s.warn("save wishlist", err)
	}
}

func (s *WishlistStore) shouldSync(ref ProductRef) bool {
	return s.syncer != nil && s.syncer.Authenticated() && ref.IsRemote()
}
