package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// fakeSyncer records every remote call and can be told to fail some or all
// of them.
type fakeSyncer struct {
	mu       sync.Mutex
	authed   bool
	failAll  bool
	failOnce int // fail the first n mutation calls
	calls    []string

	cart     []CartItem
	wishlist []Product
	fetchErr error
}

var errSimulated = errors.New("simulated server failure")

func (f *fakeSyncer) Authenticated() bool { return f.authed }

func (f *fakeSyncer) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.failAll {
		return errSimulated
	}
	if f.failOnce > 0 {
		f.failOnce--
		return errSimulated
	}
	return nil
}

func (f *fakeSyncer) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeSyncer) FetchCart(context.Context) ([]CartItem, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.cart, nil
}

func (f *fakeSyncer) AddToCart(_ context.Context, id string, qty int) error {
	return f.record(fmt.Sprintf("AddToCart:%s:%d", id, qty))
}

func (f *fakeSyncer) UpdateCartItem(_ context.Context, id string, qty int) error {
	return f.record(fmt.Sprintf("UpdateCartItem:%s:%d", id, qty))
}

func (f *fakeSyncer) RemoveFromCart(_ context.Context, id string) error {
	return f.record("RemoveFromCart:" + id)
}

func (f *fakeSyncer) ClearCart(context.Context) error {
	return f.record("ClearCart")
}

func (f *fakeSyncer) FetchWishlist(context.Context) ([]Product, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.wishlist, nil
}

func (f *fakeSyncer) AddToWishlist(_ context.Context, id string) error {
	return f.record("AddToWishlist:" + id)
}

func (f *fakeSyncer) RemoveFromWishlist(_ context.Context, id string) error {
	return f.record("RemoveFromWishlist:" + id)
}

// warnRecorder captures soft warnings surfaced by the stores.
type warnRecorder struct {
	mu    sync.Mutex
	warns []string
}

func (w *warnRecorder) fn(op string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warns = append(w.warns, op+": "+err.Error())
}

func (w *warnRecorder) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.warns)
}

func localProduct(id int, price float64) Product {
	return Product{
		Ref:             LocalRef(id),
		Name:            fmt.Sprintf("demo-%d", id),
		DiscountedPrice: price,
		OriginalPrice:   price + 10,
		InStock:         true,
	}
}

func remoteProduct(hex string, price float64) Product {
	return Product{
		Ref:             ParseRef(hex),
		Name:            "catalog-" + hex[:6],
		DiscountedPrice: price,
		OriginalPrice:   price + 10,
		InStock:         true,
	}
}
