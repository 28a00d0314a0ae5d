package client

import (
	"context"
	"log"
)

// Syncer mirrors local mutations to the server. Every call is advisory:
// callers commit the local change first and report sync errors through a
// WarnFunc, never by rolling back.
type Syncer interface {
	// Authenticated reports whether a session token is present. Stores skip
	// all remote calls while it is false.
	Authenticated() bool

	FetchCart(ctx context.Context) ([]CartItem, error)
	AddToCart(ctx context.Context, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error

	FetchWishlist(ctx context.Context) ([]Product, error)
	AddToWishlist(ctx context.Context, productID string) error
	RemoveFromWishlist(ctx context.Context, productID string) error
}

// WarnFunc receives non-fatal sync failures.
type WarnFunc func(op string, err error)

func logWarn(op string, err error) {
	log.Printf("warning: %s failed: %v", op, err)
}
