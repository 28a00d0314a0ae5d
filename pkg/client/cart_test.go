package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hexA = "507f1f77bcf86cd799439011"
	hexB = "65f0aa11bb22cc33dd44ee55"
)

// recomputeCart derives the aggregates from scratch, independently of the
// store's own bookkeeping.
func recomputeCart(st CartState) (int, float64) {
	items := 0
	price := 0.0
	for _, it := range st.Items {
		items += it.Quantity
		price += it.Product.DiscountedPrice * float64(it.Quantity)
	}
	return items, price
}

func assertAggregates(t *testing.T, st CartState) {
	t.Helper()
	wantItems, wantPrice := recomputeCart(st)
	assert.Equal(t, wantItems, st.TotalItems)
	assert.InDelta(t, wantPrice, st.TotalPrice, 1e-9)
}

func TestCartAddMergesDuplicates(t *testing.T) {
	s := NewCartStore(nil, nil, nil)
	ctx := context.Background()
	p := remoteProduct(hexA, 100)

	s.Add(ctx, p)
	st := s.Add(ctx, p)

	require.Len(t, st.Items, 1)
	assert.Equal(t, 2, st.Items[0].Quantity)
	assert.Equal(t, 2, st.TotalItems)
	assert.InDelta(t, 200, st.TotalPrice, 1e-9)
}

func TestCartAggregatesMatchFullRecompute(t *testing.T) {
	s := NewCartStore(nil, nil, nil)
	ctx := context.Background()
	a := remoteProduct(hexA, 19.99)
	b := remoteProduct(hexB, 7.5)
	c := localProduct(3, 249.95)

	ops := []func() CartState{
		func() CartState { return s.Add(ctx, a) },
		func() CartState { return s.Add(ctx, b) },
		func() CartState { return s.Add(ctx, a) },
		func() CartState { return s.Add(ctx, c) },
		func() CartState { return s.SetQuantity(ctx, b.Ref, 5) },
		func() CartState { return s.Remove(ctx, a.Ref) },
		func() CartState { return s.SetQuantity(ctx, c.Ref, 2) },
		func() CartState { return s.SetQuantity(ctx, b.Ref, 0) },
		func() CartState { return s.Add(ctx, a) },
		func() CartState { return s.Clear(ctx) },
	}
	for i, op := range ops {
		st := op()
		assertAggregates(t, st)
		assert.Equal(t, len(st.Items), len(s.State().Items), "op %d", i)
	}
}

func TestCartRemoveUnknownIsNoop(t *testing.T) {
	s := NewCartStore(nil, nil, nil)
	ctx := context.Background()
	s.Add(ctx, remoteProduct(hexA, 10))

	st := s.Remove(ctx, ParseRef(hexB))
	require.Len(t, st.Items, 1)
	assertAggregates(t, st)
}

func TestCartSetQuantityBelowOneRemoves(t *testing.T) {
	ctx := context.Background()
	for _, qty := range []int{0, -3} {
		s := NewCartStore(nil, nil, nil)
		p := remoteProduct(hexA, 10)
		s.Add(ctx, p)

		st := s.SetQuantity(ctx, p.Ref, qty)
		assert.Empty(t, st.Items)
		assert.Zero(t, st.TotalItems)
		assert.Zero(t, st.TotalPrice)
	}
}

func TestCartLocalRefNeverSyncs(t *testing.T) {
	sync := &fakeSyncer{authed: true}
	s := NewCartStore(sync, nil, nil)
	ctx := context.Background()
	p := localProduct(7, 99)

	s.Add(ctx, p)
	s.SetQuantity(ctx, p.Ref, 4)
	s.Remove(ctx, p.Ref)

	assert.Empty(t, sync.callLog())
}

func TestCartSyncFailureKeepsLocalState(t *testing.T) {
	sync := &fakeSyncer{authed: true, failAll: true}
	warns := &warnRecorder{}
	s := NewCartStore(sync, nil, warns.fn)
	ctx := context.Background()
	p := remoteProduct(hexA, 50)

	st := s.Add(ctx, p)

	require.Len(t, st.Items, 1)
	assert.Equal(t, 1, st.Items[0].Quantity)
	assert.Equal(t, 1, warns.count())
	// The failed call was still attempted.
	assert.Equal(t, []string{"AddToCart:" + hexA + ":1"}, sync.callLog())

	st = s.Remove(ctx, p.Ref)
	assert.Empty(t, st.Items)
	assert.Equal(t, 2, warns.count())
}

func TestCartRemoteMutationsReachServer(t *testing.T) {
	sync := &fakeSyncer{authed: true}
	s := NewCartStore(sync, nil, nil)
	ctx := context.Background()
	p := remoteProduct(hexA, 50)

	s.Add(ctx, p)
	s.SetQuantity(ctx, p.Ref, 3)
	s.Remove(ctx, p.Ref)
	s.Clear(ctx)

	assert.Equal(t, []string{
		"AddToCart:" + hexA + ":1",
		"UpdateCartItem:" + hexA + ":3",
		"RemoveFromCart:" + hexA,
		"ClearCart",
	}, sync.callLog())
}

func TestCartAnonymousNeverSyncs(t *testing.T) {
	sync := &fakeSyncer{authed: false}
	s := NewCartStore(sync, nil, nil)
	ctx := context.Background()

	s.Add(ctx, remoteProduct(hexA, 50))
	s.Clear(ctx)

	assert.Empty(t, sync.callLog())
}

func TestCartLoadServerViewWins(t *testing.T) {
	storage := NewStorage(t.TempDir())
	require.NoError(t, storage.Save(cartKey, []CartItem{{Product: localProduct(1, 5), Quantity: 9}}))

	sync := &fakeSyncer{
		authed: true,
		cart:   []CartItem{{Product: remoteProduct(hexA, 20), Quantity: 2}},
	}
	s := NewCartStore(sync, storage, nil)

	st := s.Load(context.Background())
	require.Len(t, st.Items, 1)
	assert.Equal(t, ParseRef(hexA), st.Items[0].Product.Ref)
	assert.Equal(t, 2, st.TotalItems)
	assertAggregates(t, st)
}

func TestCartLoadFallsBackToStorage(t *testing.T) {
	storage := NewStorage(t.TempDir())
	saved := []CartItem{{Product: localProduct(1, 5), Quantity: 9}}
	require.NoError(t, storage.Save(cartKey, saved))

	sync := &fakeSyncer{authed: true, fetchErr: errSimulated}
	warns := &warnRecorder{}
	s := NewCartStore(sync, storage, warns.fn)

	st := s.Load(context.Background())
	require.Len(t, st.Items, 1)
	assert.Equal(t, 9, st.Items[0].Quantity)
	assert.Equal(t, 1, warns.count())

	// The fallback must not wipe the persisted snapshot.
	var onDisk []CartItem
	found, err := storage.Load(cartKey, &onDisk)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved, onDisk)
}

func TestCartLoadWithoutTokenUsesStorage(t *testing.T) {
	storage := NewStorage(t.TempDir())
	require.NoError(t, storage.Save(cartKey, []CartItem{{Product: remoteProduct(hexA, 12), Quantity: 3}}))

	s := NewCartStore(&fakeSyncer{authed: false}, storage, nil)
	st := s.Load(context.Background())
	require.Len(t, st.Items, 1)
	assert.Equal(t, 3, st.TotalItems)
}

func TestCartPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := NewCartStore(nil, NewStorage(dir), nil)
	first.Add(ctx, remoteProduct(hexA, 30))
	first.Add(ctx, remoteProduct(hexA, 30))

	second := NewCartStore(nil, NewStorage(dir), nil)
	st := second.Load(ctx)
	require.Len(t, st.Items, 1)
	assert.Equal(t, 2, st.Items[0].Quantity)
	assertAggregates(t, st)
}

func TestCartLoadToleratesCorruptStorage(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorage(dir)
	require.NoError(t, storage.Save(cartKey, "not a cart"))

	warns := &warnRecorder{}
	s := NewCartStore(nil, storage, warns.fn)
	st := s.Load(context.Background())
	assert.Empty(t, st.Items)
	assert.Equal(t, 1, warns.count())
}
