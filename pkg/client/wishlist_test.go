package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistAddIsIdempotent(t *testing.T) {
	sync := &fakeSyncer{authed: true}
	s := NewWishlistStore(sync, nil, nil)
	ctx := context.Background()
	p := remoteProduct(hexA, 40)

	s.Add(ctx, p)
	st := s.Add(ctx, p)

	require.Len(t, st.Items, 1)
	assert.Equal(t, 1, st.TotalItems)
	// The duplicate add is a local no-op and produces no second server call.
	assert.Equal(t, []string{"AddToWishlist:" + hexA}, sync.callLog())
}

func TestWishlistRemoveUnknownIsNoop(t *testing.T) {
	sync := &fakeSyncer{authed: true}
	s := NewWishlistStore(sync, nil, nil)
	ctx := context.Background()
	s.Add(ctx, remoteProduct(hexA, 40))

	st := s.Remove(ctx, ParseRef(hexB))
	require.Len(t, st.Items, 1)
	assert.Equal(t, []string{"AddToWishlist:" + hexA}, sync.callLog())
}

func TestWishlistTotalTracksDistinctCount(t *testing.T) {
	s := NewWishlistStore(nil, nil, nil)
	ctx := context.Background()

	s.Add(ctx, remoteProduct(hexA, 40))
	s.Add(ctx, remoteProduct(hexB, 15))
	st := s.Add(ctx, localProduct(5, 8))

	assert.Equal(t, 3, st.TotalItems)
	assert.Equal(t, len(st.Items), st.TotalItems)

	st = s.Remove(ctx, ParseRef(hexA))
	assert.Equal(t, 2, st.TotalItems)
}

func TestWishlistLocalRefNeverSyncs(t *testing.T) {
	sync := &fakeSyncer{authed: true}
	s := NewWishlistStore(sync, nil, nil)
	ctx := context.Background()
	p := localProduct(9, 12)

	s.Add(ctx, p)
	s.Remove(ctx, p.Ref)

	assert.Empty(t, sync.callLog())
}

func TestWishlistSyncFailureKeepsLocalState(t *testing.T) {
	sync := &fakeSyncer{authed: true, failAll: true}
	warns := &warnRecorder{}
	s := NewWishlistStore(sync, nil, warns.fn)
	ctx := context.Background()

	st := s.Add(ctx, remoteProduct(hexA, 40))
	require.Len(t, st.Items, 1)
	assert.Equal(t, 1, warns.count())
}

func TestWishlistClearToleratesIndividualFailures(t *testing.T) {
	sync := &fakeSyncer{authed: true}
	warns := &warnRecorder{}
	s := NewWishlistStore(sync, nil, warns.fn)
	ctx := context.Background()

	s.Add(ctx, remoteProduct(hexA, 40))
	s.Add(ctx, remoteProduct(hexB, 15))
	s.Add(ctx, localProduct(5, 8))
	sync.mu.Lock()
	sync.calls = nil
	sync.failOnce = 1
	sync.mu.Unlock()

	st := s.Clear(ctx)

	assert.Empty(t, st.Items)
	assert.Zero(t, st.TotalItems)
	// Both remote deletes were attempted even though the first failed; the
	// local-only item produced none.
	assert.Equal(t, []string{
		"RemoveFromWishlist:" + hexA,
		"RemoveFromWishlist:" + hexB,
	}, sync.callLog())
	assert.Equal(t, 1, warns.count())
}

func TestWishlistLoadServerViewWins(t *testing.T) {
	storage := NewStorage(t.TempDir())
	require.NoError(t, storage.Save(wishlistKey, []Product{localProduct(1, 5)}))

	sync := &fakeSyncer{authed: true, wishlist: []Product{remoteProduct(hexA, 20)}}
	s := NewWishlistStore(sync, storage, nil)

	st := s.Load(context.Background())
	require.Len(t, st.Items, 1)
	assert.Equal(t, ParseRef(hexA), st.Items[0].Ref)
}

func TestWishlistLoadFallsBackToStorage(t *testing.T) {
	storage := NewStorage(t.TempDir())
	saved := []Product{remoteProduct(hexB, 11)}
	require.NoError(t, storage.Save(wishlistKey, saved))

	sync := &fakeSyncer{authed: true, fetchErr: errSimulated}
	warns := &warnRecorder{}
	s := NewWishlistStore(sync, storage, warns.fn)

	st := s.Load(context.Background())
	require.Len(t, st.Items, 1)
	assert.Equal(t, ParseRef(hexB), st.Items[0].Ref)
	assert.Equal(t, 1, warns.count())
}
