package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPersister struct {
	saved   []Snapshot
	loaded  *Snapshot
	deleted []string
	saveErr error
	loadErr error
}

func (p *stubPersister) Save(_ context.Context, _ string, snap Snapshot) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved = append(p.saved, snap)
	return nil
}

func (p *stubPersister) Load(_ context.Context, _ string) (*Snapshot, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.loaded, nil
}

func (p *stubPersister) Delete(_ context.Context, sessionID string) error {
	p.deleted = append(p.deleted, sessionID)
	return nil
}

func newTestStore(t *testing.T, persister Persister) *Store {
	t.Helper()
	store, err := NewStore("session-1", persister)
	require.NoError(t, err)
	return store
}

func TestNewStore_Validation(t *testing.T) {
	_, err := NewStore("", &stubPersister{})
	assert.Error(t, err)

	_, err = NewStore("session-1", nil)
	assert.Error(t, err)
}

func TestStore_AddItem_NewAndIncrement(t *testing.T) {
	ctx := context.Background()
	persister := &stubPersister{}
	store := newTestStore(t, persister)

	item := Item{ID: "nl-auto", Name: "Northern Lights Auto", Price: 12000}
	require.NoError(t, store.AddItem(ctx, item))
	require.NoError(t, store.AddItem(ctx, item))
	require.NoError(t, store.AddItem(ctx, Item{ID: "ak-47", Name: "AK-47", Price: 15000}))

	state := store.State()
	require.Len(t, state.Items, 2)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, 1, state.Items[1].Quantity)
	assert.Equal(t, 3, state.TotalItems)
	assert.Equal(t, int64(39000), state.TotalPrice)
}

func TestStore_AddItem_IgnoresIncomingQuantity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &stubPersister{})

	require.NoError(t, store.AddItem(ctx, Item{ID: "nl-auto", Price: 12000, Quantity: 99}))

	assert.Equal(t, 1, store.ItemQuantity("nl-auto"))
}

func TestStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &stubPersister{})
	require.NoError(t, store.AddItem(ctx, Item{ID: "nl-auto", Price: 12000}))

	require.NoError(t, store.UpdateQuantity(ctx, "nl-auto", 5))
	assert.Equal(t, 5, store.ItemQuantity("nl-auto"))
	assert.Equal(t, int64(60000), store.State().TotalPrice)

	// zero and negative quantities remove the line
	require.NoError(t, store.UpdateQuantity(ctx, "nl-auto", 0))
	assert.False(t, store.Contains("nl-auto"))
	assert.Empty(t, store.State().Items)
}

func TestStore_RemoveItem(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &stubPersister{})
	require.NoError(t, store.AddItem(ctx, Item{ID: "nl-auto", Price: 12000}))
	require.NoError(t, store.AddItem(ctx, Item{ID: "ak-47", Price: 15000}))

	require.NoError(t, store.RemoveItem(ctx, "nl-auto"))

	state := store.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "ak-47", state.Items[0].ID)
	assert.Equal(t, int64(15000), state.TotalPrice)
}

func TestStore_ClearCart(t *testing.T) {
	ctx := context.Background()
	persister := &stubPersister{}
	store := newTestStore(t, persister)
	require.NoError(t, store.AddItem(ctx, Item{ID: "nl-auto", Price: 12000}))

	require.NoError(t, store.ClearCart(ctx))

	state := store.State()
	assert.Empty(t, state.Items)
	assert.Zero(t, state.TotalItems)
	assert.Zero(t, state.TotalPrice)

	last := persister.saved[len(persister.saved)-1]
	assert.Empty(t, last.Items)
}

func TestStore_PersistsItemMutationsOnly(t *testing.T) {
	ctx := context.Background()
	persister := &stubPersister{}
	store := newTestStore(t, persister)

	require.NoError(t, store.AddItem(ctx, Item{ID: "nl-auto", Price: 12000}))
	writes := len(persister.saved)

	require.NoError(t, store.SetCheckoutStep(2))
	store.UpdateCustomerInfo(CustomerInfoPatch{Email: ptr("ana@example.com")})
	store.SetSubmitting(true)

	assert.Equal(t, writes, len(persister.saved))
}

func TestStore_CheckoutFlow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &stubPersister{})
	require.NoError(t, store.AddItem(ctx, Item{ID: "nl-auto", Price: 12000}))

	assert.Equal(t, 1, store.State().Checkout.Step)
	assert.Error(t, store.SetCheckoutStep(3))

	store.UpdateCustomerInfo(CustomerInfoPatch{
		FullName: ptr("Ana Diaz"),
		Email:    ptr("ana@example.com"),
	})
	store.UpdateCustomerInfo(CustomerInfoPatch{Phone: ptr("+56911111111")})

	info := store.State().Checkout.CustomerInfo
	assert.Equal(t, "Ana Diaz", info.FullName)
	assert.Equal(t, "ana@example.com", info.Email)
	assert.Equal(t, "+56911111111", info.Phone)

	require.NoError(t, store.SetCheckoutStep(2))
	store.SetSubmitting(true)
	require.NoError(t, store.CompleteOrder(ctx))

	state := store.State()
	assert.True(t, state.Checkout.OrderPlaced)
	assert.False(t, state.Checkout.Submitting)
	assert.Empty(t, state.Items)

	store.ResetCheckout()
	assert.Equal(t, defaultCheckoutState(), store.State().Checkout)
}

func TestStore_RestoreLoadsItemsNotCheckout(t *testing.T) {
	ctx := context.Background()
	persister := &stubPersister{
		loaded: &Snapshot{
			Items:      []Item{{ID: "nl-auto", Price: 12000, Quantity: 2}},
			TotalItems: 2,
			TotalPrice: 24000,
		},
	}
	store := newTestStore(t, persister)
	require.NoError(t, store.Restore(ctx))

	state := store.State()
	assert.Equal(t, 2, state.TotalItems)
	assert.Equal(t, int64(24000), state.TotalPrice)
	assert.Equal(t, defaultCheckoutState(), state.Checkout)
}

func TestStore_SubscriberSeesEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &stubPersister{})

	var seen []State
	store.Subscribe(func(state State) { seen = append(seen, state) })

	require.NoError(t, store.AddItem(ctx, Item{ID: "nl-auto", Price: 12000}))
	require.NoError(t, store.SetCheckoutStep(2))

	require.Len(t, seen, 2)
	assert.Equal(t, 1, seen[0].TotalItems)
	assert.Equal(t, 2, seen[1].Checkout.Step)
}

func ptr[T any](v T) *T { return &v }

func TestStore_TrySetSubmitting(t *testing.T) {
	store := newTestStore(t, &stubPersister{})

	assert.True(t, store.TrySetSubmitting())
	assert.True(t, store.State().Checkout.Submitting)
	assert.False(t, store.TrySetSubmitting())

	store.SetSubmitting(false)
	assert.True(t, store.TrySetSubmitting())
}

func TestStore_TrySetSubmittingSingleWinner(t *testing.T) {
	store := newTestStore(t, &stubPersister{})

	const attempts = 16
	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.TrySetSubmitting() {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, wins)
}
