package cart

import (
	"context"
	"fmt"
	"sync"
)

// Persister saves and restores cart snapshots across sessions.
type Persister interface {
	Save(ctx context.Context, sessionID string, snap Snapshot) error
	// Load returns nil when no snapshot exists for the session.
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// Listener observes the cart state after every mutation.
type Listener func(State)

// Store is the shared state container for one cart session. All mutations
// recompute totals; item mutations are written through the Persister while
// checkout state stays in memory only.
type Store struct {
	mu        sync.Mutex
	sessionID string
	items     []Item
	checkout  CheckoutState
	persister Persister
	listeners []Listener
}

// NewStore builds an empty store bound to a session.
func NewStore(sessionID string, persister Persister) (*Store, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}
	if persister == nil {
		return nil, fmt.Errorf("cart persister required")
	}
	return &Store{
		sessionID: sessionID,
		checkout:  defaultCheckoutState(),
		persister: persister,
	}, nil
}

// Restore loads the persisted snapshot, if any, into the store.
func (s *Store) Restore(ctx context.Context) error {
	snap, err := s.persister.Load(ctx, s.sessionID)
	if err != nil {
		return fmt.Errorf("load cart snapshot: %w", err)
	}
	if snap == nil {
		return nil
	}
	s.mu.Lock()
	s.items = append([]Item(nil), snap.Items...)
	s.mu.Unlock()
	return nil
}

// Subscribe registers a listener notified after each mutation.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// AddItem inserts the item with quantity 1, or increments the quantity when
// the id is already present.
func (s *Store) AddItem(ctx context.Context, item Item) error {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	return s.finishItemMutation(ctx)
}

// RemoveItem deletes the line entirely.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.finishItemMutation(ctx)
}

// UpdateQuantity sets the quantity directly; a quantity of zero or less
// removes the item.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, id)
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	return s.finishItemMutation(ctx)
}

// ClearCart empties the item list and zeroes totals.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	return s.finishItemMutation(ctx)
}

// SetCheckoutStep moves the wizard to the given step.
func (s *Store) SetCheckoutStep(step int) error {
	if step != 1 && step != 2 {
		return fmt.Errorf("invalid checkout step %d", step)
	}
	s.mu.Lock()
	s.checkout.Step = step
	s.finishCheckoutMutation()
	return nil
}

// UpdateCustomerInfo shallow-merges the provided fields.
func (s *Store) UpdateCustomerInfo(patch CustomerInfoPatch) {
	s.mu.Lock()
	info := &s.checkout.CustomerInfo
	if patch.FullName != nil {
		info.FullName = *patch.FullName
	}
	if patch.Email != nil {
		info.Email = *patch.Email
	}
	if patch.Phone != nil {
		info.Phone = *patch.Phone
	}
	if patch.Address != nil {
		info.Address = *patch.Address
	}
	if patch.City != nil {
		info.City = *patch.City
	}
	if patch.PostalCode != nil {
		info.PostalCode = *patch.PostalCode
	}
	if patch.Notes != nil {
		info.Notes = *patch.Notes
	}
	s.finishCheckoutMutation()
}

// SetSubmitting toggles the in-flight submission flag.
func (s *Store) SetSubmitting(submitting bool) {
	s.mu.Lock()
	s.checkout.Submitting = submitting
	s.finishCheckoutMutation()
}

// TrySetSubmitting flips the in-flight submission flag on, test-and-set
// under one lock hold. It reports false when a submission is already
// running, so concurrent submits cannot both pass the guard.
func (s *Store) TrySetSubmitting() bool {
	s.mu.Lock()
	if s.checkout.Submitting {
		s.mu.Unlock()
		return false
	}
	s.checkout.Submitting = true
	s.finishCheckoutMutation()
	return true
}

// CompleteOrder marks the checkout terminal and clears the cart.
func (s *Store) CompleteOrder(ctx context.Context) error {
	s.mu.Lock()
	s.checkout.OrderPlaced = true
	s.checkout.Submitting = false
	s.items = nil
	return s.finishItemMutation(ctx)
}

// ResetCheckout restores the default checkout state.
func (s *Store) ResetCheckout() {
	s.mu.Lock()
	s.checkout = defaultCheckoutState()
	s.finishCheckoutMutation()
}

// State returns a copy of the full cart view.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// ItemQuantity returns the quantity for the given id, zero when absent.
func (s *Store) ItemQuantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

// Contains reports whether the id is in the cart.
func (s *Store) Contains(id string) bool {
	return s.ItemQuantity(id) > 0
}

// finishItemMutation persists the snapshot and notifies listeners. The caller
// must hold the lock; it is released here.
func (s *Store) finishItemMutation(ctx context.Context) error {
	state := s.stateLocked()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}

	snap := Snapshot{
		Items:      state.Items,
		TotalItems: state.TotalItems,
		TotalPrice: state.TotalPrice,
	}
	if err := s.persister.Save(ctx, s.sessionID, snap); err != nil {
		return fmt.Errorf("persist cart snapshot: %w", err)
	}
	return nil
}

// finishCheckoutMutation notifies listeners without persisting. The caller
// must hold the lock; it is released here.
func (s *Store) finishCheckoutMutation() {
	state := s.stateLocked()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (s *Store) stateLocked() State {
	items := append([]Item(nil), s.items...)
	totalItems := 0
	var totalPrice int64
	for _, item := range items {
		totalItems += item.Quantity
		totalPrice += item.Price * int64(item.Quantity)
	}
	return State{
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
		Checkout:   s.checkout,
	}
}
