// Package store holds the per-feature state containers. Each store owns its
// collection exclusively and is dependency-injected (one instance per
// consumer or test) rather than a process-wide singleton.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ppiankov/ledgerpen/internal/cache"
	"github.com/ppiankov/ledgerpen/internal/model"
	"github.com/ppiankov/ledgerpen/internal/mutate"
)

var (
	// ErrMutationInFlight is returned when a second mutation targets a bill
	// whose previous mutation has not settled. The engine does not serialize
	// same-entity mutations, so the store refuses to start the race.
	ErrMutationInFlight = errors.New("a mutation is already in flight for this bill")

	// ErrMutationFailed means the mutation was rejected by the backend and
	// the collection has already been rolled back to its prior state.
	ErrMutationFailed = errors.New("mutation failed and was rolled back")

	// ErrNotInStore means the targeted bill is not in the local collection
	ErrNotInStore = errors.New("bill not in store")
)

// BillAPI is the REST collaborator contract the bill store mutates through.
// Implementations return the server's authoritative record or an error on
// non-2xx responses; the store never sees transport details.
type BillAPI interface {
	List(ctx context.Context) ([]model.Bill, error)
	Get(ctx context.Context, id string) (model.Bill, error)
	Create(ctx context.Context, bill model.Bill) (model.Bill, error)
	Update(ctx context.Context, id string, bill model.Bill) (model.Bill, error)
	Delete(ctx context.Context, id string) error
	MarkAsPaid(ctx context.Context, id string, paidDate time.Time) (model.Bill, error)
}

// BillStore owns the local bill collection and keeps it visually consistent
// with the backend: every mutation is applied locally first, then committed
// with the server's authoritative record or rolled back on failure.
type BillStore struct {
	backend  BillAPI
	notifier mutate.Notifier
	cache    cache.Cache // nil disables list caching
	cacheTTL time.Duration

	mu       sync.Mutex
	bills    []model.Bill
	inFlight map[string]bool
}

// NewBillStore creates a bill store over the given backend. notifier may be
// nil (notifications are dropped); c may be nil (no list caching).
func NewBillStore(backend BillAPI, notifier mutate.Notifier, c cache.Cache, cacheTTL time.Duration) *BillStore {
	if notifier == nil {
		notifier = mutate.NopNotifier{}
	}
	return &BillStore{
		backend:  backend,
		notifier: notifier,
		cache:    c,
		cacheTTL: cacheTTL,
		inFlight: make(map[string]bool),
	}
}

// listCacheKey identifies the cached bill collection
func listCacheKey() string {
	return cache.Key("bills", "list")
}

// Load populates the collection, serving from cache when possible
func (s *BillStore) Load(ctx context.Context) error {
	if s.cache != nil {
		var cached []model.Bill
		if cache.GetJSON(s.cache, listCacheKey(), &cached) {
			s.mu.Lock()
			s.bills = cached
			s.mu.Unlock()
			return nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the collection from the backend, bypassing the cache
func (s *BillStore) Refresh(ctx context.Context) error {
	bills, err := s.backend.List(ctx)
	if err != nil {
		return fmt.Errorf("list bills: %w", err)
	}

	s.mu.Lock()
	s.bills = bills
	s.mu.Unlock()

	if s.cache != nil {
		_ = cache.SetJSON(s.cache, listCacheKey(), bills, s.cacheTTL)
	}

	return nil
}

// Bills returns a copy of the current collection
func (s *BillStore) Bills() []model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Bill, len(s.bills))
	copy(out, s.bills)
	return out
}

// Get returns the bill with the given id, if present
func (s *BillStore) Get(id string) (model.Bill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.bills[idx], true
	}
	return model.Bill{}, false
}

// Create adds a bill optimistically under a synthetic id, then replaces it
// wholesale with the server's record. On failure the collection is restored
// and ErrMutationFailed is returned.
func (s *BillStore) Create(ctx context.Context, bill model.Bill) (model.Bill, error) {
	now := time.Now().UTC()
	optimistic := bill
	optimistic.ID = mutate.NewSyntheticID("bill")
	optimistic.CreatedAt = now
	optimistic.UpdatedAt = now
	if optimistic.Status == "" {
		optimistic.Status = model.BillStatusPending
	}

	s.mu.Lock()
	previous := s.snapshotLocked()
	s.bills = append(s.bills, optimistic)
	s.mu.Unlock()

	created, ok := mutate.Execute(s.notifier, mutate.Spec[model.Bill]{
		MutationID:     mutate.NewMutationID("create-bill"),
		Type:           "bill/create",
		OptimisticData: optimistic,
		PreviousData:   previous,
		MutationFn: func() (model.Bill, error) {
			return s.backend.Create(ctx, bill)
		},
		OnSuccess: func(created model.Bill) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if idx := s.indexLocked(optimistic.ID); idx >= 0 {
				s.bills[idx] = created
			} else {
				s.bills = append(s.bills, created)
			}
		},
		OnRollback: func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.bills = previous
		},
		SuccessMessage: "Bill added",
		ErrorMessage:   "Could not add the bill",
	})
	if !ok {
		return model.Bill{}, ErrMutationFailed
	}

	s.invalidateCache()
	return created, nil
}

// Update replaces a bill optimistically, committing the server's record or
// restoring the snapshot on failure.
func (s *BillStore) Update(ctx context.Context, id string, bill model.Bill) (model.Bill, error) {
	if err := s.begin(id); err != nil {
		return model.Bill{}, err
	}
	defer s.end(id)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Bill{}, fmt.Errorf("update bill %s: %w", id, ErrNotInStore)
	}
	previous := s.snapshotLocked()
	optimistic := bill
	optimistic.ID = id
	optimistic.CreatedAt = s.bills[idx].CreatedAt
	optimistic.UpdatedAt = time.Now().UTC()
	s.bills[idx] = optimistic
	s.mu.Unlock()

	updated, ok := mutate.Execute(s.notifier, mutate.Spec[model.Bill]{
		MutationID:     mutate.NewMutationID("update-bill"),
		Type:           "bill/update",
		OptimisticData: optimistic,
		PreviousData:   previous,
		MutationFn: func() (model.Bill, error) {
			return s.backend.Update(ctx, id, bill)
		},
		OnSuccess: func(updated model.Bill) {
			s.replace(id, updated)
		},
		OnRollback: func() {
			s.restore(previous)
		},
		SuccessMessage: "Bill updated",
		ErrorMessage:   "Could not update the bill",
	})
	if !ok {
		return model.Bill{}, ErrMutationFailed
	}

	s.invalidateCache()
	return updated, nil
}

// Delete removes a bill optimistically
func (s *BillStore) Delete(ctx context.Context, id string) error {
	if err := s.begin(id); err != nil {
		return err
	}
	defer s.end(id)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("delete bill %s: %w", id, ErrNotInStore)
	}
	previous := s.snapshotLocked()
	s.bills = append(s.bills[:idx], s.bills[idx+1:]...)
	s.mu.Unlock()

	_, ok := mutate.Execute(s.notifier, mutate.Spec[struct{}]{
		MutationID:   mutate.NewMutationID("delete-bill"),
		Type:         "bill/delete",
		PreviousData: previous,
		MutationFn: func() (struct{}, error) {
			return struct{}{}, s.backend.Delete(ctx, id)
		},
		OnSuccess: func(struct{}) {},
		OnRollback: func() {
			s.restore(previous)
		},
		SuccessMessage: "Bill deleted",
		ErrorMessage:   "Could not delete the bill",
	})
	if !ok {
		return ErrMutationFailed
	}

	s.invalidateCache()
	return nil
}

// MarkAsPaid transitions a bill to paid optimistically
func (s *BillStore) MarkAsPaid(ctx context.Context, id string) (model.Bill, error) {
	if err := s.begin(id); err != nil {
		return model.Bill{}, err
	}
	defer s.end(id)

	paidDate := time.Now().UTC()

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Bill{}, fmt.Errorf("pay bill %s: %w", id, ErrNotInStore)
	}
	previous := s.snapshotLocked()
	optimistic := s.bills[idx]
	optimistic.Status = model.BillStatusPaid
	optimistic.PaidDate = &paidDate
	optimistic.UpdatedAt = paidDate
	s.bills[idx] = optimistic
	s.mu.Unlock()

	paid, ok := mutate.Execute(s.notifier, mutate.Spec[model.Bill]{
		MutationID:     mutate.NewMutationID("pay-bill"),
		Type:           "bill/mark-as-paid",
		OptimisticData: optimistic,
		PreviousData:   previous,
		MutationFn: func() (model.Bill, error) {
			return s.backend.MarkAsPaid(ctx, id, paidDate)
		},
		OnSuccess: func(paid model.Bill) {
			s.replace(id, paid)
		},
		OnRollback: func() {
			s.restore(previous)
		},
		SuccessMessage: "Bill marked as paid",
		ErrorMessage:   "Could not mark the bill as paid",
	})
	if !ok {
		return model.Bill{}, ErrMutationFailed
	}

	s.invalidateCache()
	return paid, nil
}

// begin marks a bill as having an in-flight mutation
func (s *BillStore) begin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[id] {
		return ErrMutationInFlight
	}
	s.inFlight[id] = true
	return nil
}

// end clears the in-flight mark
func (s *BillStore) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// replace swaps the stored record for id with the authoritative one
func (s *BillStore) replace(id string, bill model.Bill) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(id); idx >= 0 {
		s.bills[idx] = bill
	}
}

// restore puts a snapshot back verbatim
func (s *BillStore) restore(snapshot []model.Bill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = snapshot
}

// snapshotLocked copies the collection for later restoration
func (s *BillStore) snapshotLocked() []model.Bill {
	snapshot := make([]model.Bill, len(s.bills))
	copy(snapshot, s.bills)
	return snapshot
}

// indexLocked finds a bill's position by id, or -1
func (s *BillStore) indexLocked(id string) int {
	for i := range s.bills {
		if s.bills[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *BillStore) invalidateCache() {
	if s.cache != nil {
		_ = s.cache.Delete(listCacheKey())
	}
}
