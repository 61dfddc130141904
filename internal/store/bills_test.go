package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/ledgerpen/internal/api"
	"github.com/ppiankov/ledgerpen/internal/cache"
	"github.com/ppiankov/ledgerpen/internal/model"
	"github.com/ppiankov/ledgerpen/internal/mutate"
)

// recordingNotifier captures mutation notifications
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func seedBill(t *testing.T, backend *api.Memory, name string) model.Bill {
	t.Helper()
	bill, err := backend.Create(context.Background(), model.Bill{
		Name:     name,
		Amount:   100,
		Currency: "USD",
		DueDate:  time.Now().Add(7 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
	return bill
}

func TestBillStore_LoadAndGet(t *testing.T) {
	backend := api.NewMemory()
	seeded := seedBill(t, backend, "Rent")

	s := NewBillStore(backend, nil, nil, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, ok := s.Get(seeded.ID)
	if !ok {
		t.Fatal("expected seeded bill in store")
	}
	if got.Name != "Rent" {
		t.Errorf("expected name 'Rent', got %q", got.Name)
	}
}

func TestBillStore_CreateCommitsServerRecord(t *testing.T) {
	backend := api.NewMemory()
	notifier := &recordingNotifier{}

	s := NewBillStore(backend, notifier, nil, 0)

	created, err := s.Create(context.Background(), model.Bill{
		Name:     "Electricity",
		Amount:   89.50,
		Currency: "USD",
		DueDate:  time.Now().Add(14 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The store must hold the server record, not the synthetic placeholder
	if mutate.IsSyntheticID(created.ID) {
		t.Errorf("expected server-assigned id, got synthetic %s", created.ID)
	}

	bills := s.Bills()
	if len(bills) != 1 {
		t.Fatalf("expected 1 bill, got %d", len(bills))
	}
	if bills[0].ID != created.ID {
		t.Errorf("store holds %s, expected %s", bills[0].ID, created.ID)
	}
	for _, b := range bills {
		if mutate.IsSyntheticID(b.ID) {
			t.Errorf("synthetic id leaked into committed state: %s", b.ID)
		}
	}

	if len(notifier.successes) != 1 {
		t.Errorf("expected one success notification, got %v", notifier.successes)
	}
}

func TestBillStore_CreateRollsBackOnFailure(t *testing.T) {
	backend := api.NewMemory()
	notifier := &recordingNotifier{}

	s := NewBillStore(backend, notifier, nil, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	backend.FailNext(errors.New("server rejected"))

	_, err := s.Create(context.Background(), model.Bill{Name: "Ghost"})
	if !errors.Is(err, ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}

	if got := len(s.Bills()); got != 0 {
		t.Errorf("expected empty collection after rollback, got %d bills", got)
	}
	if len(notifier.errors) != 1 {
		t.Errorf("expected one error notification, got %v", notifier.errors)
	}
	if len(notifier.successes) != 0 {
		t.Errorf("expected no success notifications, got %v", notifier.successes)
	}
}

func TestBillStore_UpdateOptimisticThenCommit(t *testing.T) {
	backend := api.NewMemory()
	seeded := seedBill(t, backend, "Water")

	s := NewBillStore(backend, nil, nil, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	updated := seeded
	updated.Name = "Water & Sewer"
	updated.Amount = 120

	got, err := s.Update(context.Background(), seeded.ID, updated)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != "Water & Sewer" {
		t.Errorf("expected updated name, got %q", got.Name)
	}

	stored, ok := s.Get(seeded.ID)
	if !ok {
		t.Fatal("bill missing after update")
	}
	if stored.Amount != 120 {
		t.Errorf("expected amount 120, got %f", stored.Amount)
	}
	if stored.CreatedAt != seeded.CreatedAt {
		t.Error("update must preserve creation time")
	}
}

func TestBillStore_UpdateRollsBackOnFailure(t *testing.T) {
	backend := api.NewMemory()
	seeded := seedBill(t, backend, "Internet")

	s := NewBillStore(backend, nil, nil, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	backend.FailNext(errors.New("conflict"))

	changed := seeded
	changed.Name = "Fiber"

	if _, err := s.Update(context.Background(), seeded.ID, changed); !errors.Is(err, ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}

	stored, ok := s.Get(seeded.ID)
	if !ok {
		t.Fatal("bill missing after rollback")
	}
	if stored.Name != "Internet" {
		t.Errorf("expected rollback to restore name 'Internet', got %q", stored.Name)
	}
}

func TestBillStore_UpdateUnknownBill(t *testing.T) {
	s := NewBillStore(api.NewMemory(), nil, nil, 0)

	_, err := s.Update(context.Background(), "missing", model.Bill{Name: "X"})
	if !errors.Is(err, ErrNotInStore) {
		t.Fatalf("expected ErrNotInStore, got %v", err)
	}
}

func TestBillStore_DeleteAndRollback(t *testing.T) {
	backend := api.NewMemory()
	seeded := seedBill(t, backend, "Gym")

	s := NewBillStore(backend, nil, nil, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Failed delete restores the bill
	backend.FailNext(errors.New("forbidden"))
	if err := s.Delete(context.Background(), seeded.ID); !errors.Is(err, ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}
	if _, ok := s.Get(seeded.ID); !ok {
		t.Fatal("expected bill restored after failed delete")
	}

	// Successful delete removes it
	if err := s.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := s.Get(seeded.ID); ok {
		t.Error("expected bill removed after delete")
	}
}

func TestBillStore_MarkAsPaid(t *testing.T) {
	backend := api.NewMemory()
	seeded := seedBill(t, backend, "Insurance")

	s := NewBillStore(backend, nil, nil, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	paid, err := s.MarkAsPaid(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("MarkAsPaid failed: %v", err)
	}
	if paid.Status != model.BillStatusPaid {
		t.Errorf("expected status paid, got %s", paid.Status)
	}
	if paid.PaidDate == nil {
		t.Error("expected paid date to be set")
	}
}

func TestBillStore_MarkAsPaidRollsBack(t *testing.T) {
	backend := api.NewMemory()
	seeded := seedBill(t, backend, "Phone")

	s := NewBillStore(backend, nil, nil, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	backend.FailNext(errors.New("payment backend down"))

	if _, err := s.MarkAsPaid(context.Background(), seeded.ID); !errors.Is(err, ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}

	stored, _ := s.Get(seeded.ID)
	if stored.Status != model.BillStatusPending {
		t.Errorf("expected status restored to pending, got %s", stored.Status)
	}
	if stored.PaidDate != nil {
		t.Error("expected paid date cleared after rollback")
	}
}

// blockingBackend wraps api.Memory and parks Update calls until released,
// to hold a mutation in flight.
type blockingBackend struct {
	*api.Memory
	enter   chan struct{}
	release chan struct{}
}

func (b *blockingBackend) Update(ctx context.Context, id string, bill model.Bill) (model.Bill, error) {
	b.enter <- struct{}{}
	<-b.release
	return b.Memory.Update(ctx, id, bill)
}

func TestBillStore_RejectsOverlappingMutations(t *testing.T) {
	mem := api.NewMemory()
	seeded := seedBill(t, mem, "Mortgage")

	backend := &blockingBackend{
		Memory:  mem,
		enter:   make(chan struct{}, 1),
		release: make(chan struct{}),
	}

	s := NewBillStore(backend, nil, nil, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Update(context.Background(), seeded.ID, seeded)
		done <- err
	}()

	<-backend.enter // first mutation is now in flight

	if _, err := s.Update(context.Background(), seeded.ID, seeded); !errors.Is(err, ErrMutationInFlight) {
		t.Errorf("expected ErrMutationInFlight, got %v", err)
	}

	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("first mutation failed: %v", err)
	}

	// The guard clears once the mutation settles
	if _, err := s.Update(context.Background(), seeded.ID, seeded); err != nil {
		t.Errorf("expected mutation after settle to succeed, got %v", err)
	}
}

func TestBillStore_CacheInvalidatedOnMutation(t *testing.T) {
	backend := api.NewMemory()
	seedBill(t, backend, "Cached")

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	s := NewBillStore(backend, nil, c, time.Minute)

	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Refresh populates the cache
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(cache.Key("bills", "list")); !ok {
		t.Fatal("expected list cache populated after refresh")
	}

	if _, err := s.Create(context.Background(), model.Bill{Name: "New"}); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(cache.Key("bills", "list")); ok {
		t.Error("expected list cache invalidated after mutation")
	}
}

func TestBillStore_LoadServesFromCache(t *testing.T) {
	backend := api.NewMemory()
	seedBill(t, backend, "Warm")

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	s1 := NewBillStore(backend, nil, c, time.Minute)
	if err := s1.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A failing backend proves the second load never hits the network
	backend.FailNext(errors.New("backend unreachable"))

	s2 := NewBillStore(backend, nil, c, time.Minute)
	if err := s2.Load(context.Background()); err != nil {
		t.Fatalf("expected cache-served load, got %v", err)
	}
	if len(s2.Bills()) != 1 {
		t.Errorf("expected 1 cached bill, got %d", len(s2.Bills()))
	}
}
