package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/ledgerpen/internal/model"
)

// Memory is an in-process bill backend with server semantics: it assigns
// ids, stamps timestamps, and can be told to fail the next call. Tests and
// the local demo use it in place of the HTTP client.
type Memory struct {
	mu       sync.Mutex
	bills    map[string]model.Bill
	failNext error
	now      func() time.Time
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{
		bills: make(map[string]model.Bill),
		now:   time.Now,
	}
}

// FailNext makes the next call return err instead of succeeding
func (m *Memory) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

// takeFailure consumes a pending injected failure
func (m *Memory) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

// List returns all bills ordered by creation time
func (m *Memory) List(ctx context.Context) ([]model.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeFailure(); err != nil {
		return nil, err
	}

	bills := make([]model.Bill, 0, len(m.bills))
	for _, b := range m.bills {
		bills = append(bills, b)
	}
	sort.Slice(bills, func(i, j int) bool {
		return bills[i].CreatedAt.Before(bills[j].CreatedAt)
	})

	return bills, nil
}

// Get returns one bill by id
func (m *Memory) Get(ctx context.Context, id string) (model.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeFailure(); err != nil {
		return model.Bill{}, err
	}

	bill, ok := m.bills[id]
	if !ok {
		return model.Bill{}, fmt.Errorf("bill %s: %w", id, ErrNotFound)
	}
	return bill, nil
}

// Create assigns a server id and timestamps, then stores the bill
func (m *Memory) Create(ctx context.Context, bill model.Bill) (model.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeFailure(); err != nil {
		return model.Bill{}, err
	}

	now := m.now().UTC()
	bill.ID = uuid.NewString()
	bill.CreatedAt = now
	bill.UpdatedAt = now
	if bill.Status == "" {
		bill.Status = model.BillStatusPending
	}
	m.bills[bill.ID] = bill

	return bill, nil
}

// Update replaces a stored bill, preserving id and creation time
func (m *Memory) Update(ctx context.Context, id string, bill model.Bill) (model.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeFailure(); err != nil {
		return model.Bill{}, err
	}

	existing, ok := m.bills[id]
	if !ok {
		return model.Bill{}, fmt.Errorf("bill %s: %w", id, ErrNotFound)
	}

	bill.ID = existing.ID
	bill.CreatedAt = existing.CreatedAt
	bill.UpdatedAt = m.now().UTC()
	m.bills[id] = bill

	return bill, nil
}

// Delete removes a bill
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeFailure(); err != nil {
		return err
	}

	if _, ok := m.bills[id]; !ok {
		return fmt.Errorf("bill %s: %w", id, ErrNotFound)
	}
	delete(m.bills, id)

	return nil
}

// MarkAsPaid transitions a bill to paid with the given payment date
func (m *Memory) MarkAsPaid(ctx context.Context, id string, paidDate time.Time) (model.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeFailure(); err != nil {
		return model.Bill{}, err
	}

	bill, ok := m.bills[id]
	if !ok {
		return model.Bill{}, fmt.Errorf("bill %s: %w", id, ErrNotFound)
	}

	bill.Status = model.BillStatusPaid
	paid := paidDate.UTC()
	bill.PaidDate = &paid
	bill.UpdatedAt = m.now().UTC()
	m.bills[id] = bill

	return bill, nil
}
