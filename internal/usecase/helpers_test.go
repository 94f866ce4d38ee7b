package usecase

import (
	"context"
	"sync"
	"time"

	"findoc_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

var (
	operator = entities.Actor{ID: "op-1", Name: "Ana Operator", Email: "ana@shop.test", Role: entities.RoleOperator}
	admin    = entities.Actor{ID: "adm-1", Name: "Root", Email: "root@shop.test", Role: entities.RoleAdmin}
)

func testOptions() Options {
	return Options{CollaboratorTimeout: time.Second, Now: func() time.Time { return fixedNow }}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func referenceItems() []entities.LineItemInput {
	return []entities.LineItemInput{
		{Name: "Design", Quantity: decPtr("2"), Rate: dec("100")},
		{Name: "Hosting", Quantity: decPtr("1"), Rate: dec("50")},
	}
}

// memEstimations is a compare-and-set store used where a scripted mock would hide races.
type memEstimations struct {
	mu    sync.Mutex
	items map[string]entities.Estimation
}

func newMemEstimations(seed ...entities.Estimation) *memEstimations {
	m := &memEstimations{items: map[string]entities.Estimation{}}
	for _, e := range seed {
		m.items[e.UUID] = e
	}
	return m
}

func (m *memEstimations) Create(_ context.Context, e entities.Estimation) (entities.Estimation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[e.UUID] = e
	return e, nil
}

func (m *memEstimations) GetByID(_ context.Context, id string) (entities.Estimation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.ID == id {
			return e, nil
		}
	}
	return entities.Estimation{}, nil
}

func (m *memEstimations) GetByUUID(_ context.Context, uuid string) (entities.Estimation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[uuid], nil
}

func (m *memEstimations) ListByOrderRef(_ context.Context, orderRef string) ([]entities.Estimation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Estimation
	for _, e := range m.items {
		if e.OrderRef == orderRef {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEstimations) Update(_ context.Context, e entities.Estimation, expectedVersion int64) (entities.Estimation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items[e.UUID].Version != expectedVersion {
		return entities.Estimation{}, entities.ErrVersionConflict
	}
	m.items[e.UUID] = e
	return e, nil
}

func (m *memEstimations) Delete(_ context.Context, id string, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.items {
		if e.ID == id {
			if e.Version != expectedVersion {
				return entities.ErrVersionConflict
			}
			delete(m.items, k)
		}
	}
	return nil
}

type memInvoices struct {
	mu    sync.Mutex
	items map[string]entities.Invoice
}

func newMemInvoices(seed ...entities.Invoice) *memInvoices {
	m := &memInvoices{items: map[string]entities.Invoice{}}
	for _, inv := range seed {
		m.items[inv.UUID] = inv
	}
	return m
}

func (m *memInvoices) Create(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[inv.UUID] = inv
	return inv, nil
}

func (m *memInvoices) GetByID(_ context.Context, id string) (entities.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.items {
		if inv.ID == id {
			return inv, nil
		}
	}
	return entities.Invoice{}, nil
}

func (m *memInvoices) GetByUUID(_ context.Context, uuid string) (entities.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[uuid], nil
}

func (m *memInvoices) ListByOrderRef(_ context.Context, orderRef string) ([]entities.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Invoice
	for _, inv := range m.items {
		if inv.OrderRef == orderRef {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvoices) ListByEstimationRef(_ context.Context, ref string) ([]entities.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Invoice
	for _, inv := range m.items {
		if inv.EstimationRef == ref {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvoices) Update(_ context.Context, inv entities.Invoice, expectedVersion int64) (entities.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items[inv.UUID].Version != expectedVersion {
		return entities.Invoice{}, entities.ErrVersionConflict
	}
	m.items[inv.UUID] = inv
	return inv, nil
}

func (m *memInvoices) Delete(_ context.Context, id string, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, inv := range m.items {
		if inv.ID == id {
			if inv.Version != expectedVersion {
				return entities.ErrVersionConflict
			}
			delete(m.items, k)
		}
	}
	return nil
}

type memSequence struct {
	mu   sync.Mutex
	next map[string]int64
}

func (s *memSequence) Next(_ context.Context, scope string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == nil {
		s.next = map[string]int64{}
	}
	s.next[scope]++
	return s.next[scope], nil
}
