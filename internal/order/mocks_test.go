package order

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/comandahq/comanda/internal/window"
)

// MockPublisher records published messages and implements events.Publisher.
type MockPublisher struct {
	mu          sync.Mutex
	Published   [][]byte
	Topics      []string
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Published = append(m.Published, msg)
	return nil
}

func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Published)
}

// MockOrderRepo is an in-memory OrderRepo for testing.
type MockOrderRepo struct {
	mu         sync.RWMutex
	orders     map[uuid.UUID]*Order
	CreateFunc func(ctx context.Context, o *Order) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Order, error)
	SaveFunc   func(ctx context.Context, o *Order) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, o *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (m *MockOrderRepo) ListInWindow(ctx context.Context, w window.Window) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		if o.IsDeleted() {
			continue
		}
		if w.Contains(o.CreatedAt) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) Save(ctx context.Context, o *Order) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}
