package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/comandahq/comanda/internal/order"
	"github.com/comandahq/comanda/internal/window"
)

// MockOrderRepo is an in-memory order.OrderRepo for testing.
type MockOrderRepo struct {
	orders  []*order.Order
	listErr error
}

func NewMockOrderRepo(orders ...*order.Order) *MockOrderRepo {
	return &MockOrderRepo{orders: orders}
}

func (m *MockOrderRepo) Create(ctx context.Context, o *order.Order) error {
	m.orders = append(m.orders, o)
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (m *MockOrderRepo) ListInWindow(ctx context.Context, w window.Window) ([]*order.Order, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*order.Order
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

func (m *MockOrderRepo) Save(ctx context.Context, o *order.Order) error {
	return nil
}
