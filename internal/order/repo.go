package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/comandahq/comanda/internal/window"
)

type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	ListInWindow(ctx context.Context, w window.Window) ([]*Order, error)
	Save(ctx context.Context, o *Order) error
}
