package order

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/comandahq/comanda/pkg/enums/orderstatus"
)

func TestNewOrder(t *testing.T) {
	order := NewOrder()

	if order == nil {
		t.Fatal("NewOrder() returned nil")
	}

	if order.ID == uuid.Nil {
		t.Error("NewOrder() should generate a non-nil UUID")
	}

	if order.Status != "incoming" {
		t.Errorf("NewOrder() Status = %q, want %q", order.Status, "incoming")
	}
}

func TestOrderCalculateTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  float64
	}{
		{
			name: "singleItem",
			items: []OrderItem{
				{Name: "Butter Naan", Price: 40, Qty: 3},
			},
			want: 120,
		},
		{
			name: "multipleItems",
			items: []OrderItem{
				{Name: "Dal Makhani", Price: 190, Qty: 2},
				{Name: "Masala Chai", Price: 30, Qty: 4},
			},
			want: 500,
		},
		{
			name:  "noItems",
			items: nil,
			want:  0,
		},
		{
			name: "fractionalPrices",
			items: []OrderItem{
				{Name: "Sweet Lassi", Price: 59.5, Qty: 2},
			},
			want: 119,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewOrder()
			order.Items = tt.items
			order.CalculateTotal()

			if order.Total != tt.want {
				t.Errorf("CalculateTotal() Total = %v, want %v", order.Total, tt.want)
			}
		})
	}
}

func TestOrderBeforeCreate(t *testing.T) {
	order := &Order{ID: uuid.Nil}
	beforeTime := time.Now()

	order.BeforeCreate()

	afterTime := time.Now()

	if order.ID == uuid.Nil {
		t.Error("BeforeCreate() should generate UUID")
	}

	if order.CreatedAt.IsZero() {
		t.Error("BeforeCreate() should set CreatedAt")
	}

	if order.CreatedAt.Before(beforeTime) || order.CreatedAt.After(afterTime) {
		t.Error("BeforeCreate() CreatedAt timestamp is out of expected range")
	}
}

func TestOrderEnsureID(t *testing.T) {
	tests := []struct {
		name        string
		order       *Order
		expectNewID bool
	}{
		{
			name:        "generatesIDWhenNil",
			order:       &Order{ID: uuid.Nil},
			expectNewID: true,
		},
		{
			name:        "preservesExistingID",
			order:       &Order{ID: uuid.MustParse("550e8400-e29b-41d4-a716-446655440002")},
			expectNewID: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalID := tt.order.ID
			tt.order.EnsureID()

			if tt.expectNewID {
				if tt.order.ID == uuid.Nil {
					t.Error("EnsureID() should generate non-nil UUID")
				}
			} else {
				if tt.order.ID != originalID {
					t.Errorf("EnsureID() changed existing ID from %v to %v", originalID, tt.order.ID)
				}
			}
		})
	}
}

func TestOrderSoftDelete(t *testing.T) {
	order := NewOrder()

	if order.IsDeleted() {
		t.Error("new order should not be deleted")
	}

	order.MarkDeleted()

	if !order.IsDeleted() {
		t.Error("MarkDeleted() should mark the order deleted")
	}
	if order.Status != orderstatus.Deleted.Code() {
		t.Errorf("MarkDeleted() Status = %q, want %q", order.Status, orderstatus.Deleted.Code())
	}
}

func TestOrderResourceType(t *testing.T) {
	order := &Order{}
	got := order.ResourceType()
	want := "order"

	if got != want {
		t.Errorf("Order.ResourceType() = %q, want %q", got, want)
	}
}

func TestOrderEventPayload(t *testing.T) {
	order := NewOrder()
	order.OrderType = "dine-in"
	order.CustomerName = "Asha"
	order.TableNumber = "4"
	order.Items = []OrderItem{
		{Name: "Veg Biryani", Price: 170, Qty: 2},
	}
	order.CalculateTotal()
	order.BeforeCreate()

	payload := order.EventPayload()

	if payload.ID != order.ID {
		t.Errorf("EventPayload() ID = %v, want %v", payload.ID, order.ID)
	}
	if payload.CustomerName != "Asha" {
		t.Errorf("EventPayload() CustomerName = %q, want %q", payload.CustomerName, "Asha")
	}
	if payload.Total != 340 {
		t.Errorf("EventPayload() Total = %v, want %v", payload.Total, 340.0)
	}
	if len(payload.Items) != 1 || payload.Items[0].Name != "Veg Biryani" {
		t.Errorf("EventPayload() Items = %+v", payload.Items)
	}
	if !payload.CreatedAt.Equal(order.CreatedAt) {
		t.Errorf("EventPayload() CreatedAt = %v, want %v", payload.CreatedAt, order.CreatedAt)
	}
}
