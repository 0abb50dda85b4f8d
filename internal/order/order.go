package order

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/comandahq/comanda/pkg/enums/orderstatus"
	"github.com/comandahq/comanda/pkg/event"
)

// OrderItem is a single line of an order. Items are fixed once the order is
// created; no update path mutates them.
type OrderItem struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
	Qty   int     `json:"qty" bson:"qty"`
}

type Order struct {
	ID           uuid.UUID   `json:"id" bson:"_id"`
	OrderType    string      `json:"orderType" bson:"orderType"`
	CustomerName string      `json:"customerName" bson:"customerName"`
	Mobile       string      `json:"mobile,omitempty" bson:"mobile,omitempty"`
	TableNumber  string      `json:"tableNumber,omitempty" bson:"tableNumber,omitempty"`
	Address      string      `json:"address,omitempty" bson:"address,omitempty"`
	Items        []OrderItem `json:"items" bson:"items"`
	Total        float64     `json:"total" bson:"total"`
	Status       string      `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func NewOrder() *Order {
	return &Order{
		ID:     apt.GenerateNewID(),
		Status: orderstatus.Statuses.Incoming.Code(),
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now().UTC()
}

// CalculateTotal fixes the order total from its items. It is called once at
// creation; the total is never recomputed afterwards.
func (o *Order) CalculateTotal() {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Qty)
	}
	o.Total = total
}

func (o *Order) SetStatus(status string) {
	o.Status = status
}

// MarkDeleted soft-deletes the order. The record stays in the store until the
// TTL index expires it, but every read and aggregation skips it.
func (o *Order) MarkDeleted() {
	o.Status = orderstatus.Deleted.Code()
}

func (o *Order) IsDeleted() bool {
	return o.Status == orderstatus.Deleted.Code()
}

// EventPayload converts the order into its broadcast representation.
func (o *Order) EventPayload() event.OrderPayload {
	items := make([]event.OrderItemPayload, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, event.OrderItemPayload{
			Name:  item.Name,
			Price: item.Price,
			Qty:   item.Qty,
		})
	}
	return event.OrderPayload{
		ID:           o.ID,
		OrderType:    o.OrderType,
		CustomerName: o.CustomerName,
		Mobile:       o.Mobile,
		TableNumber:  o.TableNumber,
		Address:      o.Address,
		Items:        items,
		Total:        o.Total,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}
