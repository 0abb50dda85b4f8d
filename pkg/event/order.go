package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// OrdersTopic carries every order lifecycle event.
	OrdersTopic = "orders.events"

	// Event names match what display clients listen for on the SSE channel.
	EventOrderCreated = "newOrder"
	EventOrderUpdated = "orderUpdated"
)

// OrderEvent is published to NATS whenever an order is created or its status
// changes. It carries the full order record so displays never need a follow-up
// fetch.
type OrderEvent struct {
	EventType  string       `json:"event_type"`
	OccurredAt time.Time    `json:"occurred_at"`
	Order      OrderPayload `json:"order"`
}

// OrderPayload is the order record as broadcast to displays. Field names match
// the HTTP API representation of an order.
type OrderPayload struct {
	ID           uuid.UUID          `json:"id"`
	OrderType    string             `json:"orderType"`
	CustomerName string             `json:"customerName"`
	Mobile       string             `json:"mobile,omitempty"`
	TableNumber  string             `json:"tableNumber,omitempty"`
	Address      string             `json:"address,omitempty"`
	Items        []OrderItemPayload `json:"items"`
	Total        float64            `json:"total"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type OrderItemPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}
