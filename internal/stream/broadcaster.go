package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/comandahq/comanda/pkg/event"
)

// Broadcaster consumes order events from NATS and fans them out to connected
// SSE subscribers. Delivery is best effort: there is no backlog for late
// joiners and slow subscribers lose events rather than blocking the rest.
type Broadcaster struct {
	subscriber events.Subscriber
	logger     apt.Logger

	mu          sync.RWMutex
	subscribers map[string]chan *event.OrderEvent
}

func NewBroadcaster(subscriber events.Subscriber, logger apt.Logger) *Broadcaster {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return &Broadcaster{
		subscriber:  subscriber,
		logger:      logger,
		subscribers: make(map[string]chan *event.OrderEvent),
	}
}

func (b *Broadcaster) Start(ctx context.Context) error {
	if err := b.subscriber.Subscribe(ctx, event.OrdersTopic, b.handleEvent); err != nil {
		return fmt.Errorf("cannot subscribe to %s: %w", event.OrdersTopic, err)
	}

	b.logger.Info("order broadcaster started", "topic", event.OrdersTopic)
	return nil
}

func (b *Broadcaster) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.OrderEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		b.logger.Error("cannot unmarshal order event", "error", err)
		return nil
	}

	b.Broadcast(&evt)
	return nil
}

// Broadcast sends the event to every connected subscriber. A subscriber whose
// channel is full is skipped.
func (b *Broadcaster) Broadcast(evt *event.OrderEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for subscriberID, ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
			b.logger.Info("subscriber channel full, dropping event", "subscriber_id", subscriberID)
		}
	}
}

// Subscribe registers a new SSE subscriber and returns its event channel.
func (b *Broadcaster) Subscribe(subscriberID string) <-chan *event.OrderEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *event.OrderEvent, 100)
	b.subscribers[subscriberID] = ch

	b.logger.Info("new event subscriber", "subscriber_id", subscriberID, "total_subscribers", len(b.subscribers))

	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[subscriberID]; ok {
		close(ch)
		delete(b.subscribers, subscriberID)
		b.logger.Info("event subscriber disconnected", "subscriber_id", subscriberID, "total_subscribers", len(b.subscribers))
	}
}

func (b *Broadcaster) Stop(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}

	b.logger.Info("order broadcaster stopped")
	return nil
}
