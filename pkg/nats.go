package pkg

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt/events"
	"github.com/nats-io/nats.go"
)

// NATSPublisher implements events.Publisher over a plain NATS connection.
// Delivery is fire-and-forget: no persistence, no replay for late joiners.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("comanda-publisher"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	return p.conn.Publish(topic, msg)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NATSSubscriber implements events.Subscriber over a plain NATS connection.
type NATSSubscriber struct {
	conn *nats.Conn
}

func NewNATSSubscriber(url string) (*NATSSubscriber, error) {
	conn, err := nats.Connect(url, nats.Name("comanda-subscriber"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to NATS: %w", err)
	}
	return &NATSSubscriber{conn: conn}, nil
}

func (s *NATSSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	_, err := s.conn.Subscribe(topic, func(msg *nats.Msg) {
		// Handler errors are the handler's responsibility to log; a broken
		// message must never take the subscription down.
		_ = handler(ctx, msg.Data)
	})
	return err
}

func (s *NATSSubscriber) Close() error {
	s.conn.Close()
	return nil
}
