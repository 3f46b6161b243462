package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"nestfin/internal/domain/email"
)

type mockChannel struct {
	ExchangeDeclareFunc func(name, kind string) error
	PublishFunc         func(ctx context.Context, exchange, key string, msg amqp091.Publishing) error

	bound     [3]string
	published []amqp091.Publishing
	closed    bool
}

func (m *mockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	if m.ExchangeDeclareFunc != nil {
		return m.ExchangeDeclareFunc(name, kind)
	}
	return nil
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error) {
	return amqp091.Queue{Name: name}, nil
}

func (m *mockChannel) QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error {
	m.bound = [3]string{name, key, exchange}
	return nil
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	m.published = append(m.published, msg)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, exchange, key, msg)
	}
	return nil
}

func (m *mockChannel) Close() error {
	m.closed = true
	return nil
}

func TestNewClient_Setup(t *testing.T) {
	ch := &mockChannel{}
	if _, err := newClient(ch, "nestfin", "emails"); err != nil {
		t.Fatalf("newClient() error = %v", err)
	}
	if ch.bound != [3]string{"emails", "emails", "nestfin"} {
		t.Errorf("bind = %v", ch.bound)
	}

	failing := &mockChannel{ExchangeDeclareFunc: func(name, kind string) error { return errors.New("denied") }}
	if _, err := newClient(failing, "nestfin", "emails"); err == nil {
		t.Error("newClient() error = nil, want setup error")
	}
}

func TestClient_Send(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var gotExchange, gotKey string
	ch := &mockChannel{
		PublishFunc: func(ctx context.Context, exchange, key string, msg amqp091.Publishing) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("publish context has no deadline")
			}
			gotExchange, gotKey = exchange, key
			return nil
		},
	}
	c, err := newClient(ch, "nestfin", "emails")
	if err != nil {
		t.Fatal(err)
	}
	c.now = func() time.Time { return at }

	msg := email.Message{Kind: email.KindPasswordReset, To: "ana@example.com", Subject: "Reset", Body: "link"}
	if err := c.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotExchange != "nestfin" || gotKey != "emails" {
		t.Errorf("published to %s/%s", gotExchange, gotKey)
	}
	pub := ch.published[0]
	if pub.ContentType != "application/json" || pub.DeliveryMode != amqp091.Persistent {
		t.Errorf("publishing = %+v", pub)
	}
	if pub.Type != "password_reset" {
		t.Errorf("Type = %q", pub.Type)
	}

	decoded, err := EmailMessageFromJSON(pub.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.To != msg.To || decoded.Subject != msg.Subject || !decoded.Timestamp.Equal(at) {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestClient_Send_PublishError(t *testing.T) {
	ch := &mockChannel{
		PublishFunc: func(ctx context.Context, exchange, key string, msg amqp091.Publishing) error {
			return amqp091.ErrClosed
		},
	}
	c, err := newClient(ch, "nestfin", "emails")
	if err != nil {
		t.Fatal(err)
	}

	err = c.Send(context.Background(), email.Message{Kind: email.KindVerification})
	if !errors.Is(err, amqp091.ErrClosed) {
		t.Errorf("Send() error = %v, want wrapped ErrClosed", err)
	}

	c.Close()
	if !ch.closed {
		t.Error("Close() did not close the channel")
	}
}
