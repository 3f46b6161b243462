package email

import "context"

// Sender defines the interface for delivering email messages.
// Implemented by the log sender and the AMQP publisher in the infrastructure layer.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
