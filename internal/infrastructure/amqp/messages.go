package amqp

import (
	"encoding/json"
	"time"

	"nestfin/internal/domain/email"
)

// EmailMessage is the wire form of an outgoing email.
type EmailMessage struct {
	Kind      email.Kind `json:"kind"`
	To        string     `json:"to"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Timestamp time.Time  `json:"timestamp"`
}

func encodeMessage(msg email.Message, at time.Time) ([]byte, error) {
	return json.Marshal(EmailMessage{
		Kind:      msg.Kind,
		To:        msg.To,
		Subject:   msg.Subject,
		Body:      msg.Body,
		Timestamp: at.UTC(),
	})
}

// EmailMessageFromJSON decodes a published message.
func EmailMessageFromJSON(data []byte) (*EmailMessage, error) {
	var msg EmailMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
