// Package channel implements the outbound notification senders. Each sender
// is bound to the credentials resolved for its channel at send time.
package channel

import "context"

// Message is one notification to deliver
type Message struct {
	Recipient string // email address, phone number, or chat id
	Subject   string // used by email only
	Body      string // plain text for chat channels, HTML allowed for email
}

// Sender delivers a message through one channel
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
