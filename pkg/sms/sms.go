package sms

import "context"

// Sender delivers a text message to a phone number in E.164 form.
type Sender interface {
	Send(ctx context.Context, to, text string) error
}
