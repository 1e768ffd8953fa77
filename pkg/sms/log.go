package sms

import (
	"context"
	"log"
)

// LogSender prints messages instead of sending them, for development when
// Vonage credentials are not configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, text string) error {
	log.Printf("[sms] (not configured) to=%s text=%q", to, text)
	return nil
}
