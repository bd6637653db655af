// Package notify delivers out-of-band customer messages. Delivery is best
// effort: callers log failures and never let them block or roll back the
// mutation that triggered them.
package notify

import "context"

// Notifier sends a free-text message to a customer's phone.
type Notifier interface {
	Notify(ctx context.Context, phone, message string) error
}

// Nop discards all messages. Used when no gateway is configured and in tests.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) error { return nil }
