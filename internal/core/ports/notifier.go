package ports

// Notifier is the outbound contract for customer-facing messages. Delivery
// transport is external; callers only see ok/fail.
type Notifier interface {
	Send(to, subject, body string) error
}
