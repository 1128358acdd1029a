// Package notify implements the outbound notification contract: an SMTP
// mailer plus an in-process dispatcher that keeps delivery off the request
// path. Delivery is best effort end to end; nothing here can fail an order.
package notify

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/greenharbor/greennest-backend/internal/api/metrics"
)

// Mailer sends plain-text mail over SMTP. It satisfies the Notifier contract
// directly and is deliberately unauthenticated: the relay (MailHog in
// development, a sidecar relay in production) handles delivery.
type Mailer struct {
	addr string
	from string
}

func NewMailer(host, port, from string) *Mailer {
	return &Mailer{addr: host + ":" + port, from: from}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	start := time.Now()
	err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg))
	if err != nil {
		metrics.NotifyDeliveryDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
		return fmt.Errorf("send mail: %w", err)
	}
	metrics.NotifyDeliveryDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	return nil
}
