package outbox

import (
	"time"
)

// Message is a pending broker publication stored durably in the same
// transaction as the business change it announces. A background worker
// drains the table and publishes to RabbitMQ with retries.
type Message struct {
	ID           int64
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
