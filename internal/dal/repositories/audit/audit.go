package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/clearmart/oms/order/internal/dal/interfaces/iauditrepo"
	"github.com/clearmart/oms/order/internal/dal/rabbitmq"
	"github.com/clearmart/oms/order/internal/service/models/auditlog"
)

// AuditRabbitMQRepository publishes audit records to a RabbitMQ queue
// consumed by the audit service. Publishing is best effort; the caller
// decides what to do with a failure.
type AuditRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

var _ iauditrepo.IAuditRepository = (*AuditRabbitMQRepository)(nil)

// NewAuditRabbitMQRepository creates the repository and declares its queue.
func NewAuditRabbitMQRepository(client *rabbitmq.Client, queueName string) *AuditRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// Record publishes one audit record.
func (r *AuditRabbitMQRepository) Record(_ context.Context, rec auditlog.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	err = r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish audit record: %w", err)
	}

	return nil
}
