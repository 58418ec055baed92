package notifications

import (
	"context"

	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

// amqpPublisher mirrors stored notifications onto a delivery queue consumed
// by the external channels (mail, SMS). The stored notification remains the
// record; queue delivery is best effort.
type amqpPublisher struct {
	Channel *amqp091.Channel
	Queue   string
}

func NewAMQPPublisher(rabbitMQConnection *amqp091.Connection, queue string) (contracts.NotificationPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &amqpPublisher{
		Channel: channel,
		Queue:   queue,
	}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, notification *models.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	if err := p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message); err != nil {
		return exceptions.ErrAMQPPublish(err)
	}
	return nil
}
