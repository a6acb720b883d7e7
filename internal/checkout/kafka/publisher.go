package kafka

import (
	"encoding/json"

	sharedkafka "ms-storefront/internal/kafka"
	"ms-storefront/internal/models"
)

// Publisher streams finalized orders onto the order-created topic for
// downstream consumers (fulfillment, reporting).
type Publisher struct {
	Producer *sharedkafka.Producer
	Topic    string
}

func NewPublisher(producer *sharedkafka.Producer, topic string) *Publisher {
	return &Publisher{Producer: producer, Topic: topic}
}

func (p *Publisher) PublishOrderCreated(order models.Order) error {
	msgBytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.Producer.Publish(p.Topic, order.OrderID, msgBytes)
}
