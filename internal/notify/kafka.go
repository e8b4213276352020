package notify

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"energycoach/internal/model"
)

// kafkaNotifier publishes change events to a topic, keyed by location and
// month so events for one batch key stay on one partition.
type kafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) Notifier {
	return &kafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (n *kafkaNotifier) Publish(ctx context.Context, subject string, msg model.Notification) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return publishErr(err)
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Location.LocationID + "/" + msg.Month),
		Value: body,
		Headers: []kafka.Header{
			{Key: "subject", Value: []byte(subject)},
		},
	})
	if err != nil {
		return publishErr(err)
	}
	return nil
}

func (n *kafkaNotifier) Close() error {
	return n.writer.Close()
}
