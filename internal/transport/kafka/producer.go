package kafka

import (
	"encoding/json"
	"strings"

	"github.com/IBM/sarama"

	"jamjam-delivery/internal/lifecycle"
)

// Producer publishes order transition events to a Kafka topic.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) (*Producer, error) {
	// no kafka settings, no producer
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Producer{producer: p, topic: topic}, nil
}

// PublishTransition publishes a single transition event keyed by session id.
func (p *Producer) PublishTransition(sessionID string, ev lifecycle.Event) error {
	if p == nil {
		return nil
	}

	payload, err := json.Marshal(FromEvent(sessionID, ev))
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(sessionID),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
