package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type RefreshEventPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewRefreshEventPublisher(brokers []string, topic string) *RefreshEventPublisher {
	return &RefreshEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

func (p *RefreshEventPublisher) PublishRefresh(ctx context.Context, event domain.RefreshEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BatchID),
		Value: v,
		Time:  time.Now(),
		Topic: p.topic,
	})
}

func (p *RefreshEventPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher stands in when Kafka is disabled in config.
type NoopPublisher struct{}

func (NoopPublisher) PublishRefresh(ctx context.Context, event domain.RefreshEvent) error {
	return nil
}
