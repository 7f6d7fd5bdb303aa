package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/notify"
)

// KafkaConfig selects the brokers, topic and consumer group of a KafkaBus.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

const (
	minFetchBackoff = 500 * time.Millisecond
	maxFetchBackoff = 30 * time.Second
)

// messageReader is the consumer side of *kafka.Reader.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaBus publishes events to a Kafka topic and consumes them as part of a
// consumer group, so each event is handled by one instance.
type KafkaBus struct {
	writer *kafka.Writer
	reader messageReader
	log    *zap.Logger

	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewKafkaBus(cfg KafkaConfig, log *zap.Logger) *KafkaBus {
	return &KafkaBus{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			Topic:       cfg.Topic,
			GroupID:     cfg.GroupID,
			StartOffset: kafka.LastOffset,
		}),
		log:        log,
		minBackoff: minFetchBackoff,
		maxBackoff: maxFetchBackoff,
	}
}

// Publish writes the event keyed by author, keeping one author's events in order.
func (b *KafkaBus) Publish(ctx context.Context, authorID uuid.UUID, ev notify.Event) error {
	data, err := Encode(authorID, ev)
	if err != nil {
		return err
	}
	if err := b.writer.WriteMessages(ctx, kafka.Message{Key: []byte(authorID.String()), Value: data}); err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type(), err)
	}
	return nil
}

// Run commits every message after handling it, including messages that
// failed, so a poison message cannot block the partition. Fetch failures are
// retried with backoff; Run returns only when ctx is cancelled or the reader
// is closed.
func (b *KafkaBus) Run(ctx context.Context, h Handler) error {
	backoff := b.minBackoff
	for {
		msg, err := b.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			b.log.Warn("fetch event, retrying", zap.Duration("backoff", backoff), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, b.maxBackoff)
			continue
		}
		backoff = b.minBackoff

		b.log.Debug("event received",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)
		handle(ctx, b.log, msg.Value, h)

		if err := b.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.Error("commit event offset", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (b *KafkaBus) Close() error {
	return errors.Join(b.writer.Close(), b.reader.Close())
}
