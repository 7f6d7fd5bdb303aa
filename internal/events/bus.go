package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anonto42/nano-midea/socialnet/internal/notify"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// Handler consumes one decoded event. notify.Service.Notify satisfies it.
type Handler func(ctx context.Context, authorID uuid.UUID, ev notify.Event) error

// Bus publishes domain events and feeds them to a Handler.
type Bus interface {
	Publish(ctx context.Context, authorID uuid.UUID, ev notify.Event) error
	// Run consumes events until ctx is cancelled.
	Run(ctx context.Context, h Handler) error
	Close() error
}

// ChannelBus is a single-process bus backed by a buffered channel. Events
// still queued at shutdown are dropped.
type ChannelBus struct {
	queue   chan []byte
	workers int
	log     *zap.Logger
}

func NewChannelBus(buffer, workers int, log *zap.Logger) *ChannelBus {
	if workers < 1 {
		workers = 1
	}
	return &ChannelBus{queue: make(chan []byte, buffer), workers: workers, log: log}
}

func (b *ChannelBus) Publish(ctx context.Context, authorID uuid.UUID, ev notify.Event) error {
	data, err := Encode(authorID, ev)
	if err != nil {
		return err
	}
	select {
	case b.queue <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run handles events on several workers; events from different producers
// may be handled concurrently.
func (b *ChannelBus) Run(ctx context.Context, h Handler) error {
	g, ctx := errgroup.WithContext(ctx)
	for range b.workers {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case data := <-b.queue:
					handle(ctx, b.log, data, h)
				}
			}
		})
	}
	return g.Wait()
}

func (b *ChannelBus) Close() error { return nil }

// handle decodes and dispatches one message. Failures are logged and never
// stop the consumer.
func handle(ctx context.Context, log *zap.Logger, data []byte, h Handler) {
	authorID, ev, err := Decode(data)
	if err != nil {
		if errors.Is(err, errorx.ErrUnsupportedEvent) {
			log.Error("unsupported event on bus", zap.Stringer("author_id", authorID), zap.Error(err))
		} else {
			log.Error("decode event", zap.Error(err))
		}
		return
	}
	if err := h(ctx, authorID, ev); err != nil {
		log.Error("handle event", zap.Stringer("author_id", authorID), zap.String("kind", string(ev.Type())), zap.Error(err))
	}
}
