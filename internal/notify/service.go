package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// Service runs the whole notification pipeline for an event: dispatch,
// commit, then push.
type Service struct {
	dispatcher *Dispatcher
	sink       *Sink
	pusher     Pusher
	log        *zap.Logger
}

func NewService(dispatcher *Dispatcher, sink *Sink, pusher Pusher, log *zap.Logger) *Service {
	if pusher == nil {
		pusher = NopPusher{}
	}
	return &Service{dispatcher: dispatcher, sink: sink, pusher: pusher, log: log}
}

// Notify handles one domain event. Unsupported events are logged by the
// dispatcher and are not an error here.
func (s *Service) Notify(ctx context.Context, authorID uuid.UUID, ev Event) error {
	ns, err := s.dispatcher.Dispatch(ctx, authorID, ev)
	if errors.Is(err, errorx.ErrUnsupportedEvent) {
		return nil
	}
	if err != nil {
		s.log.Error("dispatch notifications", zap.Stringer("author_id", authorID), zap.String("event", eventName(ev)), zap.Error(err))
		return err
	}
	return s.deliver(ctx, ns)
}

// RunBirthdaySweep creates and delivers today's birthday notifications.
func (s *Service) RunBirthdaySweep(ctx context.Context, today time.Time) error {
	ns, err := s.dispatcher.SweepBirthdays(ctx, today)
	if err != nil {
		s.log.Error("sweep birthdays", zap.String("day", today.Format(time.DateOnly)), zap.Error(err))
		return err
	}
	return s.deliver(ctx, ns)
}

func (s *Service) deliver(ctx context.Context, ns []models.Notification) error {
	if err := s.sink.Commit(ctx, ns); err != nil {
		s.log.Error("commit notifications", zap.Int("count", len(ns)), zap.Error(err))
		return err
	}
	if err := s.pusher.Push(ctx, ns); err != nil {
		s.log.Warn("push notifications", zap.Int("count", len(ns)), zap.Error(err))
	}
	return nil
}
