package notify

import (
	"context"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// NotificationStore persists notifications. CreateNotifications must be
// all-or-nothing.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	CreateNotifications(ctx context.Context, ns []models.Notification) error
}

// Sink commits a dispatch result: nothing for an empty list, a single write
// for one notification and one batch write otherwise.
type Sink struct {
	store NotificationStore
}

func NewSink(store NotificationStore) *Sink {
	return &Sink{store: store}
}

func (s *Sink) Commit(ctx context.Context, ns []models.Notification) error {
	var err error
	switch len(ns) {
	case 0:
		return nil
	case 1:
		err = s.store.CreateNotification(ctx, &ns[0])
	default:
		err = s.store.CreateNotifications(ctx, ns)
	}
	if err != nil {
		return errorx.QueryFailure(err, "store notifications")
	}
	return nil
}
