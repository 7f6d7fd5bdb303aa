package notify

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
)

// fcmBatchSize is the SendEach limit.
const fcmBatchSize = 500

// Pusher delivers stored notifications to the receivers' devices.
type Pusher interface {
	Push(ctx context.Context, ns []models.Notification) error
}

// MessageSender is the part of *messaging.Client the FCM pusher uses.
type MessageSender interface {
	SendEach(ctx context.Context, messages []*messaging.Message) (*messaging.BatchResponse, error)
}

// FCMPusher sends every notification to the receiver's FCM topic
// "user-<receiver id>". Devices subscribe to their own topic on login.
type FCMPusher struct {
	client MessageSender
	log    *zap.Logger
}

func NewFCMPusher(client MessageSender, log *zap.Logger) *FCMPusher {
	return &FCMPusher{client: client, log: log}
}

// ReceiverTopic is the FCM topic of an account.
func ReceiverTopic(n models.Notification) string {
	return "user-" + n.ReceiverID.String()
}

func (p *FCMPusher) Push(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	messages := make([]*messaging.Message, 0, len(ns))
	for _, n := range ns {
		messages = append(messages, &messaging.Message{
			Topic: ReceiverTopic(n),
			Notification: &messaging.Notification{
				Title: pushTitle(n.Type),
				Body:  n.Content,
			},
			Data: map[string]string{
				"notification_id": n.ID.String(),
				"author_id":       n.AuthorID.String(),
				"type":            string(n.Type),
			},
			Android: &messaging.AndroidConfig{Priority: "high"},
		})
	}

	failed := 0
	for i := 0; i < len(messages); i += fcmBatchSize {
		end := min(i+fcmBatchSize, len(messages))

		resp, err := p.client.SendEach(ctx, messages[i:end])
		if err != nil {
			return fmt.Errorf("FCM batch[%d:%d] failed: %w", i, end, err)
		}
		for j, r := range resp.Responses {
			if !r.Success {
				failed++
				p.log.Warn("FCM push failed",
					zap.String("topic", messages[i+j].Topic),
					zap.Error(r.Error),
				)
			}
		}
	}

	p.log.Debug("notifications pushed", zap.Int("total", len(messages)), zap.Int("failed", failed))
	return nil
}

func pushTitle(t models.NotificationType) string {
	switch t {
	case models.NotificationPost:
		return "New post from a friend"
	case models.NotificationLike:
		return "Someone liked your content"
	case models.NotificationPostComment:
		return "New comment on your post"
	case models.NotificationCommentComment:
		return "New reply to your comment"
	case models.NotificationFriendBirthday:
		return "A friend has a birthday today"
	default:
		return "New notification"
	}
}

// NopPusher drops every notification. It is used when FCM is not configured.
type NopPusher struct{}

func (NopPusher) Push(context.Context, []models.Notification) error { return nil }
