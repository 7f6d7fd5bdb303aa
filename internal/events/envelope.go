// Package events carries domain events from the HTTP producers to the
// notification pipeline, either in-process or through Kafka.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/internal/notify"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// Envelope is the wire form of an event.
type Envelope struct {
	Kind     models.NotificationType `json:"kind"`
	AuthorID uuid.UUID               `json:"author_id"`
	Payload  json.RawMessage         `json:"payload,omitempty"`
	SentAt   time.Time               `json:"sent_at"`
}

// Encode serializes ev published by authorID.
func Encode(authorID uuid.UUID, ev notify.Event) ([]byte, error) {
	if ev == nil {
		return nil, errorx.New(errorx.CodeUnsupportedEvent, "nil event")
	}

	var payload any
	switch e := ev.(type) {
	case notify.PostPublished:
		payload = e.Post
	case notify.ItemLiked:
		payload = e.Like
	case notify.PostCommented:
		payload = e.Comment
	case notify.CommentReplied:
		payload = e.Comment
	}

	env := Envelope{Kind: ev.Type(), AuthorID: authorID, SentAt: time.Now().UTC()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", ev.Type(), err)
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}

// Decode parses an envelope back into its author and event. Kinds that no
// producer publishes, FRIEND_BIRTHDAY included, fail with CodeUnsupportedEvent.
func Decode(data []byte) (uuid.UUID, notify.Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return uuid.Nil, nil, errorx.Wrap(err, errorx.CodeInvalidParam, "malformed event envelope")
	}

	var (
		ev  notify.Event
		err error
	)
	switch env.Kind {
	case models.NotificationPost:
		var p models.Post
		err = json.Unmarshal(env.Payload, &p)
		ev = notify.PostPublished{Post: p}
	case models.NotificationLike:
		var l models.Like
		err = json.Unmarshal(env.Payload, &l)
		ev = notify.ItemLiked{Like: l}
	case models.NotificationPostComment:
		var c models.Comment
		err = json.Unmarshal(env.Payload, &c)
		ev = notify.PostCommented{Comment: c}
	case models.NotificationCommentComment:
		var c models.Comment
		err = json.Unmarshal(env.Payload, &c)
		ev = notify.CommentReplied{Comment: c}
	case models.NotificationFriendRequest:
		ev = notify.FriendRequested{}
	case models.NotificationMessage:
		ev = notify.MessageSent{}
	case models.NotificationSendEmailMessage:
		ev = notify.EmailMessageSent{}
	default:
		return env.AuthorID, nil, errorx.Newf(errorx.CodeUnsupportedEvent, "unsupported event kind %q", env.Kind)
	}
	if err != nil {
		return env.AuthorID, nil, errorx.Wrapf(err, errorx.CodeInvalidParam, "malformed %s payload", env.Kind)
	}
	return env.AuthorID, ev, nil
}
