// Package notify turns domain events into per-recipient notifications,
// stores them and pushes them to devices.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// AccountLookup loads a single account. A missing account is (nil, nil).
type AccountLookup interface {
	FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// FriendLookup returns the live accounts linked to accountID by a FRIEND edge.
type FriendLookup interface {
	FriendAccounts(ctx context.Context, accountID uuid.UUID) ([]models.Account, error)
}

// PostLookup loads a post. A missing post is (nil, nil).
type PostLookup interface {
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
}

// CommentLookup loads a comment. A missing comment is (nil, nil).
type CommentLookup interface {
	GetCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
}

// BirthdayStore answers the two questions the birthday sweep asks.
type BirthdayStore interface {
	FindAccountsWithBirthday(ctx context.Context, day time.Time) ([]models.Account, error)
	BirthdayAuthorsSentOn(ctx context.Context, day time.Time) ([]uuid.UUID, error)
}

// Sources groups the read-only collaborators of a Dispatcher.
type Sources struct {
	Accounts  AccountLookup
	Friends   FriendLookup
	Posts     PostLookup
	Comments  CommentLookup
	Birthdays BirthdayStore
}

// Dispatcher decides who is notified about an event. Account preferences are
// read on every call and never cached.
type Dispatcher struct {
	src Sources
	log *zap.Logger
	now func() time.Time
}

func NewDispatcher(src Sources, log *zap.Logger) *Dispatcher {
	return &Dispatcher{src: src, log: log, now: time.Now}
}

// Dispatch returns the notifications produced by ev on behalf of authorID.
// Events that have no recipients yet return nothing. An event the dispatcher
// does not know is logged and reported with CodeUnsupportedEvent.
func (d *Dispatcher) Dispatch(ctx context.Context, authorID uuid.UUID, ev Event) ([]models.Notification, error) {
	switch e := ev.(type) {
	case PostPublished:
		return d.postPublished(ctx, authorID, e.Post)
	case ItemLiked:
		return d.itemLiked(ctx, authorID, e.Like)
	case PostCommented:
		return d.commented(ctx, authorID, e.Comment, models.NotificationPostComment)
	case CommentReplied:
		return d.commented(ctx, authorID, e.Comment, models.NotificationCommentComment)
	case FriendRequested, MessageSent, EmailMessageSent:
		return nil, nil
	default:
		d.log.Error("unsupported notification event",
			zap.Stringer("author_id", authorID),
			zap.String("event", eventName(ev)),
		)
		return nil, errorx.ErrUnsupportedEvent
	}
}

func (d *Dispatcher) postPublished(ctx context.Context, authorID uuid.UUID, post models.Post) ([]models.Notification, error) {
	postAuthor, err := uuid.Parse(post.AuthorID)
	if err != nil {
		d.log.Error("post with malformed author", zap.String("post_id", post.ID.Hex()), zap.String("author_id", post.AuthorID))
		return nil, nil
	}

	friends, err := d.src.Friends.FriendAccounts(ctx, postAuthor)
	if err != nil {
		return nil, errorx.QueryFailure(err, "load post author friends")
	}

	content := Summarize(post.Title)
	now := d.now()
	var out []models.Notification
	for _, f := range friends {
		if f.EnablePost {
			out = append(out, newNotification(authorID, f.ID, models.NotificationPost, content, now))
		}
	}
	return out, nil
}

func (d *Dispatcher) itemLiked(ctx context.Context, likerID uuid.UUID, like models.Like) ([]models.Notification, error) {
	var (
		ownerID uuid.UUID
		content string
	)

	switch like.Type {
	case models.LikeOnPost:
		post, err := d.src.Posts.GetPostByID(ctx, like.ItemID)
		if err != nil {
			return nil, errorx.QueryFailure(err, "load liked post")
		}
		if post == nil {
			return nil, nil
		}
		if ownerID, err = uuid.Parse(post.AuthorID); err != nil {
			d.log.Error("post with malformed author", zap.String("post_id", like.ItemID), zap.String("author_id", post.AuthorID))
			return nil, nil
		}
		content = post.Title

	case models.LikeOnComment:
		commentID, err := uuid.Parse(like.ItemID)
		if err != nil {
			d.log.Error("like on malformed comment id", zap.String("item_id", like.ItemID))
			return nil, nil
		}
		comment, err := d.src.Comments.GetCommentByID(ctx, commentID)
		if err != nil {
			return nil, errorx.QueryFailure(err, "load liked comment")
		}
		if comment == nil {
			return nil, nil
		}
		ownerID = comment.AuthorID
		content = comment.CommentText

	default:
		d.log.Error("unsupported like target", zap.String("type", string(like.Type)), zap.String("item_id", like.ItemID))
		return nil, nil
	}

	owner, err := d.src.Accounts.FindAccountByID(ctx, ownerID)
	if err != nil {
		return nil, errorx.QueryFailure(err, "load liked item author")
	}
	if owner == nil || !owner.EnableLike || owner.ID == likerID {
		return nil, nil
	}
	return []models.Notification{
		newNotification(likerID, owner.ID, models.NotificationLike, Summarize(content), d.now()),
	}, nil
}

// commented notifies the author of the commented item: the post for a
// top-level comment, the parent comment for a reply.
func (d *Dispatcher) commented(ctx context.Context, commenterID uuid.UUID, c models.Comment, typ models.NotificationType) ([]models.Notification, error) {
	var itemAuthor uuid.UUID

	if c.CommentType == models.CommentOnComment {
		if c.ParentID == nil {
			d.log.Error("reply without parent comment", zap.Stringer("comment_id", c.ID))
			return nil, nil
		}
		parent, err := d.src.Comments.GetCommentByID(ctx, *c.ParentID)
		if err != nil {
			return nil, errorx.QueryFailure(err, "load parent comment")
		}
		if parent == nil {
			d.log.Warn("parent comment not found", zap.Stringer("comment_id", c.ID), zap.Stringer("parent_id", *c.ParentID))
			return nil, nil
		}
		itemAuthor = parent.AuthorID
	} else {
		post, err := d.src.Posts.GetPostByID(ctx, c.PostID)
		if err != nil {
			return nil, errorx.QueryFailure(err, "load commented post")
		}
		if post == nil {
			d.log.Warn("commented post not found", zap.Stringer("comment_id", c.ID), zap.String("post_id", c.PostID))
			return nil, nil
		}
		if itemAuthor, err = uuid.Parse(post.AuthorID); err != nil {
			d.log.Error("post with malformed author", zap.String("post_id", c.PostID), zap.String("author_id", post.AuthorID))
			return nil, nil
		}
	}

	if itemAuthor == commenterID {
		return nil, nil
	}
	return []models.Notification{
		newNotification(commenterID, itemAuthor, typ, Summarize(c.CommentText), d.now()),
	}, nil
}

func newNotification(author, receiver uuid.UUID, typ models.NotificationType, content string, at time.Time) models.Notification {
	return models.Notification{
		ID:         uuid.New(),
		AuthorID:   author,
		ReceiverID: receiver,
		Type:       typ,
		Content:    content,
		SendTime:   at,
		IsRead:     false,
	}
}

func eventName(ev Event) string {
	if ev == nil {
		return "<nil>"
	}
	return string(ev.Type())
}
