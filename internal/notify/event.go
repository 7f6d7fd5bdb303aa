package notify

import "github.com/anonto42/nano-midea/socialnet/internal/models"

// Event is a domain event that may produce notifications. The set of events
// is closed: only types in this package implement it.
type Event interface {
	Type() models.NotificationType
	event()
}

// PostPublished is raised after a post has been stored.
type PostPublished struct {
	Post models.Post
}

// FriendRequested is raised when a friend request is sent.
type FriendRequested struct{}

// ItemLiked is raised after a like on a post or a comment has been stored.
type ItemLiked struct {
	Like models.Like
}

// MessageSent is raised when a direct message is sent.
type MessageSent struct{}

// PostCommented is raised after a top-level comment on a post has been stored.
type PostCommented struct {
	Comment models.Comment
}

// CommentReplied is raised after a reply to a comment has been stored.
type CommentReplied struct {
	Comment models.Comment
}

// EmailMessageSent is raised when an e-mail message is sent to an account.
type EmailMessageSent struct{}

func (PostPublished) Type() models.NotificationType    { return models.NotificationPost }
func (FriendRequested) Type() models.NotificationType  { return models.NotificationFriendRequest }
func (ItemLiked) Type() models.NotificationType        { return models.NotificationLike }
func (MessageSent) Type() models.NotificationType      { return models.NotificationMessage }
func (PostCommented) Type() models.NotificationType    { return models.NotificationPostComment }
func (CommentReplied) Type() models.NotificationType   { return models.NotificationCommentComment }
func (EmailMessageSent) Type() models.NotificationType { return models.NotificationSendEmailMessage }

func (PostPublished) event()    {}
func (FriendRequested) event()  {}
func (ItemLiked) event()        {}
func (MessageSent) event()      {}
func (PostCommented) event()    {}
func (CommentReplied) event()   {}
func (EmailMessageSent) event() {}

// CommentEvent picks the event matching the comment's type.
func CommentEvent(c models.Comment) Event {
	if c.CommentType == models.CommentOnComment {
		return CommentReplied{Comment: c}
	}
	return PostCommented{Comment: c}
}
