package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
)

var fixedNow = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

// world is an in-memory implementation of every lookup the dispatcher uses.
type world struct {
	accounts  map[uuid.UUID]*models.Account
	friends   map[uuid.UUID][]uuid.UUID
	posts     map[string]*models.Post
	comments  map[uuid.UUID]*models.Comment
	birthdays []models.Account
	sent      []uuid.UUID

	err error
}

func newWorld() *world {
	return &world{
		accounts: map[uuid.UUID]*models.Account{},
		friends:  map[uuid.UUID][]uuid.UUID{},
		posts:    map[string]*models.Post{},
		comments: map[uuid.UUID]*models.Comment{},
	}
}

func (w *world) sources() Sources {
	return Sources{Accounts: w, Friends: w, Posts: w, Comments: w, Birthdays: w}
}

// person adds an account with every preference enabled.
func (w *world) person(name string) *models.Account {
	a := &models.Account{
		ID:                   uuid.New(),
		FirstName:            name,
		EnablePost:           true,
		EnableLike:           true,
		EnableComment:        true,
		EnableFriendBirthday: true,
	}
	w.accounts[a.ID] = a
	return a
}

func (w *world) befriend(a, b *models.Account) {
	w.friends[a.ID] = append(w.friends[a.ID], b.ID)
	w.friends[b.ID] = append(w.friends[b.ID], a.ID)
}

func (w *world) post(author *models.Account, title string) *models.Post {
	p := &models.Post{ID: primitive.NewObjectID(), AuthorID: author.ID.String(), Title: title}
	w.posts[p.ID.Hex()] = p
	return p
}

func (w *world) comment(author *models.Account, post *models.Post, text string) *models.Comment {
	c := &models.Comment{ID: uuid.New(), CommentType: models.CommentOnPost, PostID: post.ID.Hex(), AuthorID: author.ID, CommentText: text}
	w.comments[c.ID] = c
	return c
}

func (w *world) FindAccountByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.accounts[id], nil
}

func (w *world) FriendAccounts(_ context.Context, accountID uuid.UUID) ([]models.Account, error) {
	if w.err != nil {
		return nil, w.err
	}
	var out []models.Account
	for _, id := range w.friends[accountID] {
		out = append(out, *w.accounts[id])
	}
	return out, nil
}

func (w *world) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.posts[id], nil
}

func (w *world) GetCommentByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.comments[id], nil
}

func (w *world) FindAccountsWithBirthday(context.Context, time.Time) ([]models.Account, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.birthdays, nil
}

func (w *world) BirthdayAuthorsSentOn(context.Context, time.Time) ([]uuid.UUID, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.sent, nil
}

func newTestDispatcher(w *world, log *zap.Logger) *Dispatcher {
	d := NewDispatcher(w.sources(), log)
	d.now = func() time.Time { return fixedNow }
	return d
}

// recordingStore counts single and batch writes.
type recordingStore struct {
	singles [][]models.Notification
	batches [][]models.Notification
	err     error
}

func (s *recordingStore) CreateNotification(_ context.Context, n *models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.singles = append(s.singles, []models.Notification{*n})
	return nil
}

func (s *recordingStore) CreateNotifications(_ context.Context, ns []models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, ns)
	return nil
}

type recordingPusher struct {
	pushed [][]models.Notification
	err    error
}

func (p *recordingPusher) Push(_ context.Context, ns []models.Notification) error {
	p.pushed = append(p.pushed, ns)
	return p.err
}
