package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anonto42/nano-midea/socialnet/internal/middleware"
	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/internal/notify"
	"github.com/anonto42/nano-midea/socialnet/validators"
)

// newContext builds an echo context for an authenticated request.
func newContext(method, target, body string, accountID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if accountID != uuid.Nil {
		c.Set(middleware.AccountIDKey, accountID)
	}
	return c, rec
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

type published struct {
	author uuid.UUID
	ev     notify.Event
}

type recordingPublisher struct {
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, authorID uuid.UUID, ev notify.Event) error {
	p.events = append(p.events, published{authorID, ev})
	return p.err
}

type memPosts struct {
	posts   map[string]*models.Post
	created []*models.Post
	err     error
}

func newMemPosts(posts ...*models.Post) *memPosts {
	m := &memPosts{posts: map[string]*models.Post{}}
	for _, p := range posts {
		m.posts[p.ID.Hex()] = p
	}
	return m
}

func (m *memPosts) CreatePost(_ context.Context, post *models.Post) error {
	if m.err != nil {
		return m.err
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	m.created = append(m.created, post)
	m.posts[post.ID.Hex()] = post
	return nil
}

func (m *memPosts) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.posts[id], nil
}

type memComments struct {
	comments map[uuid.UUID]*models.Comment
	created  []*models.Comment
}

func newMemComments(comments ...*models.Comment) *memComments {
	m := &memComments{comments: map[uuid.UUID]*models.Comment{}}
	for _, c := range comments {
		m.comments[c.ID] = c
	}
	return m
}

func (m *memComments) CreateComment(_ context.Context, c *models.Comment) error {
	m.created = append(m.created, c)
	m.comments[c.ID] = c
	return nil
}

func (m *memComments) GetCommentByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	return m.comments[id], nil
}

type memLikes struct {
	created []*models.Like
	err     error
}

func (m *memLikes) CreateLike(_ context.Context, like *models.Like) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, like)
	return nil
}
