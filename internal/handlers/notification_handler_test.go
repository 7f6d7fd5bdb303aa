package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

type memNotifications struct {
	items    []models.Notification
	page     int
	limit    int
	markedBy uuid.UUID
}

func (m *memNotifications) GetByReceiverID(_ context.Context, receiverID uuid.UUID, page, limit int) ([]models.Notification, int64, error) {
	m.page, m.limit = page, limit
	var out []models.Notification
	for _, n := range m.items {
		if n.ReceiverID == receiverID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memNotifications) GetUnreadCount(_ context.Context, receiverID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range m.items {
		if item.ReceiverID == receiverID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) MarkAsRead(_ context.Context, receiverID, id uuid.UUID) error {
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].ReceiverID == receiverID {
			m.items[i].IsRead = true
			return nil
		}
	}
	return errorx.ErrNotFound
}

func (m *memNotifications) MarkAllAsRead(_ context.Context, receiverID uuid.UUID) error {
	m.markedBy = receiverID
	return nil
}

func TestGetNotificationsPaginates(t *testing.T) {
	me := uuid.New()
	store := &memNotifications{items: []models.Notification{
		{ID: uuid.New(), ReceiverID: me, Type: models.NotificationLike},
		{ID: uuid.New(), ReceiverID: uuid.New(), Type: models.NotificationPost},
	}}
	h := NewNotificationHandler(store, zap.NewNop())

	c, rec := newContext(http.MethodGet, "/api/v1/notifications?page=0&limit=500", "", me)
	require.NoError(t, h.GetNotifications(c))
	assert.Equal(t, 1, store.page)
	assert.Equal(t, 20, store.limit)

	var body struct {
		Data struct {
			Notifications []models.Notification `json:"notifications"`
		} `json:"data"`
		Meta struct {
			TotalItems int  `json:"totalItems"`
			HasNext    bool `json:"hasNextPage"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Notifications, 1)
	assert.Equal(t, models.NotificationLike, body.Data.Notifications[0].Type)
	assert.Equal(t, 1, body.Meta.TotalItems)
	assert.False(t, body.Meta.HasNext)
}

func TestMarkAsReadIsScopedToReceiver(t *testing.T) {
	me, other := uuid.New(), uuid.New()
	mine := models.Notification{ID: uuid.New(), ReceiverID: me}
	theirs := models.Notification{ID: uuid.New(), ReceiverID: other}
	store := &memNotifications{items: []models.Notification{mine, theirs}}
	h := NewNotificationHandler(store, zap.NewNop())

	mark := func(id string) error {
		c, _ := newContext(http.MethodPut, "/api/v1/notifications/"+id+"/read", "", me)
		c.SetParamNames("id")
		c.SetParamValues(id)
		return h.MarkAsRead(c)
	}

	require.NoError(t, mark(mine.ID.String()))
	assert.True(t, store.items[0].IsRead)

	assert.Equal(t, http.StatusNotFound, httpCode(mark(theirs.ID.String())))
	assert.False(t, store.items[1].IsRead)

	assert.Equal(t, http.StatusBadRequest, httpCode(mark("42")))
}

func TestUnreadCountAndMarkAll(t *testing.T) {
	me := uuid.New()
	store := &memNotifications{items: []models.Notification{
		{ID: uuid.New(), ReceiverID: me},
		{ID: uuid.New(), ReceiverID: me, IsRead: true},
	}}
	h := NewNotificationHandler(store, zap.NewNop())

	c, rec := newContext(http.MethodGet, "/api/v1/notifications/unread-count", "", me)
	require.NoError(t, h.GetUnreadCount(c))
	assert.JSONEq(t, `{"success":true,"data":{"count":1}}`, rec.Body.String())

	c, _ = newContext(http.MethodPut, "/api/v1/notifications/read-all", "", me)
	require.NoError(t, h.MarkAllAsRead(c))
	assert.Equal(t, me, store.markedBy)
}
