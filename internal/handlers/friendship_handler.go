package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// Recommender suggests accounts the requester may know
type Recommender interface {
	Recommend(ctx context.Context, userID uuid.UUID, f models.SearchFilter) ([]models.FriendShort, error)
}

// FriendSearcher lists the requester's relations matching a filter
type FriendSearcher interface {
	Search(ctx context.Context, userID uuid.UUID, f models.SearchFilter) ([]models.FriendShort, error)
}

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	recommender Recommender
	searcher    FriendSearcher
	log         *zap.Logger
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(recommender Recommender, searcher FriendSearcher, log *zap.Logger) *FriendshipHandler {
	return &FriendshipHandler{recommender: recommender, searcher: searcher, log: log}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.GET("/friends/recommendations", h.GetRecommendations)
	g.GET("/friends", h.SearchFriends)
}

// GetRecommendations returns friend recommendations for the current account
func (h *FriendshipHandler) GetRecommendations(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	filter, err := bindSearchFilter(c, false)
	if err != nil {
		return err
	}

	recommendations, err := h.recommender.Recommend(c.Request().Context(), accountID, filter)
	if err != nil {
		h.log.Error("recommend friends", zap.Stringer("account_id", accountID), zap.Error(err))
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"recommendations": recommendations},
	})
}

// SearchFriends lists related accounts, FRIEND unless statusCode says otherwise
func (h *FriendshipHandler) SearchFriends(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	filter, err := bindSearchFilter(c, true)
	if err != nil {
		return err
	}

	friends, err := h.searcher.Search(c.Request().Context(), accountID, filter)
	if err != nil {
		h.log.Error("search friends", zap.Stringer("account_id", accountID), zap.Error(err))
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"friends": friends},
	})
}

func bindSearchFilter(c echo.Context, withStatus bool) (models.SearchFilter, error) {
	var q models.SearchFilterQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return models.SearchFilter{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return models.SearchFilter{}, err
	}
	if !withStatus {
		q.StatusCode = ""
	}

	f, err := toSearchFilter(q)
	if err != nil {
		return models.SearchFilter{}, httpError(err)
	}
	return f, nil
}

// toSearchFilter converts the query form; empty parameters stay unset.
func toSearchFilter(q models.SearchFilterQuery) (models.SearchFilter, error) {
	var f models.SearchFilter
	f.FirstName = optString(q.FirstName)
	f.City = optString(q.City)
	f.Country = optString(q.Country)

	var err error
	if f.AgeFrom, err = optInt("ageFrom", q.AgeFrom); err != nil {
		return f, err
	}
	if f.AgeTo, err = optInt("ageTo", q.AgeTo); err != nil {
		return f, err
	}
	if f.BirthDateFrom, err = optDate("birthDateFrom", q.BirthDateFrom); err != nil {
		return f, err
	}
	if f.BirthDateTo, err = optDate("birthDateTo", q.BirthDateTo); err != nil {
		return f, err
	}

	if q.StatusCode != "" {
		status := models.StatusCode(q.StatusCode)
		if !status.Valid() {
			return f, errorx.Newf(errorx.CodeInvalidParam, "unknown statusCode %q", q.StatusCode)
		}
		f.StatusCode = &status
	}
	return f, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(name, s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "invalid %s %q", name, s)
	}
	return &v, nil
}

func optDate(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "invalid %s %q", name, s)
	}
	return &t, nil
}
