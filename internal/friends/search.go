package friends

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// Searcher filters the accounts a user already has an edge to.
type Searcher struct {
	graph GraphQuery
	log   *zap.Logger
	now   func() time.Time
}

func NewSearcher(graph GraphQuery, log *zap.Logger) *Searcher {
	return &Searcher{graph: graph, log: log, now: time.Now}
}

// Search returns accounts linked from userID with f.StatusCode (FRIEND when
// unset) that match the remaining filter fields.
func (s *Searcher) Search(ctx context.Context, userID uuid.UUID, f models.SearchFilter) ([]models.FriendShort, error) {
	status := models.StatusFriend
	if f.StatusCode != nil {
		status = *f.StatusCode
	}

	f = NormalizeAge(f, s.now())
	f.ExcludedID = userID

	found, err := s.graph.SearchFriends(ctx, userID, status, BuildCondition(f))
	if err != nil {
		s.log.Error("search friends", zap.Stringer("account_id", userID), zap.String("status", string(status)), zap.Error(err))
		return nil, errorx.QueryFailure(err, "search friends")
	}
	if found == nil {
		found = []models.FriendShort{}
	}
	return found, nil
}
