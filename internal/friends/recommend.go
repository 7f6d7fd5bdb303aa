// Package friends implements friend recommendations and friend search over
// the social graph stored in PostgreSQL.
package friends

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// GraphQuery is the read side of the friend graph.
type GraphQuery interface {
	// DirectFriendIDs returns accounts linked to accountID by a FRIEND edge.
	DirectFriendIDs(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
	// FriendsOfFriendsIDs returns distinct FRIEND targets of friendIDs, minus
	// accountID and minus friendIDs.
	FriendsOfFriendsIDs(ctx context.Context, accountID uuid.UUID, friendIDs []uuid.UUID) ([]uuid.UUID, error)
	// RecommendationIDs returns non-deleted accounts matching cond that are
	// in neither exclusion list.
	RecommendationIDs(ctx context.Context, friendIDs, friendsFriendsIDs []uuid.UUID, cond Condition) ([]uuid.UUID, error)
	HydrateProfiles(ctx context.Context, ids []uuid.UUID) ([]models.FriendShort, error)
	// SearchFriends returns accounts on the far end of edges from accountID
	// with the given status, filtered by cond.
	SearchFriends(ctx context.Context, accountID uuid.UUID, status models.StatusCode, cond Condition) ([]models.FriendShort, error)
}

// AccountLookup loads a single account. A missing account is (nil, nil).
type AccountLookup interface {
	FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// Recommender suggests accounts the user may want to befriend.
type Recommender struct {
	graph    GraphQuery
	accounts AccountLookup
	log      *zap.Logger

	ageLimitBottom int
	ageLimitTop    int
	now            func() time.Time
}

// NewRecommender creates a Recommender. ageLimitBottom and ageLimitTop bound
// the birth-date window used when the caller sends no filter at all.
func NewRecommender(graph GraphQuery, accounts AccountLookup, ageLimitBottom, ageLimitTop int, log *zap.Logger) *Recommender {
	return &Recommender{
		graph:          graph,
		accounts:       accounts,
		log:            log,
		ageLimitBottom: ageLimitBottom,
		ageLimitTop:    ageLimitTop,
		now:            time.Now,
	}
}

// Recommend returns friends-of-friends first, then other accounts matching
// the filter, excluding the user and the user's direct friends.
func (r *Recommender) Recommend(ctx context.Context, userID uuid.UUID, f models.SearchFilter) ([]models.FriendShort, error) {
	friendIDs, err := r.graph.DirectFriendIDs(ctx, userID)
	if err != nil {
		r.log.Error("load direct friends", zap.Stringer("account_id", userID), zap.Error(err))
		return nil, errorx.QueryFailure(err, "load direct friends")
	}

	var friendsFriendsIDs []uuid.UUID
	if len(friendIDs) > 0 {
		friendsFriendsIDs, err = r.graph.FriendsOfFriendsIDs(ctx, userID, friendIDs)
		if err != nil {
			r.log.Error("load friends of friends", zap.Stringer("account_id", userID), zap.Error(err))
			return nil, errorx.QueryFailure(err, "load friends of friends")
		}
	}

	if f.IsEmpty() {
		f, err = r.defaultFilter(ctx, userID)
		if err != nil {
			return nil, err
		}
	} else {
		f = NormalizeAge(f, r.now())
	}
	f.ExcludedID = userID

	matchedIDs, err := r.graph.RecommendationIDs(ctx, friendIDs, friendsFriendsIDs, BuildCondition(f))
	if err != nil {
		r.log.Error("load recommendation candidates", zap.Stringer("account_id", userID), zap.Error(err))
		return nil, errorx.QueryFailure(err, "load recommendation candidates")
	}

	ids := orderedUnion(userID, friendsFriendsIDs, matchedIDs)
	r.log.Debug("recommendations computed",
		zap.Stringer("account_id", userID),
		zap.Int("friends", len(friendIDs)),
		zap.Int("friends_of_friends", len(friendsFriendsIDs)),
		zap.Int("result", len(ids)),
	)
	if len(ids) == 0 {
		return []models.FriendShort{}, nil
	}

	profiles, err := r.graph.HydrateProfiles(ctx, ids)
	if err != nil {
		r.log.Error("hydrate recommendations", zap.Stringer("account_id", userID), zap.Error(err))
		return nil, errorx.QueryFailure(err, "hydrate recommendations")
	}
	return profiles, nil
}

// defaultFilter builds a filter from the requester's own profile: same city
// and a birth date within the configured window around theirs.
func (r *Recommender) defaultFilter(ctx context.Context, userID uuid.UUID) (models.SearchFilter, error) {
	var f models.SearchFilter

	me, err := r.accounts.FindAccountByID(ctx, userID)
	if err != nil {
		r.log.Error("load requester profile", zap.Stringer("account_id", userID), zap.Error(err))
		return f, errorx.QueryFailure(err, "load requester profile")
	}
	if me == nil {
		return f, nil
	}

	if me.City != "" {
		city := me.City
		f.City = &city
	}
	if birth := me.Birthday(); !birth.IsZero() {
		from := addYears(birth, -r.ageLimitBottom)
		to := addYears(birth, r.ageLimitTop)
		f.BirthDateFrom = &from
		f.BirthDateTo = &to
	}
	return f, nil
}

// orderedUnion concatenates the lists, dropping duplicates and self while
// keeping first-seen order.
func orderedUnion(self uuid.UUID, lists ...[]uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{self: {}}
	var out []uuid.UUID
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
