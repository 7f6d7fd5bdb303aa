package friends

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// memGraph is an in-memory friend graph. Accounts are scanned in insertion
// order so results are deterministic.
type memGraph struct {
	order    []uuid.UUID
	accounts map[uuid.UUID]*models.Account
	edges    []models.Friendship

	calls map[string]int
	fail  map[string]error
}

func newMemGraph() *memGraph {
	return &memGraph{
		accounts: map[uuid.UUID]*models.Account{},
		calls:    map[string]int{},
		fail:     map[string]error{},
	}
}

func (g *memGraph) add(a *models.Account) uuid.UUID {
	g.order = append(g.order, a.ID)
	g.accounts[a.ID] = a
	return a.ID
}

func (g *memGraph) befriend(a, b uuid.UUID) {
	g.link(a, b, models.StatusFriend)
	g.link(b, a, models.StatusFriend)
}

func (g *memGraph) link(from, to uuid.UUID, status models.StatusCode) {
	g.edges = append(g.edges, models.Friendship{ID: uuid.New(), AccountFromID: from, RequestedAccountID: to, StatusCode: status})
}

func (g *memGraph) hit(name string) error {
	g.calls[name]++
	return g.fail[name]
}

func (g *memGraph) targets(from uuid.UUID, status models.StatusCode) []uuid.UUID {
	var out []uuid.UUID
	for _, e := range g.edges {
		if e.AccountFromID == from && e.StatusCode == status {
			out = append(out, e.RequestedAccountID)
		}
	}
	return out
}

func (g *memGraph) DirectFriendIDs(_ context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	if err := g.hit("DirectFriendIDs"); err != nil {
		return nil, err
	}
	return g.targets(accountID, models.StatusFriend), nil
}

func (g *memGraph) FriendsOfFriendsIDs(_ context.Context, accountID uuid.UUID, friendIDs []uuid.UUID) ([]uuid.UUID, error) {
	if err := g.hit("FriendsOfFriendsIDs"); err != nil {
		return nil, err
	}
	skip := map[uuid.UUID]bool{accountID: true}
	for _, id := range friendIDs {
		skip[id] = true
	}
	var out []uuid.UUID
	for _, f := range friendIDs {
		for _, id := range g.targets(f, models.StatusFriend) {
			if a := g.accounts[id]; !skip[id] && (a == nil || !a.IsDeleted) {
				skip[id] = true
				out = append(out, id)
			}
		}
	}
	return out, nil
}

func (g *memGraph) RecommendationIDs(_ context.Context, friendIDs, friendsFriendsIDs []uuid.UUID, cond Condition) ([]uuid.UUID, error) {
	if err := g.hit("RecommendationIDs"); err != nil {
		return nil, err
	}
	skip := map[uuid.UUID]bool{}
	for _, id := range append(append([]uuid.UUID{}, friendIDs...), friendsFriendsIDs...) {
		skip[id] = true
	}
	var out []uuid.UUID
	for _, id := range g.order {
		a := g.accounts[id]
		if !skip[id] && !a.IsDeleted && cond.Match(a) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (g *memGraph) HydrateProfiles(_ context.Context, ids []uuid.UUID) ([]models.FriendShort, error) {
	if err := g.hit("HydrateProfiles"); err != nil {
		return nil, err
	}
	out := make([]models.FriendShort, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.accounts[id].ToShort(models.StatusRecommendation))
	}
	return out, nil
}

func (g *memGraph) SearchFriends(_ context.Context, accountID uuid.UUID, status models.StatusCode, cond Condition) ([]models.FriendShort, error) {
	if err := g.hit("SearchFriends"); err != nil {
		return nil, err
	}
	var out []models.FriendShort
	for _, id := range g.targets(accountID, status) {
		if a := g.accounts[id]; cond.Match(a) {
			out = append(out, a.ToShort(status))
		}
	}
	return out, nil
}

func (g *memGraph) FindAccountByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	if err := g.hit("FindAccountByID"); err != nil {
		return nil, err
	}
	return g.accounts[id], nil
}

var fixedToday = date(2024, time.March, 1)

func newTestRecommender(g *memGraph) *Recommender {
	r := NewRecommender(g, g, 5, 5, zap.NewNop())
	r.now = func() time.Time { return fixedToday }
	return r
}

func ids(profiles []models.FriendShort) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}

func TestRecommendTwoHopScenario(t *testing.T) {
	g := newMemGraph()
	me := g.add(account("Berlin", date(1990, 5, 10)))
	b := g.add(account("Paris", date(1960, 1, 1)))
	c := g.add(account("Paris", date(1960, 1, 1)))
	d := g.add(account("Rome", date(1950, 1, 1)))
	e := g.add(account("Berlin", date(1991, 1, 1)))
	sameCity := g.add(account("Berlin", date(1993, 8, 20)))
	g.add(account("Berlin", date(1970, 1, 1)))
	g.add(account("Munich", date(1990, 5, 10)))

	g.befriend(me, b)
	g.befriend(me, c)
	g.befriend(b, d)
	g.befriend(c, d)
	g.befriend(c, e)

	got, err := newTestRecommender(g).Recommend(context.Background(), me, models.SearchFilter{})
	require.NoError(t, err)

	if diff := cmp.Diff([]uuid.UUID{d, e, sameCity}, ids(got)); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, g.calls["FriendsOfFriendsIDs"])
	assert.Equal(t, 1, g.calls["FindAccountByID"])
}

func TestRecommendWithoutFriendsUsesDefaultFilter(t *testing.T) {
	g := newMemGraph()
	me := g.add(account("Berlin", date(1990, 5, 10)))
	inWindow := g.add(account("Berlin", date(1985, 5, 10)))
	g.add(account("Berlin", date(1985, 5, 9)))
	g.add(account("Hamburg", date(1990, 5, 10)))
	deleted := account("Berlin", date(1990, 5, 10))
	deleted.IsDeleted = true
	g.add(deleted)

	got, err := newTestRecommender(g).Recommend(context.Background(), me, models.SearchFilter{})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{inWindow}, ids(got))
	assert.NotContains(t, ids(got), me)
	assert.Zero(t, g.calls["FriendsOfFriendsIDs"])
}

func TestRecommendExplicitFilterSkipsRequesterLookup(t *testing.T) {
	g := newMemGraph()
	me := g.add(account("Berlin", date(1990, 5, 10)))
	young := g.add(account("Oslo", date(2003, 1, 1)))
	g.add(account("Oslo", date(1990, 1, 1)))

	got, err := newTestRecommender(g).Recommend(context.Background(), me, models.SearchFilter{
		City:  strPtr("Oslo"),
		AgeTo: intPtr(25),
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{young}, ids(got))
	assert.Zero(t, g.calls["FindAccountByID"])
}

func TestRecommendNeverReturnsDuplicates(t *testing.T) {
	g := newMemGraph()
	me := g.add(account("Berlin", date(1990, 5, 10)))
	var friends []uuid.UUID
	for range 3 {
		friends = append(friends, g.add(account("Berlin", date(1990, 1, 1))))
	}
	shared := g.add(account("Berlin", date(1990, 1, 1)))
	for _, f := range friends {
		g.befriend(me, f)
		g.befriend(f, shared)
	}
	g.add(account("Berlin", date(1991, 1, 1)))

	got, err := newTestRecommender(g).Recommend(context.Background(), me, models.SearchFilter{})
	require.NoError(t, err)

	seen := map[uuid.UUID]bool{}
	for _, id := range ids(got) {
		assert.False(t, seen[id], "duplicate %s", id)
		assert.NotEqual(t, me, id)
		for _, f := range friends {
			assert.NotEqual(t, f, id, "direct friend recommended")
		}
		seen[id] = true
	}
	assert.Len(t, got, 2)
}

func TestRecommendEmptyResultSkipsHydration(t *testing.T) {
	g := newMemGraph()
	me := g.add(account("Berlin", date(1990, 5, 10)))
	g.add(account("Lisbon", date(1990, 5, 10)))

	got, err := newTestRecommender(g).Recommend(context.Background(), me, models.SearchFilter{})
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, g.calls["HydrateProfiles"])
}

func TestRecommendRequesterWithoutProfileData(t *testing.T) {
	g := newMemGraph()
	me := g.add(account("", time.Time{}))
	other := g.add(account("Lisbon", date(1950, 1, 1)))

	got, err := newTestRecommender(g).Recommend(context.Background(), me, models.SearchFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other}, ids(got))
}

func TestRecommendPropagatesQueryFailure(t *testing.T) {
	boom := errors.New("connection reset")

	for _, step := range []string{"DirectFriendIDs", "FriendsOfFriendsIDs", "FindAccountByID", "RecommendationIDs", "HydrateProfiles"} {
		t.Run(step, func(t *testing.T) {
			g := newMemGraph()
			me := g.add(account("Berlin", date(1990, 5, 10)))
			friend := g.add(account("Berlin", date(1990, 5, 10)))
			g.befriend(me, friend)
			g.befriend(friend, g.add(account("Berlin", date(1990, 5, 10))))
			g.fail[step] = boom

			got, err := newTestRecommender(g).Recommend(context.Background(), me, models.SearchFilter{})
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, errorx.ErrQueryFailed)
			assert.ErrorIs(t, err, boom)
		})
	}
}
