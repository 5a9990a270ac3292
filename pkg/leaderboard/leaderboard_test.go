package leaderboard

import (
	"context"
	"testing"

	"ecovoiceapi/pkg/schemas"
	"ecovoiceapi/pkg/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func user(name string, points int, achievements ...string) *schemas.User {
	return &schemas.User{Id: bson.NewObjectID(), Name: name, TotalPoints: points, Achievements: achievements}
}

func TestRankOrdersByPoints(t *testing.T) {
	a, b, c, d := user("a", 50), user("b", 10), user("c", 50), user("d", 0)
	entries := Rank([]*schemas.User{a, b, c, d})

	require.Len(t, entries, 4)
	require.ElementsMatch(t, []string{a.Id.Hex(), c.Id.Hex()}, []string{entries[0].UserId, entries[1].UserId})
	require.Equal(t, b.Id.Hex(), entries[2].UserId)
	require.Equal(t, d.Id.Hex(), entries[3].UserId)

	for i, e := range entries {
		require.Equal(t, i+1, e.Rank)
	}
	require.Equal(t, []int{50, 50, 10, 0}, []int{entries[0].TotalPoints, entries[1].TotalPoints, entries[2].TotalPoints, entries[3].TotalPoints})
}

func TestRankTieBreakIsDeterministic(t *testing.T) {
	a, b := user("a", 50), user("b", 50)
	first := Rank([]*schemas.User{a, b})
	second := Rank([]*schemas.User{b, a})
	require.Equal(t, first[0].UserId, second[0].UserId)
	require.Less(t, first[0].UserId, first[1].UserId)
}

func TestRankEntryFields(t *testing.T) {
	entries := Rank([]*schemas.User{user("", 5, "x", "y")})
	require.Equal(t, UnknownUser, entries[0].Name)
	require.Equal(t, 2, entries[0].Cleanups)
}

func TestApplyMovement(t *testing.T) {
	a, b, c := user("a", 30), user("b", 20), user("c", 10)
	last := Rank([]*schemas.User{a, b})

	c.TotalPoints = 40
	entries := Rank([]*schemas.User{a, b, c})
	ApplyMovement(entries, last)

	dirs := map[string]int{}
	for _, e := range entries {
		dirs[e.Name] = e.Dir
	}
	require.Equal(t, map[string]int{"c": 1, "a": -1, "b": -1}, dirs)
}

func TestRefreshStoresSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	snap, err := LoadSnapshot(redisCli, ctx)
	require.NoError(t, err)
	require.Nil(t, snap)

	st := store.NewMemoryStore()
	low, high := user("low", 10), user("high", 20)
	st.PutUser(low)
	st.PutUser(high)

	entries, err := Refresh(redisCli, ctx, st)
	require.NoError(t, err)
	require.Equal(t, "high", entries[0].Name)

	snap, err = LoadSnapshot(redisCli, ctx)
	require.NoError(t, err)
	require.Equal(t, entries, snap)

	// low overtakes high
	low.TotalPoints = 100
	st.PutUser(low)
	entries, err = Refresh(redisCli, ctx, st)
	require.NoError(t, err)
	require.Equal(t, "low", entries[0].Name)
	require.Equal(t, 1, entries[0].Dir)
	require.Equal(t, -1, entries[1].Dir)
}
