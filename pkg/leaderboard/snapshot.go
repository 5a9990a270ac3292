package leaderboard

import (
	"context"
	"encoding/json"
	"errors"

	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/schemas"
	"ecovoiceapi/pkg/store"

	"github.com/redis/go-redis/v9"
)

// LoadSnapshot returns the last stored ranking, or nil when none was stored.
func LoadSnapshot(redisCli *redis.Client, ctx context.Context) ([]*schemas.LeaderboardEntry, error) {

	data, err := redisCli.Get(ctx, config.LEADERBOARD_SNAPSHOT_KEY).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var entries []*schemas.LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, err
	}
	return entries, nil

}

// Refresh ranks every user and stores the result as the new snapshot.
func Refresh(redisCli *redis.Client, ctx context.Context, st store.Store) ([]*schemas.LeaderboardEntry, error) {

	users, err := st.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	entries := Rank(users)

	last, err := LoadSnapshot(redisCli, ctx)
	if err != nil {
		return nil, err
	}
	ApplyMovement(entries, last)

	data, err := json.Marshal(&entries)
	if err != nil {
		return nil, err
	}
	if err := redisCli.Set(ctx, config.LEADERBOARD_SNAPSHOT_KEY, data, 0).Err(); err != nil {
		return nil, err
	}

	return entries, nil

}
