package leaderboard

import (
	"cmp"
	"slices"
	"strings"

	"ecovoiceapi/pkg/schemas"
)

const UnknownUser = "Unknown User"

// Rank orders users by total points, highest first. Ties are broken by
// ascending user id so the ranking is deterministic.
func Rank(users []*schemas.User) []*schemas.LeaderboardEntry {

	sorted := slices.Clone(users)
	slices.SortStableFunc(sorted, func(a, b *schemas.User) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		return strings.Compare(a.Id.Hex(), b.Id.Hex())
	})

	entries := make([]*schemas.LeaderboardEntry, len(sorted))
	for i, user := range sorted {
		name := user.Name
		if name == "" {
			name = UnknownUser
		}
		entries[i] = &schemas.LeaderboardEntry{
			Rank:        i + 1,
			UserId:      user.Id.Hex(),
			Name:        name,
			TotalPoints: user.TotalPoints,
			Cleanups:    len(user.Achievements),
			Dir:         1,
		}
	}
	return entries

}

// ApplyMovement sets Dir to -1 for every entry ranked lower than it was in
// last. New and unchanged-or-improved entries keep Dir 1.
func ApplyMovement(entries []*schemas.LeaderboardEntry, last []*schemas.LeaderboardEntry) {

	lastRank := make(map[string]int, len(last))
	for _, entry := range last {
		lastRank[entry.UserId] = entry.Rank
	}

	for _, entry := range entries {
		entry.Dir = 1
		if prev, ok := lastRank[entry.UserId]; ok && entry.Rank > prev {
			entry.Dir = -1
		}
	}

}
