package schemas

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserId      string `json:"userId"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
	Cleanups    int    `json:"cleanups"`
	Dir         int    `json:"dir"`
}
