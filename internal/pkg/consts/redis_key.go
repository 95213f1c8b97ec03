package consts

const (
	UserSummaryKey     = "wellness:summary:"
	UserSummaryChannel = "wellness:summary:updated:"
	AggregateDirtyKey  = "wellness:aggregate:dirty"
	LeaderboardKey     = "wellness:leaderboard:rank"
	LeaderboardCache   = "wellness:leaderboard:cache"
)

const (
	AggregateLock   = "lock:aggregate:"
	LeaderboardLock = "lock:leaderboard"
)
