package wellness

import "sort"

// Standing 排行榜中单个用户的成绩
type Standing struct {
	UserID       uint64  `json:"userId"`
	Username     string  `json:"username"`
	QuizScore    int     `json:"quizScore"`
	EmotionScore float64 `json:"emotionScore"`
	Composite    float64 `json:"compositeScore"`
	TotalLogs    int     `json:"totalLogs"`
	Rank         int     `json:"rank"`
}

// RankStandings 按综合得分从高到低排序并赋予 1..N 的连续名次。
// 同分时按用户名字典序、再按用户 ID 升序决出先后，保证结果确定。
// 名次每次调用都整体重算，不做增量修补。
func RankStandings(standings []Standing) []Standing {
	ranked := make([]Standing, len(standings))
	copy(ranked, standings)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		if ranked[i].Username != ranked[j].Username {
			return ranked[i].Username < ranked[j].Username
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
