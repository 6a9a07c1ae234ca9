package models

// SideStats are the headline numbers for one side of the comparison.
type SideStats struct {
	Handle         string `json:"handle,omitempty"`
	Rating         int    `json:"rating"`
	MaxRating      int    `json:"maxRating"`
	ProblemsSolved int    `json:"problemsSolved"`
	ContestWins    int    `json:"contestWins"`
	Rank           string `json:"rank,omitempty"`
}

// Comparison is the user-vs-idol overview.
type Comparison struct {
	User            SideStats `json:"user"`
	Idol            SideStats `json:"idol"`
	ProgressPercent float64   `json:"progressPercent"`
	UserAhead       bool      `json:"userAhead"`
}

// RecommendationSet is the roadmap with its narrative.
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
	Description     string           `json:"description"`
}

// DashboardData is the bundle returned by the dashboard endpoint. Any part
// may be missing.
type DashboardData struct {
	Comparison      *Comparison        `json:"comparison"`
	Recommendations *RecommendationSet `json:"recommendations"`
	History         []HistoryEntry     `json:"history"`
}

// TopicStat counts solved problems per topic for both sides.
type TopicStat struct {
	Topic string `json:"topic"`
	User  int    `json:"user"`
	Idol  int    `json:"idol"`
	Gap   int    `json:"gap"`
}

// TopicProblem is a problem the idol solved in a weak topic.
type TopicProblem struct {
	ContestID FlexString `json:"contestId"`
	Index     string     `json:"index"`
	Name      string     `json:"name"`
	Rating    int        `json:"rating,omitempty"`
	URL       string     `json:"url,omitempty"`
}

// WeakTopic is a topic where the user trails the idol.
type WeakTopic struct {
	Topic    string         `json:"topic"`
	Gap      int            `json:"gap"`
	Problems []TopicProblem `json:"problems"`
}

// SkillComparison is the per-topic breakdown.
type SkillComparison struct {
	Stats                  []TopicStat `json:"stats"`
	WeakestTopics          []WeakTopic `json:"weakestTopics"`
	UserRating             int         `json:"userRating"`
	IdolRatingAtComparison int         `json:"idolRatingAtComparison"`
	AllTopics              []string    `json:"allTopics"`
}
