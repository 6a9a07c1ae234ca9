package cli

import (
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
)

var (
	recA = models.Recommendation{
		ProblemID: "1520A", ContestID: "1520", Index: "A", Name: "Do Not Be Distracted!",
		Rating: 800, Tags: []string{"brute force", "implementation"}, Difficulty: models.DifficultyEasy,
	}
	recB = models.Recommendation{
		ProblemID: "1352C", ContestID: "1352", Index: "C", Name: "K-th Not Divisible by n",
		Rating: 1200, Tags: []string{"math"}, Difficulty: models.DifficultyMedium,
	}
)

func bundle(recs ...models.Recommendation) *models.DashboardData {
	return &models.DashboardData{
		Comparison: &models.Comparison{
			User:            models.SideStats{Handle: "alice", Rating: 1450, MaxRating: 1500, ProblemsSolved: 120},
			Idol:            models.SideStats{Handle: "tourist", Rating: 3800, MaxRating: 4000, ProblemsSolved: 2500, ContestWins: 100},
			ProgressPercent: 38,
		},
		Recommendations: &models.RecommendationSet{Recommendations: recs, Description: "Close the gap in implementation."},
	}
}

func skills() *models.SkillComparison {
	return &models.SkillComparison{
		Stats: []models.TopicStat{
			{Topic: "dp", User: 10, Idol: 300, Gap: 290},
			{Topic: "greedy", User: 40, Idol: 200, Gap: 160},
		},
		WeakestTopics: []models.WeakTopic{
			{Topic: "dp", Gap: 290, Problems: []models.TopicProblem{{ContestID: "4", Index: "D", Name: "Mysterious Present", Rating: 1700}}},
		},
		AllTopics: []string{"dp", "greedy", "math", "graphs"},
	}
}

func history() []models.HistoryEntry {
	return []models.HistoryEntry{{
		ProblemID: "1352C", ContestID: "1352", Index: "C", Name: "K-th Not Divisible by n",
		Status: models.StatusFailed, AttemptedAt: models.Timestamp{Time: time.Now().Add(-3 * time.Hour)},
	}}
}

var sampleProblem = &models.Problem{
	ContestID:        "1520",
	Index:            "A",
	Name:             "Do Not Be Distracted!",
	Rating:           800,
	ProblemStatement: "Polycarp has $26$ tasks.",
	Examples: []models.Example{
		{Input: "1\n3\nABA\n", Output: "NO\n"},
	},
}
