package models

// Example is one sample test from a problem statement.
type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Problem is the full statement shown in the workspace.
type Problem struct {
	ContestID           FlexString `json:"contestId"`
	Index               string     `json:"index"`
	Name                string     `json:"name"`
	Rating              int        `json:"rating,omitempty"`
	Tags                []string   `json:"tags,omitempty"`
	TimeLimit           string     `json:"timeLimit,omitempty"`
	MemoryLimit         string     `json:"memoryLimit,omitempty"`
	ProblemStatement    string     `json:"problemStatement,omitempty"`
	InputSpecification  string     `json:"inputSpecification,omitempty"`
	OutputSpecification string     `json:"outputSpecification,omitempty"`
	Note                string     `json:"note,omitempty"`
	Examples            []Example  `json:"examples,omitempty"`
}

// Difficulty is the recommendation bucket assigned by the backend.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Rank orders difficulties; unknown values rank as Easy.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 1
}

// Recommendation is one roadmap problem.
type Recommendation struct {
	ProblemID  FlexString `json:"problemId"`
	ContestID  FlexString `json:"contestId"`
	Index      string     `json:"index"`
	Name       string     `json:"name"`
	Rating     int        `json:"rating,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	URL        string     `json:"url,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

// HistoryStatus is the outcome recorded for an attempt.
type HistoryStatus string

const (
	StatusSolved    HistoryStatus = "solved"
	StatusFailed    HistoryStatus = "failed"
	StatusAttempted HistoryStatus = "attempted"
)

// HistoryEntry is one row of the problem history.
type HistoryEntry struct {
	ID          FlexString    `json:"id,omitempty"`
	UserHandle  string        `json:"userHandle,omitempty"`
	IdolHandle  string        `json:"idolHandle,omitempty"`
	ProblemID   FlexString    `json:"problemId"`
	ContestID   FlexString    `json:"contestId"`
	Index       string        `json:"index"`
	Name        string        `json:"name"`
	Rating      int           `json:"rating,omitempty"`
	Tags        []string      `json:"tags"`
	Difficulty  Difficulty    `json:"difficulty"`
	Status      HistoryStatus `json:"status"`
	AttemptedAt Timestamp     `json:"attemptedAt,omitzero"`
}

// SolvedEntry builds the history record posted when a recommendation turns
// out to be solved.
func SolvedEntry(userHandle, idolHandle string, r Recommendation) HistoryEntry {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return HistoryEntry{
		UserHandle: userHandle,
		IdolHandle: idolHandle,
		ProblemID:  r.ProblemID,
		ContestID:  r.ContestID,
		Index:      r.Index,
		Name:       r.Name,
		Rating:     r.Rating,
		Tags:       tags,
		Difficulty: r.Difficulty,
		Status:     StatusSolved,
	}
}

// SubmissionStatus is the per-problem verdict of a submissions check.
type SubmissionStatus struct {
	Solved bool `json:"solved"`
}
