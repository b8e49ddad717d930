package models

import (
	"time"

	"github.com/goccy/go-json"
)

type UserProgress struct {
	UserID                string                   `json:"userId"`
	AttemptStreak         int                      `json:"attemptStreak"`
	WinStreak             int                      `json:"winStreak"`
	LongestStreak         int                      `json:"longestStreak"`
	LastPlayedDate        string                   `json:"lastPlayedDate"`
	LastPlayedDifficulty  Difficulty               `json:"lastPlayedDifficulty"`
	TotalGamesPlayed      int                      `json:"totalGamesPlayed"`
	TotalGamesWon         int                      `json:"totalGamesWon"`
	WinPercentage         float64                  `json:"winPercentage"`
	TotalTimeSpent        int                      `json:"totalTimeSpent"`
	AverageTimeToComplete float64                  `json:"averageTimeToComplete"`
	FastestTime           *int                     `json:"fastestTime"`
	SolveDistribution     map[int]int              `json:"solveDistribution"`
	Completions           map[int]CompletionRecord `json:"completions"`
	InProgress            *InProgressSnapshot      `json:"inProgress"`
}

// NewUserProgress returns the zero record for a user.
func NewUserProgress(userID string) *UserProgress {
	return &UserProgress{
		UserID:            userID,
		SolveDistribution: EmptyDistribution(),
		Completions:       make(map[int]CompletionRecord),
	}
}

// EmptyDistribution returns a histogram with every round present and zero.
func EmptyDistribution() map[int]int {
	dist := make(map[int]int, MaxRounds)
	for r := 1; r <= MaxRounds; r++ {
		dist[r] = 0
	}
	return dist
}

type CompletionRecord struct {
	Difficulty      Difficulty `json:"difficulty"`
	Completed       bool       `json:"completed"`
	Won             bool       `json:"won"`
	Score           int        `json:"score"`
	RoundsCompleted int        `json:"roundsCompleted"`
	TimeToComplete  int        `json:"timeToComplete"` // seconds
	Date            string     `json:"date"`
	CompletedAt     time.Time  `json:"completedAt"`
	UserGuesses     []Item     `json:"userGuesses"`
	RoundScores     []int      `json:"roundScores,omitempty"`
}

// InProgressSnapshot carries an unfinished session. State is owned by the
// round engine and is opaque to the progress store.
type InProgressSnapshot struct {
	DayNumber  int             `json:"dayNumber"`
	Difficulty Difficulty      `json:"difficulty"`
	SavedAt    time.Time       `json:"savedAt"`
	State      json.RawMessage `json:"state"`
}

// GameOutcome is what a finished session reports to the progress store.
type GameOutcome struct {
	DayNumber       int
	Difficulty      Difficulty
	Won             bool
	Score           int
	RoundsCompleted int
	TimeToComplete  int
	UserGuesses     []Item
	RoundScores     []int
}

type CompletionStatus struct {
	Completed       bool       `json:"completed"`
	Won             bool       `json:"won"`
	Difficulty      Difficulty `json:"difficulty,omitempty"`
	Score           int        `json:"score"`
	RoundsCompleted int        `json:"roundsCompleted"`
	TimeToComplete  int        `json:"timeToComplete"`
}
