package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/vytor/hippomemory/internal/models"
)

// ClampRound pins a rounds-completed value into 1..MaxRounds.
func ClampRound(r int) int {
	return min(max(r, 1), models.MaxRounds)
}

// ApplyCompletion records a finished game into p: the day's completion
// record, the aggregate counters, and the streaks. date is the calendar
// date of out.DayNumber.
func ApplyCompletion(p *models.UserProgress, out models.GameOutcome, date string, at time.Time) {
	Backfill(p)

	p.Completions[out.DayNumber] = models.CompletionRecord{
		Difficulty:      out.Difficulty,
		Completed:       true,
		Won:             out.Won,
		Score:           out.Score,
		RoundsCompleted: out.RoundsCompleted,
		TimeToComplete:  out.TimeToComplete,
		Date:            date,
		CompletedAt:     at,
		UserGuesses:     out.UserGuesses,
		RoundScores:     out.RoundScores,
	}

	p.TotalGamesPlayed++
	if out.Won {
		p.TotalGamesWon++
		p.TotalTimeSpent += out.TimeToComplete
		if p.FastestTime == nil || out.TimeToComplete < *p.FastestTime {
			p.FastestTime = lo.ToPtr(out.TimeToComplete)
		}
		p.SolveDistribution[ClampRound(out.RoundsCompleted)]++
	}
	RecomputeRates(p)

	UpdateStreaks(p, date, out.Difficulty, out.Won)
}

// RecomputeRates derives winPercentage and averageTimeToComplete from the totals.
func RecomputeRates(p *models.UserProgress) {
	p.WinPercentage = 0
	if p.TotalGamesPlayed > 0 {
		p.WinPercentage = float64(p.TotalGamesWon) / float64(p.TotalGamesPlayed)
	}
	p.AverageTimeToComplete = 0
	if p.TotalGamesWon > 0 {
		p.AverageTimeToComplete = float64(p.TotalTimeSpent) / float64(p.TotalGamesWon)
	}
}

// Backfill fills fields that records written by older versions lack.
func Backfill(p *models.UserProgress) {
	if p.SolveDistribution == nil {
		p.SolveDistribution = models.EmptyDistribution()
	}
	for r := 1; r <= models.MaxRounds; r++ {
		if _, ok := p.SolveDistribution[r]; !ok {
			p.SolveDistribution[r] = 0
		}
	}
	if p.Completions == nil {
		p.Completions = make(map[int]models.CompletionRecord)
	}
}

// SolveDistribution tallies won completions by round.
func SolveDistribution(completions map[int]models.CompletionRecord) map[int]int {
	dist := models.EmptyDistribution()
	for _, c := range completions {
		if c.Won {
			dist[ClampRound(c.RoundsCompleted)]++
		}
	}
	return dist
}

func distributionTotal(dist map[int]int) int {
	return lo.Sum(lo.Values(dist))
}

// RepairDistribution re-derives the solve distribution from the completion
// history. When the stored histogram disagrees with the history or with
// totalGamesWon, the derived one replaces it. If the win counter itself
// drifted, it and the won-game time totals are rebuilt from the history. It reports whether p changed. Running it twice is a no-op the
// second time.
func RepairDistribution(p *models.UserProgress) bool {
	Backfill(p)

	derived := SolveDistribution(p.Completions)
	derivedTotal := distributionTotal(derived)
	storedTotal := distributionTotal(p.SolveDistribution)

	if derivedTotal == storedTotal && storedTotal == p.TotalGamesWon {
		return false
	}

	p.SolveDistribution = derived
	if p.TotalGamesWon != derivedTotal {
		p.TotalGamesWon = derivedTotal
		p.TotalGamesPlayed = max(p.TotalGamesPlayed, p.TotalGamesWon)
		p.TotalTimeSpent, p.FastestTime = wonTimes(p.Completions)
		RecomputeRates(p)
	}
	return true
}

// wonTimes sums and minimizes timeToComplete over won completions.
func wonTimes(completions map[int]models.CompletionRecord) (int, *int) {
	total := 0
	var fastest *int
	for _, c := range completions {
		if !c.Won {
			continue
		}
		total += c.TimeToComplete
		if fastest == nil || c.TimeToComplete < *fastest {
			fastest = lo.ToPtr(c.TimeToComplete)
		}
	}
	return total, fastest
}

// WinPercent is winPercentage as a rounded whole percent.
func WinPercent(p *models.UserProgress) int {
	return int(math.Round(p.WinPercentage * 100))
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
