package stats

import (
	"sort"

	"github.com/samber/lo"
	"github.com/vytor/hippomemory/internal/models"
	"github.com/vytor/hippomemory/internal/puzzle"
)

// UpdateStreaks advances the streak counters for a game played on today.
// A second call for the same date only refreshes lastPlayedDifficulty.
func UpdateStreaks(p *models.UserProgress, today string, difficulty models.Difficulty, won bool) {
	if p.LastPlayedDate != today {
		broken := false
		if p.LastPlayedDate != "" {
			gap, err := puzzle.DaysBetween(p.LastPlayedDate, today)
			broken = err != nil || gap > 1
		}

		switch {
		case broken:
			p.AttemptStreak = 1
			p.WinStreak = 0
			if won {
				p.WinStreak = 1
			}
		default:
			p.AttemptStreak++
			if won {
				p.WinStreak++
			} else {
				p.WinStreak = 0
			}
		}
	}

	p.LongestStreak = max(p.LongestStreak, p.AttemptStreak)
	p.LastPlayedDate = today
	p.LastPlayedDifficulty = difficulty
}

// RecalculateStreaks walks back day by day from fromDay while completions
// exist. Every completed day extends the attempt streak; wins count toward
// the win streak until the first loss.
func RecalculateStreaks(p *models.UserProgress, fromDay int) {
	attempt, win := 0, 0
	winning := true
	for d := fromDay; d >= 1; d-- {
		rec, ok := p.Completions[d]
		if !ok || !rec.Completed {
			break
		}
		attempt++
		if winning && rec.Won {
			win++
		} else {
			winning = false
		}
	}
	p.AttemptStreak = attempt
	p.WinStreak = win
}

// RevertDay removes one day's contribution from p. today is the calendar
// date of dayNumber. It reports false, leaving p untouched, when the day has
// neither a completion nor the in-progress snapshot.
func RevertDay(p *models.UserProgress, dayNumber int, today string) bool {
	Backfill(p)

	rec, completed := p.Completions[dayNumber]
	inProgress := p.InProgress != nil && p.InProgress.DayNumber == dayNumber
	if !completed && !inProgress {
		return false
	}

	if completed {
		p.TotalGamesPlayed = max(0, p.TotalGamesPlayed-1)
		if rec.Won {
			p.TotalGamesWon = max(0, p.TotalGamesWon-1)
			p.TotalTimeSpent = max(0, p.TotalTimeSpent-rec.TimeToComplete)
			r := ClampRound(rec.RoundsCompleted)
			p.SolveDistribution[r] = max(0, p.SolveDistribution[r]-1)
			if p.FastestTime != nil && *p.FastestTime == rec.TimeToComplete {
				p.FastestTime = fastestExcept(p.Completions, dayNumber)
			}
		}
		RecomputeRates(p)

		if p.LastPlayedDate == today {
			rewindStreaks(p, dayNumber, today)
		}

		delete(p.Completions, dayNumber)
	}

	p.InProgress = nil
	p.LastPlayedDifficulty = ""
	if latest, ok := latestCompletion(p.Completions); ok {
		p.LastPlayedDifficulty = latest.Difficulty
	}
	return true
}

func rewindStreaks(p *models.UserProgress, dayNumber int, today string) {
	earlier := lo.Filter(lo.Keys(p.Completions), func(d int, _ int) bool { return d < dayNumber })
	if len(earlier) == 0 {
		p.AttemptStreak = 0
		p.WinStreak = 0
		p.LastPlayedDate = ""
		return
	}

	prevDay := lo.Max(earlier)
	prev := p.Completions[prevDay]
	if gap, err := puzzle.DaysBetween(prev.Date, today); err != nil || gap > 1 {
		p.AttemptStreak = 0
		p.WinStreak = 0
	} else {
		RecalculateStreaks(p, prevDay)
	}
	p.LastPlayedDate = prev.Date
}

func fastestExcept(completions map[int]models.CompletionRecord, dayNumber int) *int {
	var fastest *int
	for d, c := range completions {
		if d == dayNumber || !c.Won {
			continue
		}
		if fastest == nil || c.TimeToComplete < *fastest {
			fastest = lo.ToPtr(c.TimeToComplete)
		}
	}
	return fastest
}

func latestCompletion(completions map[int]models.CompletionRecord) (models.CompletionRecord, bool) {
	if len(completions) == 0 {
		return models.CompletionRecord{}, false
	}
	days := lo.Keys(completions)
	sort.Sort(sort.Reverse(sort.IntSlice(days)))
	return completions[days[0]], true
}
