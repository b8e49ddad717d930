package puzzle_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/models"
	"github.com/vytor/hippomemory/internal/puzzle"
)

func newProvider(opts ...puzzle.ProviderOption) *puzzle.Provider {
	return puzzle.NewProvider(puzzle.MustCalendar(puzzle.DefaultEpoch, time.UTC), opts...)
}

func labels(prefix string, n int) []models.Item {
	return lo.Times(n, func(i int) models.Item {
		return models.TextItem(fmt.Sprintf("%s%d", prefix, i+1))
	})
}

func answersOf(items []models.Item) map[int]models.Item {
	answers := make(map[int]models.Item, len(items))
	for i, it := range items {
		answers[i+1] = it
	}
	return answers
}

func TestSynthesize_CategoryRotation(t *testing.T) {
	p := newProvider()

	day1 := p.Synthesize(1)
	day9 := p.Synthesize(9)
	day2 := p.Synthesize(2)

	assert.Equal(t, "Fruits", day1.Category)
	assert.Equal(t, "Fruits", day9.Category)
	assert.Equal(t, "Animals", day2.Category)
	assert.Equal(t, "Apple", day1.Answers[1].Identity())
	assert.Equal(t, "Lime", day1.Answers[16].Identity())
	assert.Equal(t, "2026-01-28", day9.Date)
	assert.NoError(t, puzzle.Validate(day1))
}

func TestSynthesize_Deterministic(t *testing.T) {
	authored := map[int]models.Puzzle{
		3: {Answers: answersOf(labels("A", 16))},
	}
	p := newProvider(puzzle.WithAuthored(authored))

	assert.Equal(t, p.Synthesize(12), p.Synthesize(12))
	assert.Equal(t, p.Synthesize(40), p.Synthesize(40))
}

func TestSynthesize_AvoidsRecentItems(t *testing.T) {
	pool := labels("W", 20)
	recent := models.Puzzle{Answers: answersOf(append(pool[:4:4], labels("X", 12)...))}
	p := newProvider(
		puzzle.WithCategories([]puzzle.Category{{Name: "Words", Items: pool}}),
		puzzle.WithAuthored(map[int]models.Puzzle{5: recent}),
	)

	pz := p.Synthesize(6)

	for pos := 1; pos <= 16; pos++ {
		assert.Equal(t, pool[pos+3].Identity(), pz.Answers[pos].Identity(), "position %d", pos)
	}
}

func TestSynthesize_RecentWindowIsTenDays(t *testing.T) {
	pool := labels("W", 20)
	old := models.Puzzle{Answers: answersOf(append(pool[:4:4], labels("X", 12)...))}
	p := newProvider(
		puzzle.WithCategories([]puzzle.Category{{Name: "Words", Items: pool}}),
		puzzle.WithAuthored(map[int]models.Puzzle{1: old}),
	)

	assert.Equal(t, "W5", p.Synthesize(11).Answers[1].Identity())
	assert.Equal(t, "W1", p.Synthesize(12).Answers[1].Identity())
}

func TestSynthesize_FallsBackToFullCategory(t *testing.T) {
	fruits := puzzle.DefaultCategories[0].Items
	recent := models.Puzzle{Answers: answersOf(append(fruits[:1:1], labels("X", 15)...))}
	p := newProvider(puzzle.WithAuthored(map[int]models.Puzzle{8: recent}))

	pz := p.Synthesize(9)

	assert.Equal(t, "Apple", pz.Answers[1].Identity())
	assert.Len(t, pz.Answers, 16)
}

func TestSynthesize_CyclesShortCategory(t *testing.T) {
	p := newProvider(puzzle.WithCategories([]puzzle.Category{{Name: "Tiny", Items: labels("T", 5)}}))

	pz := p.Synthesize(1)

	require.NoError(t, puzzle.Validate(pz))
	assert.Equal(t, "T1", pz.Answers[6].Identity())
	assert.Equal(t, "T1", pz.Answers[16].Identity())
	assert.Equal(t, "T5", pz.Answers[15].Identity())
}

func TestValidate(t *testing.T) {
	good := answersOf(labels("V", 16))

	tests := []struct {
		name    string
		answers map[int]models.Item
		wantErr bool
	}{
		{name: "complete", answers: good},
		{name: "fifteen answers", answers: lo.OmitByKeys(good, []int{16}), wantErr: true},
		{name: "wrong key", answers: lo.Assign(lo.OmitByKeys(good, []int{16}), map[int]models.Item{17: models.TextItem("x")}), wantErr: true},
		{name: "empty answer", answers: lo.Assign(good, map[int]models.Item{4: models.TextItem("")}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := puzzle.Validate(models.Puzzle{DayNumber: 3, Answers: tt.answers})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidPuzzle), "got %v", err)
		})
	}
}

func TestLoadPuzzle_RejectsInvalidAuthored(t *testing.T) {
	p := newProvider(puzzle.WithAuthored(map[int]models.Puzzle{
		2: {Category: "Broken", Answers: answersOf(labels("B", 10))},
	}))

	_, err := p.LoadPuzzle(context.Background(), 2)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidPuzzle))

	_, err = p.LoadPuzzle(context.Background(), 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidPuzzle))
}

func TestLoadPuzzle_AuthoredGetsDateAndDefaults(t *testing.T) {
	p := newProvider(puzzle.WithAuthored(map[int]models.Puzzle{
		4: {Category: "Space", Answers: answersOf(labels("S", 16))},
	}))

	pz, err := p.LoadPuzzle(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, "Space", pz.Category)
	assert.Equal(t, "2026-01-23", pz.Date)
	assert.Equal(t, 180, pz.Difficulties[models.Easy].RevealTime)
}

func TestView_ProjectsInPositionOrder(t *testing.T) {
	pz := &models.Puzzle{
		DayNumber: 1,
		Answers:   answersOf(labels("P", 16)),
		Difficulties: map[models.Difficulty]models.DifficultyConfig{
			models.Easy: {NumTiles: 3, RevealTime: 30, Positions: []int{9, 2, 5}},
		},
	}

	view, err := puzzle.View(pz, models.Easy)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 5, 9}, view.Positions)
	assert.Equal(t, []string{"P2", "P5", "P9"}, lo.Map(view.Items, func(it models.Item, _ int) string { return it.Identity() }))
	assert.Equal(t, map[int]int{2: 0, 5: 1, 9: 2}, view.TileMapping)
	assert.Equal(t, 3, view.NumTiles)

	_, err = puzzle.View(pz, models.Hard)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidPuzzle))
}

func TestLoadDaily_DefaultDifficulties(t *testing.T) {
	p := newProvider()

	easy, err := p.LoadDaily(context.Background(), 1, models.Easy)
	require.NoError(t, err)
	medium, err := p.LoadDaily(context.Background(), 1, models.Medium)
	require.NoError(t, err)
	hard, err := p.LoadDaily(context.Background(), 1, models.Hard)
	require.NoError(t, err)

	assert.Equal(t, 12, easy.NumTiles)
	assert.Equal(t, 180, easy.RevealTime)
	assert.Len(t, easy.Items, 12)
	assert.Equal(t, 16, medium.NumTiles)
	assert.Equal(t, 90, medium.RevealTime)
	assert.Equal(t, 45, hard.RevealTime)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "puzzles.json")
	jsonBody := `{"7": {"category": "Mixed", "answers": {` +
		`"1":"a","2":"b","3":"c","4":"d","5":"e","6":"f","7":"g","8":"h",` +
		`"9":"i","10":"j","11":"k","12":"l","13":"m","14":"n","15":"o","16":{"url":"/p.png","name":"p"}}}}`
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonBody), 0o644))

	puzzles, err := puzzle.LoadFile(jsonPath)
	require.NoError(t, err)
	require.Contains(t, puzzles, 7)
	assert.Equal(t, 7, puzzles[7].DayNumber)
	assert.True(t, puzzles[7].Answers[16].IsImage())
	assert.NoError(t, puzzle.Validate(puzzles[7]))

	yamlPath := filepath.Join(dir, "puzzles.yaml")
	yamlBody := "3:\n  category: Short\n  answers:\n    1: one\n    2:\n      url: /two.png\n      name: two\n"
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlBody), 0o644))

	puzzles, err = puzzle.LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Short", puzzles[3].Category)
	assert.Equal(t, "two", puzzles[3].Answers[2].Identity())

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"tomorrow": {}}`), 0o644))
	_, err = puzzle.LoadFile(badPath)
	assert.Error(t, err)
}
