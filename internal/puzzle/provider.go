package puzzle

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/models"
)

// recentWindow is how many preceding days synthesis tries not to repeat items from.
const recentWindow = 10

// Provider resolves day numbers to playable puzzles.
type Provider struct {
	cal        *Calendar
	authored   map[int]models.Puzzle
	categories []Category
}

type ProviderOption func(*Provider)

// WithAuthored supplies admin-authored puzzles keyed by day number.
func WithAuthored(puzzles map[int]models.Puzzle) ProviderOption {
	return func(p *Provider) {
		p.authored = puzzles
	}
}

// WithCategories overrides the synthesis rotation.
func WithCategories(categories []Category) ProviderOption {
	return func(p *Provider) {
		p.categories = categories
	}
}

func NewProvider(cal *Calendar, opts ...ProviderOption) *Provider {
	p := &Provider{
		cal:        cal,
		authored:   map[int]models.Puzzle{},
		categories: DefaultCategories,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Calendar() *Calendar {
	return p.cal
}

// Authored returns the admin-authored puzzle for a day, if any.
func (p *Provider) Authored(dayNumber int) (models.Puzzle, bool) {
	pz, ok := p.authored[dayNumber]
	return pz, ok
}

// LoadPuzzle returns the authored puzzle for a day or synthesizes one.
// The result is always validated.
func (p *Provider) LoadPuzzle(ctx context.Context, dayNumber int) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle")

	if dayNumber < 1 {
		return nil, errors.NewInvalidPuzzleError(dayNumber, "day number must be at least 1")
	}

	pz, ok := p.authored[dayNumber]
	if ok {
		log.Debug("using authored puzzle for day %d", dayNumber)
		pz.DayNumber = dayNumber
		pz.Date = p.cal.DateForDayNumber(dayNumber)
		if len(pz.Difficulties) == 0 {
			pz.Difficulties = DefaultDifficulties()
		}
	} else {
		log.Debug("no authored puzzle for day %d, synthesizing", dayNumber)
		pz = p.Synthesize(dayNumber)
	}

	if err := Validate(pz); err != nil {
		log.Error("day %d puzzle rejected: %v", dayNumber, err)
		return nil, err
	}
	return &pz, nil
}

// LoadDaily loads a day's puzzle and projects it onto a difficulty.
func (p *Provider) LoadDaily(ctx context.Context, dayNumber int, difficulty models.Difficulty) (*models.DailyPuzzleView, error) {
	pz, err := p.LoadPuzzle(ctx, dayNumber)
	if err != nil {
		return nil, err
	}
	return View(pz, difficulty)
}

// Synthesize deterministically builds a puzzle from the category rotation,
// avoiding items from the preceding days' authored puzzles when the category
// still has enough left.
func (p *Provider) Synthesize(dayNumber int) models.Puzzle {
	cat := p.categories[((dayNumber-1)%len(p.categories)+len(p.categories))%len(p.categories)]

	recent := p.recentIdentities(dayNumber)
	available := lo.Filter(cat.Items, func(it models.Item, _ int) bool {
		_, used := recent[it.Identity()]
		return !used
	})
	if len(available) < models.PuzzleSize {
		available = cat.Items
	}

	answers := make(map[int]models.Item, models.PuzzleSize)
	if len(available) > 0 {
		for pos := 1; pos <= models.PuzzleSize; pos++ {
			answers[pos] = available[(pos-1)%len(available)]
		}
	}

	return models.Puzzle{
		DayNumber:    dayNumber,
		Date:         p.cal.DateForDayNumber(dayNumber),
		Category:     cat.Name,
		Answers:      answers,
		Difficulties: DefaultDifficulties(),
	}
}

func (p *Provider) recentIdentities(dayNumber int) map[string]struct{} {
	recent := map[string]struct{}{}
	for d := max(1, dayNumber-recentWindow); d < dayNumber; d++ {
		pz, ok := p.authored[d]
		if !ok {
			continue
		}
		for _, it := range pz.Answers {
			recent[it.Identity()] = struct{}{}
		}
	}
	return recent
}

// Validate requires exactly the answer positions 1..16, each non-empty.
func Validate(pz models.Puzzle) error {
	if len(pz.Answers) != models.PuzzleSize {
		return errors.NewInvalidPuzzleError(pz.DayNumber,
			fmt.Sprintf("expected %d answers, got %d", models.PuzzleSize, len(pz.Answers)))
	}
	for pos := 1; pos <= models.PuzzleSize; pos++ {
		it, ok := pz.Answers[pos]
		if !ok {
			return errors.NewInvalidPuzzleError(pz.DayNumber, fmt.Sprintf("missing answer %d", pos))
		}
		if it.IsEmpty() {
			return errors.NewInvalidPuzzleError(pz.DayNumber, fmt.Sprintf("answer %d is empty", pos))
		}
	}
	return nil
}

// View projects a puzzle onto a difficulty, in ascending position order.
func View(pz *models.Puzzle, difficulty models.Difficulty) (*models.DailyPuzzleView, error) {
	cfg, ok := pz.Difficulties[difficulty]
	if !ok {
		return nil, errors.NewInvalidPuzzleError(pz.DayNumber, fmt.Sprintf("no %s configuration", difficulty))
	}

	positions := append([]int(nil), cfg.Positions...)
	sort.Ints(positions)
	if len(positions) != cfg.NumTiles || len(lo.Uniq(positions)) != len(positions) {
		return nil, errors.NewInvalidPuzzleError(pz.DayNumber,
			fmt.Sprintf("%s lists %d distinct positions for %d tiles", difficulty, len(lo.Uniq(positions)), cfg.NumTiles))
	}

	view := &models.DailyPuzzleView{
		DayNumber:   pz.DayNumber,
		Date:        pz.Date,
		Category:    pz.Category,
		Difficulty:  difficulty,
		Items:       make([]models.Item, 0, len(positions)),
		Positions:   positions,
		RevealTime:  cfg.RevealTime,
		NumTiles:    cfg.NumTiles,
		TileMapping: make(map[int]int, len(positions)),
	}
	for idx, pos := range positions {
		it, ok := pz.Answers[pos]
		if !ok {
			return nil, errors.NewInvalidPuzzleError(pz.DayNumber, fmt.Sprintf("%s uses unknown position %d", difficulty, pos))
		}
		view.Items = append(view.Items, it)
		view.TileMapping[pos] = idx
	}
	return view, nil
}
