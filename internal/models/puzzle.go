package models

import (
	"strings"

	"github.com/vytor/hippomemory/internal/errors"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every difficulty in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	return string(d)
}

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// ParseDifficulty accepts a difficulty name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", errors.NewValidationError("difficulty", "must be easy, medium, or hard")
	}
	return d, nil
}

// MaxRounds is the number of recall attempts a player gets per day.
const MaxRounds = 4

// PuzzleSize is the number of answer positions every puzzle carries.
const PuzzleSize = 16

type DifficultyConfig struct {
	NumTiles   int   `json:"numTiles" yaml:"numTiles"`
	RevealTime int   `json:"revealTime" yaml:"revealTime"` // seconds
	Positions  []int `json:"positions" yaml:"positions"`
}

type Puzzle struct {
	DayNumber    int                             `json:"dayNumber" yaml:"dayNumber"`
	Date         string                          `json:"date" yaml:"date"`
	Category     string                          `json:"category" yaml:"category"`
	Answers      map[int]Item                    `json:"answers" yaml:"answers"`
	Difficulties map[Difficulty]DifficultyConfig `json:"difficulties" yaml:"difficulties"`
}

// DailyPuzzleView is a Puzzle projected onto one difficulty.
type DailyPuzzleView struct {
	DayNumber   int         `json:"dayNumber"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Difficulty  Difficulty  `json:"difficulty"`
	Items       []Item      `json:"items"`
	Positions   []int       `json:"positions"`
	RevealTime  int         `json:"revealTime"`
	NumTiles    int         `json:"numTiles"`
	TileMapping map[int]int `json:"tileMapping"` // position -> tile index
}
