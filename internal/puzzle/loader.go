package puzzle

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vytor/hippomemory/internal/models"
)

// LoadFile reads an authoring file: a mapping from day-number string to
// puzzle, as JSON or (by .yaml/.yml extension) YAML.
func LoadFile(path string) (map[int]models.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read puzzles: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

func ParseJSON(data []byte) (map[int]models.Puzzle, error) {
	var raw map[string]models.Puzzle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode puzzles: %w", err)
	}
	return byDayNumber(raw)
}

func ParseYAML(data []byte) (map[int]models.Puzzle, error) {
	var raw map[string]models.Puzzle
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode puzzles: %w", err)
	}
	return byDayNumber(raw)
}

func byDayNumber(raw map[string]models.Puzzle) (map[int]models.Puzzle, error) {
	out := make(map[int]models.Puzzle, len(raw))
	for key, pz := range raw {
		day, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || day < 1 {
			return nil, fmt.Errorf("puzzle key %q is not a day number", key)
		}
		pz.DayNumber = day
		out[day] = pz
	}
	return out, nil
}
