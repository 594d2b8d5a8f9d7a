package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfig represents a ruleset loaded from JSON or YAML
type GameConfig struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Layout      []string `json:"layout,omitempty" yaml:"layout,omitempty"`
	RandomFill  bool     `json:"random_fill,omitempty" yaml:"random_fill,omitempty"`
	Messages    Messages `json:"messages" yaml:"messages"`
}

// Messages are the texts shown by front ends
type Messages struct {
	Welcome  string `json:"welcome" yaml:"welcome"`
	Placed   string `json:"placed" yaml:"placed"`
	Cleared  string `json:"cleared" yaml:"cleared"`   // %d regions, %d points
	Blocked  string `json:"blocked" yaml:"blocked"`   // placement attempted on an illegal position
	Farewell string `json:"farewell" yaml:"farewell"` // %d final score
}

// ValidateGameConfig validates a ruleset for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if len(config.Layout) > 0 {
		if config.RandomFill {
			return fmt.Errorf("config validation: layout and random_fill are mutually exclusive")
		}
		board, err := ParseLayout(config.Layout)
		if err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		if board.HasFullRegion() {
			return fmt.Errorf("config validation: layout must not contain a complete row, column or block")
		}
	}

	if config.Messages.Cleared != "" && strings.Count(config.Messages.Cleared, "%d") != 2 {
		return fmt.Errorf("config validation: messages.cleared must contain %%d for regions and %%d for points")
	}
	if config.Messages.Farewell != "" && !strings.Contains(config.Messages.Farewell, "%d") {
		return fmt.Errorf("config validation: messages.farewell must contain %%d for score")
	}

	return nil
}

// ParseLayout converts 9 rows of '#' and '.' into a board
func ParseLayout(layout []string) (Board, error) {
	var board Board
	if len(layout) != BoardSize {
		return board, fmt.Errorf("layout must have %d rows, got %d", BoardSize, len(layout))
	}
	for y, row := range layout {
		if len(row) != BoardSize {
			return board, fmt.Errorf("row %d must have %d characters, got %d", y+1, BoardSize, len(row))
		}
		for x, char := range row {
			switch char {
			case OccupiedChar:
				board[y][x] = true
			case EmptyChar:
			default:
				return board, fmt.Errorf("invalid character '%c' at row %d, col %d", char, y+1, x+1)
			}
		}
	}
	return board, nil
}

// UnmarshalGameConfig decodes a ruleset, choosing YAML or JSON by file extension
func UnmarshalGameConfig(filename string, data []byte) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}
	return &config, nil
}

// LoadGameConfig loads and validates a ruleset from a JSON or YAML file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := UnmarshalGameConfig(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filename, err)
	}

	return config, nil
}

// DefaultGameConfig returns the built-in classic ruleset: empty board, standard messages
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Empty board, random 3x3 pieces, rows, columns and blocks clear for 9 points each",
		Messages: Messages{
			Welcome:  "Move with arrows or WASD, Enter places, Esc quits",
			Placed:   "Placed",
			Cleared:  "Cleared %d region(s)! +%d",
			Blocked:  "Can't place there!",
			Farewell: "You've got %d points!",
		},
	}
}

// InitBoardFromConfig builds the starting board for a ruleset. With
// random_fill each cell is occupied with probability 1/2 and any complete
// region is then cleared without score.
func InitBoardFromConfig(config *GameConfig, src RandomSource) Board {
	var board Board
	switch {
	case config == nil:
	case len(config.Layout) > 0:
		// validated on load
		board, _ = ParseLayout(config.Layout)
	case config.RandomFill:
		for y := 0; y < BoardSize; y++ {
			for x := 0; x < BoardSize; x++ {
				board[y][x] = src.Intn(2) == 0
			}
		}
		board.clearFull()
	}
	return board
}
