// Command validate lints the ruleset files in a configs directory. It checks:
//   - JSON or YAML structure and the name and description fields
//   - Layout shape and allowed characters ('#' and '.')
//   - That no row, column or block starts complete
//   - That layout and random_fill are not combined
//   - That every message is present with the right %d placeholders
//   - That a full 3x3 piece fits somewhere on a layout's starting board
//
// It exits non-zero when any ruleset is invalid.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/blockdoku/game/config"
	"github.com/wricardo/blockdoku/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// placeholders is the number of %d verbs each message needs
var placeholders = []struct {
	key   string
	verbs int
	text  func(engine.Messages) string
}{
	{"welcome", 0, func(m engine.Messages) string { return m.Welcome }},
	{"placed", 0, func(m engine.Messages) string { return m.Placed }},
	{"cleared", 2, func(m engine.Messages) string { return m.Cleared }},
	{"blocked", 0, func(m engine.Messages) string { return m.Blocked }},
	{"farewell", 1, func(m engine.Messages) string { return m.Farewell }},
}

// validateConfig loads and validates a single ruleset file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	cfg, err := engine.UnmarshalGameConfig(filePath, data)
	if err != nil {
		result.fail("Invalid %s: %v", strings.ToUpper(strings.TrimPrefix(filepath.Ext(filePath), ".")), err)
		return result
	}

	if cfg.Name == "" {
		result.fail("name is required")
	}
	if cfg.Description == "" {
		result.fail("description is required")
	}

	var board engine.Board
	if len(cfg.Layout) > 0 {
		if cfg.RandomFill {
			result.fail("layout and random_fill are mutually exclusive")
		}
		board = validateLayout(&result, cfg.Layout)
	}

	for _, p := range placeholders {
		text := p.text(cfg.Messages)
		if text == "" {
			result.fail("Missing required message: %s", p.key)
			continue
		}
		if got := strings.Count(text, "%d"); got != p.verbs {
			result.fail("Message %s must contain %d %%d placeholder(s), got %d", p.key, p.verbs, got)
		}
	}

	// the engine has the final word
	if result.Valid {
		if err := engine.ValidateGameConfig(cfg); err != nil {
			result.fail("%v", err)
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", cfg.Name))
		switch {
		case len(cfg.Layout) > 0:
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Start: layout, %d cells occupied", board.Occupied()))
		case cfg.RandomFill:
			result.Errors = append(result.Errors, "✓ Start: random fill")
		default:
			result.Errors = append(result.Errors, "✓ Start: empty board")
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Messages: %d", len(placeholders)))
	}

	return result
}

// validateLayout checks the layout grid and returns the parsed board. Every
// problem is reported, not just the first.
func validateLayout(result *ValidationResult, layout []string) engine.Board {
	var board engine.Board

	if len(layout) != engine.BoardSize {
		result.fail("Layout must have %d rows, got %d", engine.BoardSize, len(layout))
	}
	for y, row := range layout {
		if len(row) != engine.BoardSize {
			result.fail("Row %d must have %d characters, got %d", y+1, engine.BoardSize, len(row))
		}
		for x, char := range row {
			switch char {
			case engine.OccupiedChar:
				if y < engine.BoardSize && x < engine.BoardSize {
					board[y][x] = true
				}
			case engine.EmptyChar:
			default:
				result.fail("Invalid character '%c' at position [%d,%d]", char, y+1, x+1)
			}
		}
	}
	if !result.Valid {
		return board
	}

	for i := 0; i < engine.BoardSize; i++ {
		if board.RowFull(i) {
			result.fail("Row %d starts complete", i)
		}
		if board.ColumnFull(i) {
			result.fail("Column %d starts complete", i)
		}
		if board.BlockFull(i) {
			result.fail("Block %d starts complete", i)
		}
	}

	if result.Valid && !fitsFullPiece(board) {
		result.fail("A full 3x3 piece fits nowhere on the starting board")
	}
	return board
}

func fitsFullPiece(board engine.Board) bool {
	var solid engine.Mask
	for y := range solid {
		for x := range solid[y] {
			solid[y][x] = true
		}
	}
	for y := 0; y <= engine.MaxOffset; y++ {
		for x := 0; x <= engine.MaxOffset; x++ {
			if board.Fits(engine.Piece{Position: engine.Position{X: x, Y: y}, Mask: solid}) {
				return true
			}
		}
	}
	return false
}

// validateDir validates every ruleset in dir and prints a report to w. It
// returns false when any ruleset is invalid.
func validateDir(w io.Writer, dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}

	allValid := true
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !slices.Contains(config.Extensions, ext) {
			continue
		}
		result := validateConfig(filepath.Join(dir, entry.Name()))

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid, nil
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "lint the rulesets in a configs directory",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = "../configs"
			}
			ok, err := validateDir(cmd.Root().Writer, dir)
			if err != nil {
				return err
			}
			if !ok {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
