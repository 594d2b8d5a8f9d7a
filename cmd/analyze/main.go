// Command analyze prints quick, human-readable heuristics about the rulesets
// in a configs directory: how the starting board looks, where a full 3x3
// piece still fits, which regions are close to clearing, and how the greedy
// autoplayer fares over a few seeded games.
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

	"github.com/wricardo/blockdoku/game/autoplay"
	"github.com/wricardo/blockdoku/game/config"
	"github.com/wricardo/blockdoku/game/engine"
)

// nearlyFull is the number of empty cells at or below which a region is
// reported as one piece away from clearing
const nearlyFull = engine.PieceSize

// Options controls the autoplay sample
type Options struct {
	Games int
	Turns int
}

// Region names one row, column or block
type Region struct {
	Kind  string
	Index int
	Empty int
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "summarise the rulesets in a configs directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "configs", Usage: "directory containing rulesets"},
			&cli.IntFlag{Name: "games", Value: 5, Usage: "greedy games per ruleset"},
			&cli.IntFlag{Name: "turns", Value: 200, Usage: "maximum placements per game"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return analyzeDir(cmd.Root().Writer, cmd.String("dir"), Options{
				Games: cmd.Int("games"),
				Turns: cmd.Int("turns"),
			})
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

// rulesetFiles lists the ruleset files in dir, sorted by name
func rulesetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !slices.Contains(config.Extensions, ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(files)
	return files, nil
}

func analyzeDir(w io.Writer, dir string, opts Options) error {
	files, err := rulesetFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No rulesets in %s\n", dir)
		return nil
	}

	for _, path := range files {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", filepath.Base(path))
		cfg, err := engine.LoadGameConfig(path)
		if err != nil {
			fmt.Fprintf(w, "❌ %v\n", err)
			continue
		}
		analyzeRuleset(w, cfg, opts)
	}
	return nil
}

func analyzeRuleset(w io.Writer, cfg *engine.GameConfig, opts Options) {
	fmt.Fprintf(w, "Name: %s\n", cfg.Name)
	fmt.Fprintf(w, "Description: %s\n", cfg.Description)

	// seed 1 gives a representative random fill
	board := engine.InitBoardFromConfig(cfg, engine.NewRandomSource(1))
	switch {
	case len(cfg.Layout) > 0:
		fmt.Fprintf(w, "Start: layout, %d of %d cells occupied\n", board.Occupied(), engine.BoardSize*engine.BoardSize)
	case cfg.RandomFill:
		fmt.Fprintf(w, "Start: random fill, %d of %d cells occupied (seed 1)\n", board.Occupied(), engine.BoardSize*engine.BoardSize)
	default:
		fmt.Fprintln(w, "Start: empty board")
	}

	if spots := fullPieceSpots(board); spots == 0 {
		fmt.Fprintln(w, "⚠️  WARNING: a full 3x3 piece fits nowhere on the starting board")
	} else {
		fmt.Fprintf(w, "✅ A full 3x3 piece fits at %d of %d offsets\n", spots, (engine.MaxOffset+1)*(engine.MaxOffset+1))
	}

	if regions := nearlyFullRegions(board); len(regions) > 0 {
		fmt.Fprintf(w, "Regions one piece from clearing: %d\n", len(regions))
		for i, r := range regions {
			if i == 5 {
				fmt.Fprintf(w, "   ... and %d more\n", len(regions)-5)
				break
			}
			fmt.Fprintf(w, "   %s %d (%d empty)\n", r.Kind, r.Index, r.Empty)
		}
	}

	if opts.Games <= 0 {
		return
	}
	var total uint64
	stuck := 0
	for seed := int64(1); seed <= int64(opts.Games); seed++ {
		eng, err := engine.NewEngine(cfg, engine.NewRandomSource(seed))
		if err != nil {
			fmt.Fprintf(w, "❌ %v\n", err)
			return
		}
		res := autoplay.Play(eng, autoplay.Greedy{}, opts.Turns, nil)
		total += res.Score
		if res.Stuck {
			stuck++
		}
	}
	fmt.Fprintf(w, "Greedy: average score %.1f over %d game(s), %d stuck before %d turns\n",
		float64(total)/float64(opts.Games), opts.Games, stuck, opts.Turns)
}

// fullPieceSpots counts the offsets where a solid 3x3 piece fits
func fullPieceSpots(board engine.Board) int {
	var solid engine.Mask
	for y := range solid {
		for x := range solid[y] {
			solid[y][x] = true
		}
	}

	count := 0
	for y := 0; y <= engine.MaxOffset; y++ {
		for x := 0; x <= engine.MaxOffset; x++ {
			if board.Fits(engine.Piece{Position: engine.Position{X: x, Y: y}, Mask: solid}) {
				count++
			}
		}
	}
	return count
}

// nearlyFullRegions returns the partly filled regions with at most nearlyFull empty cells
func nearlyFullRegions(board engine.Board) []Region {
	var regions []Region
	add := func(kind string, index, empty int) {
		if empty > 0 && empty <= nearlyFull {
			regions = append(regions, Region{Kind: kind, Index: index, Empty: empty})
		}
	}

	for i := 0; i < engine.BoardSize; i++ {
		rowEmpty, colEmpty := 0, 0
		for j := 0; j < engine.BoardSize; j++ {
			if !board[i][j] {
				rowEmpty++
			}
			if !board[j][i] {
				colEmpty++
			}
		}
		add("row", i, rowEmpty)
		add("column", i, colEmpty)
	}

	for n := 0; n < engine.BoardSize; n++ {
		ox, oy := engine.BlockOrigin(n)
		empty := 0
		for y := oy; y < oy+engine.BlockSize; y++ {
			for x := ox; x < ox+engine.BlockSize; x++ {
				if !board[y][x] {
					empty++
				}
			}
		}
		add("block", n, empty)
	}
	return regions
}
