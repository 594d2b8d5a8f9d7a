package autoplay

import (
	"github.com/wricardo/blockdoku/game/engine"
)

// DefaultMaxTurns bounds Play when no limit is given. Empty pieces always fit,
// so a game is not guaranteed to get stuck.
const DefaultMaxTurns = 1000

// Turn describes one placement made by Play
type Turn struct {
	Number  int
	Target  engine.Position
	Shifts  int
	Cleared engine.ClearReport
	Score   uint64
}

// Result summarises a Play run
type Result struct {
	Turns    int    `json:"turns"`
	Score    uint64 `json:"score"`
	Regions  int    `json:"regions"`
	Stuck    bool   `json:"stuck"`
	Refusals int    `json:"refusals"` // placements the engine rejected
}

// Play drives e with strategy until the piece fits nowhere or maxTurns
// placements were made. observe, when set, is called after every placement.
func Play(e engine.Engine, strategy Strategy, maxTurns int, observe func(Turn)) Result {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	var res Result
	for res.Turns < maxTurns {
		target, dirs, ok := strategy.Plan(e.GetState())
		if !ok {
			res.Stuck = true
			break
		}

		for _, dir := range dirs {
			e.Shift(dir)
		}

		report, placed := e.Place()
		if !placed {
			// the plan did not match the engine; give up rather than spin
			res.Refusals++
			break
		}

		res.Turns++
		res.Regions += report.Regions()
		res.Score = e.GetScore()

		if observe != nil {
			observe(Turn{
				Number:  res.Turns,
				Target:  target,
				Shifts:  len(dirs),
				Cleared: report,
				Score:   res.Score,
			})
		}
	}
	res.Score = e.GetScore()
	return res
}
