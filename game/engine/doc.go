// Package engine provides the core game logic for Blockdoku.
//
// The engine package implements the game mechanics including:
//   - The 9x9 occupancy board and the active 3x3 piece
//   - Clamped piece movement and placement legality
//   - Column, row and block clearing with scoring
//   - Piece generation from an injected random source
//   - Ruleset loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is a read-only snapshot handed to
// renderers, while GameConfig defines a ruleset loaded from JSON or YAML.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig(), engine.NewRandomSource(0))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.Shift(engine.Right)
//	if report, placed := gameEngine.Place(); placed {
//		fmt.Println("cleared", report.Regions(), "regions")
//	}
//	state := gameEngine.GetState()
//
// Game Rules:
//
// The player moves a random 3x3 piece over the board and places it where
// none of its cells overlap placed cells. After a placement every full column
// is cleared, then every full row, then every full 3x3 block, each pass
// seeing the result of the previous one. Every cleared region scores 9
// points. The engine performs no I/O and never detects a stuck game; a
// piece with no legal position simply cannot be placed.
package engine
