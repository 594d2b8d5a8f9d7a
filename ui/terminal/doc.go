// Package terminal draws a game on a tcell screen and turns key presses into
// engine calls.
//
// The board is centred on the screen with every cell drawn as a 5x3 box:
// blue for occupied cells and grey for empty ones. The active piece is drawn
// as a glyph in the middle of each covered cell, green when it can be placed
// and red when it cannot. A status line under the board shows the score and
// the latest message from the ruleset.
//
// Controls:
//
//	arrows / w a s d   move the piece
//	Enter              place the piece
//	Esc / Ctrl-C       quit
//
// App.Run owns the screen for its whole lifetime and always finalises it
// before returning, so callers can print to the restored terminal afterwards.
package terminal
