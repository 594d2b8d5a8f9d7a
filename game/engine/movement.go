package engine

// Shift moves the active piece one cell in the given direction. The offset
// is clamped to [0, MaxOffset]; occupancy is not checked so a piece may be
// moved over placed cells.
func (e *GameEngine) Shift(dir Direction) {
	switch dir {
	case Up:
		e.piece.Y = clampOffset(e.piece.Y - 1)
	case Down:
		e.piece.Y = clampOffset(e.piece.Y + 1)
	case Left:
		e.piece.X = clampOffset(e.piece.X - 1)
	case Right:
		e.piece.X = clampOffset(e.piece.X + 1)
	}
}

// IsLegal reports whether the active piece can be placed where it is
func (e *GameEngine) IsLegal() bool {
	return e.board.Fits(e.piece)
}

// Place commits the active piece. It is a no-op returning false when the
// position is illegal. Otherwise the board is updated, full regions are
// cleared and scored, and a fresh piece replaces the active one.
func (e *GameEngine) Place() (ClearReport, bool) {
	if !e.IsLegal() {
		return ClearReport{}, false
	}

	next, report := e.board.Apply(e.piece)
	e.board = next
	e.score += report.Awarded
	e.piece = e.generator.Generate()

	return report, true
}
