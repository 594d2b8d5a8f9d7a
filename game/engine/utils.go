package engine

// BlockOrigin returns the top-left cell (x, y) of block b, blocks numbered
// row-major from 0 to 8.
func BlockOrigin(b int) (x, y int) {
	return (b % BlockSize) * BlockSize, (b / BlockSize) * BlockSize
}

// BlockIndex returns the block containing board cell (x, y)
func BlockIndex(x, y int) int {
	return (y/BlockSize)*BlockSize + x/BlockSize
}

// RowFull reports whether every cell of row y is occupied
func (b *Board) RowFull(y int) bool {
	for x := 0; x < BoardSize; x++ {
		if !b[y][x] {
			return false
		}
	}
	return true
}

// ColumnFull reports whether every cell of column x is occupied
func (b *Board) ColumnFull(x int) bool {
	for y := 0; y < BoardSize; y++ {
		if !b[y][x] {
			return false
		}
	}
	return true
}

// BlockFull reports whether every cell of block n is occupied
func (b *Board) BlockFull(n int) bool {
	ox, oy := BlockOrigin(n)
	for y := oy; y < oy+BlockSize; y++ {
		for x := ox; x < ox+BlockSize; x++ {
			if !b[y][x] {
				return false
			}
		}
	}
	return true
}

func (b *Board) clearRow(y int) {
	for x := 0; x < BoardSize; x++ {
		b[y][x] = false
	}
}

func (b *Board) clearColumn(x int) {
	for y := 0; y < BoardSize; y++ {
		b[y][x] = false
	}
}

func (b *Board) clearBlock(n int) {
	ox, oy := BlockOrigin(n)
	for y := oy; y < oy+BlockSize; y++ {
		for x := ox; x < ox+BlockSize; x++ {
			b[y][x] = false
		}
	}
}

// Occupied returns the number of occupied board cells
func (b Board) Occupied() int {
	count := 0
	for _, row := range b {
		for _, filled := range row {
			if filled {
				count++
			}
		}
	}
	return count
}

// Fits reports whether every occupied mask cell of p lands on an empty cell.
// The piece offset must already be clamped to [0, MaxOffset].
func (b Board) Fits(p Piece) bool {
	for dy := 0; dy < PieceSize; dy++ {
		for dx := 0; dx < PieceSize; dx++ {
			if !p.Mask[dy][dx] {
				continue
			}
			if b[p.Y+dy][p.X+dx] {
				return false
			}
		}
	}
	return true
}

// Apply stamps p onto a copy of the board and runs the clear passes: columns
// (constant x), then rows (constant y), then blocks, each against the result
// of the previous pass.
// The caller is responsible for checking Fits first.
func (b Board) Apply(p Piece) (Board, ClearReport) {
	next := b
	for dy := 0; dy < PieceSize; dy++ {
		for dx := 0; dx < PieceSize; dx++ {
			if p.Mask[dy][dx] {
				next[p.Y+dy][p.X+dx] = true
			}
		}
	}

	report := next.clearFull()
	return next, report
}

// clearFull clears every complete column, row and block in pass order
func (b *Board) clearFull() ClearReport {
	var report ClearReport

	for x := 0; x < BoardSize; x++ {
		if b.ColumnFull(x) {
			b.clearColumn(x)
			report.Columns = append(report.Columns, x)
			report.Awarded += ClearAward
		}
	}

	for y := 0; y < BoardSize; y++ {
		if b.RowFull(y) {
			b.clearRow(y)
			report.Rows = append(report.Rows, y)
			report.Awarded += ClearAward
		}
	}

	for n := 0; n < BoardSize; n++ {
		if b.BlockFull(n) {
			b.clearBlock(n)
			report.Blocks = append(report.Blocks, n)
			report.Awarded += ClearAward
		}
	}

	return report
}

// HasFullRegion reports whether any row, column or block is complete
func (b Board) HasFullRegion() bool {
	for i := 0; i < BoardSize; i++ {
		if b.RowFull(i) || b.ColumnFull(i) || b.BlockFull(i) {
			return true
		}
	}
	return false
}

func clampOffset(v int) int {
	return max(0, min(MaxOffset, v))
}
