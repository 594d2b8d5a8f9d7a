package autoplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockdoku/game/engine"
)

func TestPlay_StopsAtMaxTurns(t *testing.T) {
	// 1 never draws an occupied mask cell, so every piece is empty and fits
	e, err := engine.NewEngine(engine.DefaultGameConfig(), constSource(1))
	require.NoError(t, err)

	var observed []Turn
	res := Play(e, Greedy{}, 25, func(turn Turn) { observed = append(observed, turn) })

	assert.Equal(t, 25, res.Turns)
	assert.False(t, res.Stuck)
	assert.Zero(t, res.Score)
	assert.Len(t, observed, 25)
	assert.Equal(t, 25, observed[24].Number)
}

func TestPlay_DetectsStuck(t *testing.T) {
	config := engine.DefaultGameConfig()
	config.Layout = blocked(t).Rows()

	// 0 always draws occupied cells, so every piece is a full 3x3
	e, err := engine.NewEngine(config, constSource(0))
	require.NoError(t, err)

	res := Play(e, Greedy{}, 10, nil)

	assert.True(t, res.Stuck)
	assert.Zero(t, res.Turns)
	assert.Equal(t, config.Layout, e.GetBoard().Rows(), "a stuck game is left untouched")
}

func TestPlay_FullPiecesClearBlocks(t *testing.T) {
	e, err := engine.NewEngine(engine.DefaultGameConfig(), constSource(0))
	require.NoError(t, err)

	res := Play(e, Greedy{}, 3, nil)

	// every full piece fills a whole block and clears it on its own
	require.Equal(t, 3, res.Turns)
	assert.Equal(t, uint64(27), res.Score)
	assert.Equal(t, 3, res.Regions)
	assert.Equal(t, engine.Board{}, e.GetBoard())
}

func TestPlay_SeededGameInvariants(t *testing.T) {
	e, err := engine.NewEngine(engine.DefaultGameConfig(), engine.NewRandomSource(2024))
	require.NoError(t, err)

	var last uint64
	res := Play(e, Greedy{}, 200, func(turn Turn) {
		assert.GreaterOrEqual(t, turn.Score, last, "score never decreases")
		last = turn.Score
		assert.Zero(t, turn.Score%engine.ClearAward)
	})

	assert.Zero(t, res.Refusals)
	assert.Equal(t, e.GetScore(), res.Score)
	if res.Stuck {
		_, _, ok := Greedy{}.Plan(e.GetState())
		assert.False(t, ok)
	} else {
		assert.Equal(t, 200, res.Turns)
	}
}
