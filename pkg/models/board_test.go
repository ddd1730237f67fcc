package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardPlaceAndOwnership(t *testing.T) {
	board := NewBoard(3, 3)

	board.Place(1, 2, "p1")
	assert.True(t, board.Occupied(1, 2))
	assert.True(t, board.OwnedBy(1, 2, "p1"))
	assert.False(t, board.OwnedBy(1, 2, "p2"))
	assert.Equal(t, 1, board.FilledCells())

	assert.True(t, board.InBounds(2, 2))
	assert.False(t, board.InBounds(3, 0))
	assert.False(t, board.InBounds(0, -1))
	assert.False(t, board.OwnedBy(3, 0, "p1"))
}

func TestBoardDatabaseRoundTrip(t *testing.T) {
	board := NewBoard(2, 2)
	board.Place(0, 0, "p1")
	board.Place(1, 1, "p2")

	value, err := board.Value()
	require.NoError(t, err)

	var restored Board
	require.NoError(t, restored.Scan(value))

	assert.Equal(t, 2, restored.Rows())
	assert.True(t, restored.OwnedBy(0, 0, "p1"))
	assert.True(t, restored.OwnedBy(1, 1, "p2"))
	assert.Nil(t, restored.Cell(0, 1))
}

func TestBoardScanRejectsUnknownTypes(t *testing.T) {
	var board Board
	assert.Error(t, board.Scan(42))
}

func TestBoardCloneIsIndependent(t *testing.T) {
	board := NewBoard(2, 2)
	board.Place(0, 0, "p1")

	clone := board.Clone()
	clone.Place(0, 1, "p2")

	assert.False(t, board.Occupied(0, 1))
	assert.True(t, clone.Occupied(0, 1))
}
