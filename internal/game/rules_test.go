package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridgames-server/pkg/models"
)

const (
	p1 = "player-1"
	p2 = "player-2"
)

func placeAll(b models.Board, playerID string, cells [][2]int) {
	for _, cell := range cells {
		b.Place(cell[0], cell[1], playerID)
	}
}

func TestRegistryContainsAllGames(t *testing.T) {
	registry := NewRegistry()

	ttt, ok := registry.Get(models.GameTypeTicTacToe)
	require.True(t, ok)
	rows, cols := ttt.Dimensions()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)

	c4, ok := registry.Get(models.GameTypeConnectFour)
	require.True(t, ok)
	rows, cols = c4.Dimensions()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 7, cols)

	_, ok = registry.Get(models.GameType("checkers"))
	assert.False(t, ok)
}

func TestTicTacToeValidateMove(t *testing.T) {
	rules := NewTicTacToeRules()
	board := rules.InitialBoard()
	board.Place(1, 1, p1)

	tests := []struct {
		name     string
		row, col int
		want     RuleViolation
	}{
		{"legal empty cell", 0, 0, ViolationNone},
		{"occupied cell", 1, 1, ViolationCellOccupied},
		{"row too large", 3, 0, ViolationOutOfBounds},
		{"col too large", 0, 3, ViolationOutOfBounds},
		{"negative row", -1, 0, ViolationOutOfBounds},
		{"negative col", 0, -1, ViolationOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.ValidateMove(board, tt.row, tt.col, p2))
		})
	}
}

func TestTicTacToeCheckWinner(t *testing.T) {
	rules := NewTicTacToeRules()

	tests := []struct {
		name     string
		cells    [][2]int
		row, col int
		want     bool
	}{
		{"full row", [][2]int{{1, 0}, {1, 1}, {1, 2}}, 1, 2, true},
		{"full column", [][2]int{{0, 2}, {1, 2}, {2, 2}}, 2, 2, true},
		{"main diagonal", [][2]int{{0, 0}, {1, 1}, {2, 2}}, 1, 1, true},
		{"anti diagonal", [][2]int{{0, 2}, {1, 1}, {2, 0}}, 2, 0, true},
		{"two in a row only", [][2]int{{0, 0}, {0, 1}}, 0, 1, false},
		{"column win from top cell", [][2]int{{0, 1}, {1, 1}, {2, 1}}, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := rules.InitialBoard()
			placeAll(board, p1, tt.cells)
			assert.Equal(t, tt.want, rules.CheckWinner(board, tt.row, tt.col, p1))
		})
	}
}

func TestTicTacToeWinIgnoresOpponentCells(t *testing.T) {
	rules := NewTicTacToeRules()
	board := rules.InitialBoard()
	board.Place(0, 0, p1)
	board.Place(0, 1, p2)
	board.Place(0, 2, p1)

	assert.False(t, rules.CheckWinner(board, 0, 2, p1))
}

func TestTicTacToeCheckDraw(t *testing.T) {
	rules := NewTicTacToeRules()
	board := rules.InitialBoard()

	assert.False(t, rules.CheckDraw(board, 8))
	assert.True(t, rules.CheckDraw(board, 9))
}

func TestConnectFourValidateMove(t *testing.T) {
	rules := NewConnectFourRules()
	board := rules.InitialBoard()
	// Column 2 holds one piece, so its drop row is 4.
	board.Place(5, 2, p1)
	// Column 6 is full.
	for r := 0; r < 6; r++ {
		board.Place(r, 6, p2)
	}

	tests := []struct {
		name     string
		row, col int
		want     RuleViolation
	}{
		{"drop on empty column", 5, 0, ViolationNone},
		{"drop on stacked column", 4, 2, ViolationNone},
		{"floating piece", 3, 2, ViolationIllegalGeometry},
		{"buried piece", 5, 2, ViolationIllegalGeometry},
		{"full column", 0, 6, ViolationCellOccupied},
		{"column out of range", 5, 7, ViolationOutOfBounds},
		{"negative column", 5, -1, ViolationOutOfBounds},
		{"row out of range", 6, 0, ViolationOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.ValidateMove(board, tt.row, tt.col, p1))
		})
	}
}

func TestConnectFourCheckWinner(t *testing.T) {
	rules := NewConnectFourRules()

	tests := []struct {
		name     string
		cells    [][2]int
		row, col int
		want     bool
	}{
		{"vertical", [][2]int{{5, 3}, {4, 3}, {3, 3}, {2, 3}}, 2, 3, true},
		{"horizontal", [][2]int{{5, 1}, {5, 2}, {5, 3}, {5, 4}}, 5, 3, true},
		{"diagonal up-right", [][2]int{{5, 0}, {4, 1}, {3, 2}, {2, 3}}, 3, 2, true},
		{"diagonal up-left", [][2]int{{2, 0}, {3, 1}, {4, 2}, {5, 3}}, 4, 2, true},
		{"three only", [][2]int{{5, 0}, {5, 1}, {5, 2}}, 5, 2, false},
		{"gap in run", [][2]int{{5, 0}, {5, 1}, {5, 3}, {5, 4}}, 5, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := rules.InitialBoard()
			placeAll(board, p1, tt.cells)
			assert.Equal(t, tt.want, rules.CheckWinner(board, tt.row, tt.col, p1))
		})
	}
}

func TestConnectFourCheckDraw(t *testing.T) {
	rules := NewConnectFourRules()
	board := rules.InitialBoard()

	assert.False(t, rules.CheckDraw(board, 41))
	assert.True(t, rules.CheckDraw(board, 42))
}
