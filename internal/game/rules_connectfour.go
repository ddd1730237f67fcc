package game

import (
	"gridgames-server/pkg/models"
)

const (
	connectFourRows  = 6
	connectFourCols  = 7
	connectFourToWin = 4
)

// connectFourRules implements Rules for 6x7 Connect Four. Moves are
// parameterized by column: the caller computes the drop row and the rule
// verifies it, so a committed board can never contain a floating piece.
type connectFourRules struct{}

// NewConnectFourRules returns the connect-four rule set.
func NewConnectFourRules() Rules {
	return connectFourRules{}
}

func (connectFourRules) GameType() models.GameType {
	return models.GameTypeConnectFour
}

func (connectFourRules) InitialBoard() models.Board {
	return models.NewBoard(connectFourRows, connectFourCols)
}

func (connectFourRules) Dimensions() (int, int) {
	return connectFourRows, connectFourCols
}

// dropRow returns the lowest empty row in col, or -1 when the column is
// full. Row 0 is the top of the board.
func dropRow(board models.Board, col int) int {
	for r := connectFourRows - 1; r >= 0; r-- {
		if !board.Occupied(r, col) {
			return r
		}
	}
	return -1
}

func (connectFourRules) ValidateMove(board models.Board, row, col int, playerID string) RuleViolation {
	if col < 0 || col >= connectFourCols || row < 0 || row >= connectFourRows {
		return ViolationOutOfBounds
	}
	target := dropRow(board, col)
	if target == -1 {
		// Column is full.
		return ViolationCellOccupied
	}
	if row != target {
		return ViolationIllegalGeometry
	}
	return ViolationNone
}

// directions to scan for four in a row: horizontal, vertical, both
// diagonals. Each is counted in both orientations from the placed cell.
var connectFourDirections = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

func (connectFourRules) CheckWinner(board models.Board, row, col int, playerID string) bool {
	for _, dir := range connectFourDirections {
		count := 1
		count += countRun(board, row, col, dir[0], dir[1], playerID)
		count += countRun(board, row, col, -dir[0], -dir[1], playerID)
		if count >= connectFourToWin {
			return true
		}
	}
	return false
}

// countRun counts contiguous playerID cells starting one step away from
// (row, col) in direction (dr, dc).
func countRun(board models.Board, row, col, dr, dc int, playerID string) int {
	count := 0
	r, c := row+dr, col+dc
	for board.OwnedBy(r, c, playerID) {
		count++
		r += dr
		c += dc
	}
	return count
}

func (connectFourRules) CheckDraw(board models.Board, moveCount int) bool {
	return moveCount >= connectFourRows*connectFourCols
}
