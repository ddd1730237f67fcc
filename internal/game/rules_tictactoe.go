package game

import (
	"gridgames-server/pkg/models"
)

const (
	ticTacToeRows = 3
	ticTacToeCols = 3
)

// ticTacToeRules implements Rules for the classic 3x3 game.
type ticTacToeRules struct{}

// NewTicTacToeRules returns the tic-tac-toe rule set.
func NewTicTacToeRules() Rules {
	return ticTacToeRules{}
}

func (ticTacToeRules) GameType() models.GameType {
	return models.GameTypeTicTacToe
}

func (ticTacToeRules) InitialBoard() models.Board {
	return models.NewBoard(ticTacToeRows, ticTacToeCols)
}

func (ticTacToeRules) Dimensions() (int, int) {
	return ticTacToeRows, ticTacToeCols
}

func (ticTacToeRules) ValidateMove(board models.Board, row, col int, playerID string) RuleViolation {
	if !board.InBounds(row, col) {
		return ViolationOutOfBounds
	}
	if board.Occupied(row, col) {
		return ViolationCellOccupied
	}
	return ViolationNone
}

// CheckWinner checks the full row and column through the placed cell, and
// each diagonal the cell lies on.
func (ticTacToeRules) CheckWinner(board models.Board, row, col int, playerID string) bool {
	rowWin := true
	for c := 0; c < ticTacToeCols; c++ {
		if !board.OwnedBy(row, c, playerID) {
			rowWin = false
			break
		}
	}
	if rowWin {
		return true
	}

	colWin := true
	for r := 0; r < ticTacToeRows; r++ {
		if !board.OwnedBy(r, col, playerID) {
			colWin = false
			break
		}
	}
	if colWin {
		return true
	}

	if row == col {
		diagWin := true
		for i := 0; i < ticTacToeRows; i++ {
			if !board.OwnedBy(i, i, playerID) {
				diagWin = false
				break
			}
		}
		if diagWin {
			return true
		}
	}

	if row+col == ticTacToeRows-1 {
		antiWin := true
		for i := 0; i < ticTacToeRows; i++ {
			if !board.OwnedBy(i, ticTacToeRows-1-i, playerID) {
				antiWin = false
				break
			}
		}
		if antiWin {
			return true
		}
	}

	return false
}

func (ticTacToeRules) CheckDraw(board models.Board, moveCount int) bool {
	return moveCount >= ticTacToeRows*ticTacToeCols
}
