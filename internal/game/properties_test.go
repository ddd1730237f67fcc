package game

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gridgames-server/pkg/models"
)

// hasLine scans the whole board for a run of `need` cells owned by playerID
// in any direction. The engine itself only checks incrementally around the
// placed cell; this global scan cross-checks it.
func hasLine(board models.Board, playerID string, need int) bool {
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for r := 0; r < board.Rows(); r++ {
		for c := 0; c < board.Cols(); c++ {
			if !board.OwnedBy(r, c, playerID) {
				continue
			}
			for _, d := range dirs {
				run := 1
				rr, cc := r+d[0], c+d[1]
				for board.OwnedBy(rr, cc, playerID) {
					run++
					rr += d[0]
					cc += d[1]
				}
				if run >= need {
					return true
				}
			}
		}
	}
	return false
}

// gravityOK reports that every column is filled contiguously from the
// bottom (no floating pieces).
func gravityOK(board models.Board) bool {
	for c := 0; c < board.Cols(); c++ {
		seenEmpty := false
		for r := board.Rows() - 1; r >= 0; r-- {
			if board.Cell(r, c) == nil {
				seenEmpty = true
			} else if seenEmpty {
				return false
			}
		}
	}
	return true
}

// consistent checks the session-level invariants that must hold at every
// committed state.
func consistent(view *models.SessionView, acceptedMoves int, u1, u2 string) bool {
	if view.Board.FilledCells() != acceptedMoves {
		return false
	}
	if len(view.Moves) != acceptedMoves {
		return false
	}
	for i, m := range view.Moves {
		if m.MoveNo != i+1 {
			return false
		}
		if !view.Board.OwnedBy(m.Row, m.Col, m.PlayerID) {
			return false
		}
	}
	switch view.Status {
	case models.StatusActive:
		if view.CurrentTurn == nil || (*view.CurrentTurn != u1 && *view.CurrentTurn != u2) {
			return false
		}
		if view.Winner != nil || view.Draw {
			return false
		}
	case models.StatusFinished:
		if view.CurrentTurn != nil {
			return false
		}
		if (view.Winner != nil) == view.Draw {
			return false
		}
	default:
		return false
	}
	return true
}

func TestTicTacToeHistoryProperties(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u1 := env.createUser(t, "alice")
	u2 := env.createUser(t, "bob")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("any accepted tic-tac-toe history keeps the session consistent", prop.ForAll(
		func(cells []int) bool {
			view := env.createActiveSession(t, models.GameTypeTicTacToe, u1.ID, u2.ID)
			accepted := 0

			for _, idx := range cells {
				if view.Status == models.StatusFinished {
					// Terminal state is absorbing.
					mover := u1.ID
					if _, err := env.engine.SubmitMove(ctx, view.ID, mover, idx/3, idx%3); err == nil {
						return false
					}
					continue
				}

				mover := *view.CurrentTurn
				next, err := env.engine.SubmitMove(ctx, view.ID, mover, idx/3, idx%3)
				if err != nil {
					// The only legal rejection for an in-bounds, on-turn
					// move is an occupied cell.
					ge, ok := models.AsGameError(err)
					if !ok || ge.Kind != models.KindConflict || ge.Code != models.CodeCellOccupied {
						return false
					}
					continue
				}
				view = next
				accepted++

				if !consistent(view, accepted, u1.ID, u2.ID) {
					return false
				}
			}

			if view.Status == models.StatusFinished && view.Winner != nil {
				return hasLine(view.Board, *view.Winner, 3)
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 8)),
	))

	properties.TestingRun(t)
}

func TestConnectFourHistoryProperties(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u1 := env.createUser(t, "carol")
	u2 := env.createUser(t, "dave")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("any accepted connect-four history keeps gravity and consistency", prop.ForAll(
		func(cols []int) bool {
			view := env.createActiveSession(t, models.GameTypeConnectFour, u1.ID, u2.ID)
			accepted := 0

			for _, col := range cols {
				if view.Status == models.StatusFinished {
					break
				}

				// The caller computes the drop row, as clients do.
				row := -1
				for r := view.Board.Rows() - 1; r >= 0; r-- {
					if view.Board.Cell(r, col) == nil {
						row = r
						break
					}
				}

				mover := *view.CurrentTurn
				if row == -1 {
					// Full column must be rejected without side effects.
					_, err := env.engine.SubmitMove(ctx, view.ID, mover, 0, col)
					ge, ok := models.AsGameError(err)
					if !ok || ge.Code != models.CodeCellOccupied {
						return false
					}
					continue
				}

				next, err := env.engine.SubmitMove(ctx, view.ID, mover, row, col)
				if err != nil {
					return false
				}
				view = next
				accepted++

				if !consistent(view, accepted, u1.ID, u2.ID) {
					return false
				}
				if !gravityOK(view.Board) {
					return false
				}
			}

			if view.Status == models.StatusFinished && view.Winner != nil {
				return hasLine(view.Board, *view.Winner, 4)
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.TestingRun(t)
}
