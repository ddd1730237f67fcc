package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Board is a rectangular grid of cells. Each cell holds the id of the player
// who claimed it, or nil while the cell is empty. The shape is dictated by
// the session's game type, so the board is stored as a JSON-serialized 2D
// array in a single text column.
type Board [][]*string

// NewBoard creates an empty board with the given dimensions.
func NewBoard(rows, cols int) Board {
	b := make(Board, rows)
	for r := range b {
		b[r] = make([]*string, cols)
	}
	return b
}

// Rows returns the number of rows on the board.
func (b Board) Rows() int {
	return len(b)
}

// Cols returns the number of columns on the board.
func (b Board) Cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// InBounds reports whether (row, col) addresses a cell on the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows() && col >= 0 && col < b.Cols()
}

// Cell returns the player id occupying (row, col), or nil for an empty cell.
// Callers must check InBounds first.
func (b Board) Cell(row, col int) *string {
	return b[row][col]
}

// Occupied reports whether the cell at (row, col) holds a piece.
func (b Board) Occupied(row, col int) bool {
	return b[row][col] != nil
}

// OwnedBy reports whether the cell at (row, col) holds a piece of playerID.
// Out-of-bounds coordinates are simply not owned.
func (b Board) OwnedBy(row, col int, playerID string) bool {
	return b.InBounds(row, col) && b[row][col] != nil && *b[row][col] == playerID
}

// Place claims the cell at (row, col) for playerID.
func (b Board) Place(row, col int, playerID string) {
	id := playerID
	b[row][col] = &id
}

// FilledCells counts the non-nil cells on the board.
func (b Board) FilledCells() int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell != nil {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	c := NewBoard(b.Rows(), b.Cols())
	for r := range b {
		for col, cell := range b[r] {
			if cell != nil {
				c.Place(r, col, *cell)
			}
		}
	}
	return c
}

// Scan implements the sql.Scanner interface for GORM.
func (b *Board) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return ErrInvalidBoardData
	}
}

// Value implements the driver.Valuer interface for GORM.
func (b Board) Value() (driver.Value, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
