package game

import (
	"gridgames-server/pkg/models"
)

// RuleViolation categorizes an illegal move. The engine maps these onto its
// tagged error kinds.
type RuleViolation string

const (
	// ViolationNone means the move is legal.
	ViolationNone RuleViolation = ""
	// ViolationOutOfBounds means (row, col) does not address a board cell.
	ViolationOutOfBounds RuleViolation = "out_of_bounds"
	// ViolationCellOccupied means the target cell (or column, for drop
	// games) is already taken.
	ViolationCellOccupied RuleViolation = "cell_occupied"
	// ViolationIllegalGeometry means the coordinates are on the board but
	// the game's geometry forbids the placement (e.g. a floating
	// connect-four piece).
	ViolationIllegalGeometry RuleViolation = "illegal_geometry"
)

// Rules encapsulates everything game-specific: board shape, legal-move
// checks, and win/draw detection. Implementations are stateless and safe for
// concurrent use; the engine stays game-agnostic by dispatching through this
// interface. Adding a new game is one Rules implementation plus one registry
// entry.
type Rules interface {
	// GameType identifies the rule set.
	GameType() models.GameType

	// InitialBoard returns an empty board with game-specific dimensions.
	InitialBoard() models.Board

	// ValidateMove checks whether playerID may place at (row, col) on the
	// given board. It returns ViolationNone for a legal move.
	ValidateMove(board models.Board, row, col int, playerID string) RuleViolation

	// CheckWinner reports whether the piece just placed at (row, col)
	// completes a winning line for playerID. Detection is incremental and
	// positional: it inspects only the neighborhood of the placed cell and
	// never depends on move history.
	CheckWinner(board models.Board, row, col int, playerID string) bool

	// CheckDraw reports whether the game is drawn after moveCount moves
	// with no winner.
	CheckDraw(board models.Board, moveCount int) bool

	// Dimensions returns the board shape as (rows, cols).
	Dimensions() (rows, cols int)
}

// Registry is the closed set of rule variants, built once at startup and
// read-only thereafter, so it is safe for concurrent use.
type Registry struct {
	rules map[models.GameType]Rules
}

// NewRegistry builds the registry with all supported games.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[models.GameType]Rules)}
	r.register(NewTicTacToeRules())
	r.register(NewConnectFourRules())
	return r
}

func (r *Registry) register(rules Rules) {
	r.rules[rules.GameType()] = rules
}

// Get returns the rules for gameType, or false when the game is unknown.
func (r *Registry) Get(gameType models.GameType) (Rules, bool) {
	rules, ok := r.rules[gameType]
	return rules, ok
}

// GameTypes lists the registered game types.
func (r *Registry) GameTypes() []models.GameType {
	types := make([]models.GameType, 0, len(r.rules))
	for gt := range r.rules {
		types = append(types, gt)
	}
	return types
}
