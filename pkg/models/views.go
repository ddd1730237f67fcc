package models

import "time"

// Player is the roster entry embedded in session projections.
type Player struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

// MoveView is the wire shape of a recorded move.
type MoveView struct {
	PlayerID string `json:"playerId"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	MoveNo   int    `json:"moveNo"`
}

// SessionView is the canonical full session projection returned by the API.
type SessionView struct {
	ID          string        `json:"id"`
	Players     []Player      `json:"players"`
	Status      SessionStatus `json:"status"`
	CurrentTurn *string       `json:"currentTurn"`
	Board       Board         `json:"board"`
	Moves       []MoveView    `json:"moves"`
	Winner      *string       `json:"winner"`
	Draw        bool          `json:"draw"`
	GameType    GameType      `json:"gameType"`
	GameIcon    *string       `json:"gameIcon"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// SessionSummary is the compact projection used by session listings.
type SessionSummary struct {
	ID        string        `json:"id"`
	Host      Player        `json:"host"`
	Players   []Player      `json:"players"`
	Status    SessionStatus `json:"status"`
	GameType  GameType      `json:"gameType"`
	GameIcon  *string       `json:"gameIcon"`
	CreatedAt time.Time     `json:"createdAt"`
}

// SessionPage is one page of a session listing. NextCursor is an opaque
// token; empty means no further pages.
type SessionPage struct {
	Items      []SessionSummary `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// LeaderboardEntry is one ranked row of the leaderboard. Efficiency is the
// average of movesPlayed/2 over won sessions (lower is better) and is null
// for players without wins.
type LeaderboardEntry struct {
	PlayerID   string   `json:"playerId"`
	Name       string   `json:"name"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	Draws      int      `json:"draws"`
	Efficiency *float64 `json:"efficiency"`
}

// NewSessionView projects a session with its ordered moves into the
// canonical response shape.
func NewSessionView(s *Session, moves []Move) SessionView {
	moveViews := make([]MoveView, 0, len(moves))
	for _, m := range moves {
		moveViews = append(moveViews, MoveView{
			PlayerID: m.PlayerID,
			Row:      m.Row,
			Col:      m.Col,
			MoveNo:   m.MoveNo,
		})
	}
	return SessionView{
		ID:          s.ID,
		Players:     s.Players(),
		Status:      s.Status,
		CurrentTurn: s.CurrentTurn,
		Board:       s.Board,
		Moves:       moveViews,
		Winner:      s.WinnerID,
		Draw:        s.Draw,
		GameType:    s.GameType,
		GameIcon:    s.GameIcon,
		CreatedAt:   s.CreatedAt,
	}
}

// NewSessionSummary projects a session into the compact listing shape.
func NewSessionSummary(s *Session) SessionSummary {
	return SessionSummary{
		ID:        s.ID,
		Host:      Player{ID: s.HostID, Name: s.HostName, Icon: s.HostIcon},
		Players:   s.Players(),
		Status:    s.Status,
		GameType:  s.GameType,
		GameIcon:  s.GameIcon,
		CreatedAt: s.CreatedAt,
	}
}
