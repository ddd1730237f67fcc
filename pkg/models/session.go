package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameType identifies the rule set a session is played under. Immutable
// after creation.
type GameType string

const (
	GameTypeTicTacToe   GameType = "tic_tac_toe"
	GameTypeConnectFour GameType = "connect_four"
)

// SessionStatus is the lifecycle state of a session. The only legal
// transitions are WAITING -> ACTIVE (second player joins) and
// ACTIVE -> FINISHED (terminal move). FINISHED is absorbing.
type SessionStatus string

const (
	StatusWaiting  SessionStatus = "WAITING"
	StatusActive   SessionStatus = "ACTIVE"
	StatusFinished SessionStatus = "FINISHED"
)

// Session is the central aggregate: one instance of a two-player game with
// its own board, roster, and move history. Sessions own their moves
// (cascade delete); users are referenced by id only.
type Session struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	GameType    GameType      `json:"gameType" gorm:"type:varchar(20);not null;default:tic_tac_toe"`
	GameIcon    *string       `json:"gameIcon" gorm:"type:varchar(255)"`
	HostID      string        `json:"hostId" gorm:"not null;index"`
	HostName    string        `json:"hostName" gorm:"not null"`
	HostIcon    *string       `json:"hostIcon" gorm:"type:varchar(255)"`
	GuestID     *string       `json:"guestId" gorm:"index"`
	GuestName   *string       `json:"guestName"`
	GuestIcon   *string       `json:"guestIcon" gorm:"type:varchar(255)"`
	Status      SessionStatus `json:"status" gorm:"type:varchar(10);not null;index"`
	CurrentTurn *string       `json:"currentTurn"`
	Board       Board         `json:"board" gorm:"type:text"`
	WinnerID    *string       `json:"winnerId"`
	Draw        bool          `json:"draw" gorm:"not null;default:false"`
	Moves       []Move        `json:"moves" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time     `json:"createdAt" gorm:"autoCreateTime;index:idx_sessions_created_at,sort:desc"`
	UpdatedAt   time.Time     `json:"-" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}

// BeforeCreate is a GORM hook that fills defaults for new sessions.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = generateUUID()
	}
	if s.Status == "" {
		s.Status = StatusWaiting
	}
	if s.GameType == "" {
		s.GameType = GameTypeTicTacToe
	}
	return nil
}

// IsWaiting reports whether the session still waits for a second player.
func (s *Session) IsWaiting() bool {
	return s.Status == StatusWaiting
}

// IsActive reports whether the session accepts moves.
func (s *Session) IsActive() bool {
	return s.Status == StatusActive
}

// IsFinished reports whether the session reached a terminal state.
func (s *Session) IsFinished() bool {
	return s.Status == StatusFinished
}

// HasPlayer reports whether playerID is on the session roster.
func (s *Session) HasPlayer(playerID string) bool {
	if playerID == s.HostID {
		return true
	}
	return s.GuestID != nil && *s.GuestID == playerID
}

// Opponent returns the id of the other roster member. The session must be
// rostered (guest set) and playerID must be on the roster.
func (s *Session) Opponent(playerID string) string {
	if playerID == s.HostID && s.GuestID != nil {
		return *s.GuestID
	}
	return s.HostID
}

// Players returns the roster in join order: host first, guest second when
// present.
func (s *Session) Players() []Player {
	players := []Player{{ID: s.HostID, Name: s.HostName, Icon: s.HostIcon}}
	if s.GuestID != nil {
		name := ""
		if s.GuestName != nil {
			name = *s.GuestName
		}
		players = append(players, Player{ID: *s.GuestID, Name: name, Icon: s.GuestIcon})
	}
	return players
}

func generateUUID() string {
	return uuid.NewString()
}
