package models

import (
	"time"

	"gorm.io/gorm"
)

// Move is a single placement by a player. Moves are append-only and ordered
// by MoveNo, which is the contiguous sequence 1..N per session.
type Move struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"sessionId" gorm:"not null;index;uniqueIndex:idx_moves_session_move_no"`
	PlayerID  string    `json:"playerId" gorm:"not null;index"`
	Row       int       `json:"row" gorm:"not null"`
	Col       int       `json:"col" gorm:"not null"`
	MoveNo    int       `json:"moveNo" gorm:"not null;uniqueIndex:idx_moves_session_move_no"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM.
func (Move) TableName() string {
	return "moves"
}

// BeforeCreate is a GORM hook that assigns an id when none was set.
func (m *Move) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = generateUUID()
	}
	return nil
}
