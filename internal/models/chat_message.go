package models

import "time"

const (
	SenderVisitor = "visitor"
	SenderAdmin   = "admin"
)

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"index;not null" json:"session_id"`
	Sender    string    `gorm:"type:varchar(20);not null" json:"sender"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
}
