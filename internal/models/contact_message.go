package models

import "time"

type ContactMessage struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Email   string    `gorm:"not null" json:"email"`
	Message string    `gorm:"type:text;not null" json:"message"`
	SentAt  time.Time `gorm:"autoCreateTime;index" json:"sent_at"`
}
