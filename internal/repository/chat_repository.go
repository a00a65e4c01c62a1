package repository

import (
	"context"

	"devfolio/internal/models"

	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	// GetRecent возвращает последние limit сообщений сессии, новые первыми
	GetRecent(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
	GetSessions(ctx context.Context, limit int) ([]string, error)
	MarkSessionRead(ctx context.Context, sessionID string) error
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *chatRepository) GetRecent(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	if limit < 1 || limit > 200 {
		limit = 20
	}

	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).
		Error

	return messages, err
}

func (r *chatRepository) GetSessions(ctx context.Context, limit int) ([]string, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	var sessions []string
	err := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Select("session_id").
		Group("session_id").
		Order("MAX(timestamp) DESC").
		Limit(limit).
		Pluck("session_id", &sessions).
		Error

	return sessions, err
}

func (r *chatRepository) MarkSessionRead(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("session_id = ? AND is_read = ?", sessionID, false).
		Update("is_read", true).
		Error
}
