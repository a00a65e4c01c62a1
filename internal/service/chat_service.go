package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"devfolio/internal/clients"
	"devfolio/internal/models"
	"devfolio/internal/repository"
)

// ErrEmptyContext - контекст пуст, хотя текущее сообщение должно было
// быть сохранено до построения контекста. Это повреждение данных, а не
// штатная деградация.
var ErrEmptyContext = errors.New("chat context is empty for session")

const aiContextLimit = 6

const replyFallback = "Tive um problema para responder agora. Tente novamente em instantes."

type ChatService interface {
	SaveMessage(ctx context.Context, sessionID, sender, content string) (*models.ChatMessage, error)
	// GetHistory возвращает последние limit сообщений сессии в
	// хронологическом порядке (старые первыми)
	GetHistory(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
	// Reply строит контекст, вызывает генерацию и сохраняет ответ
	Reply(ctx context.Context, sessionID string) (*models.ChatMessage, error)
	GetSessions(ctx context.Context, limit int) ([]string, error)
	MarkSessionRead(ctx context.Context, sessionID string) error
}

type chatService struct {
	repo   repository.ChatRepository
	gemini clients.GeminiClient
}

func NewChatService(repo repository.ChatRepository, gemini clients.GeminiClient) ChatService {
	return &chatService{repo: repo, gemini: gemini}
}

func (s *chatService) SaveMessage(ctx context.Context, sessionID, sender, content string) (*models.ChatMessage, error) {
	message := &models.ChatMessage{
		SessionID: sessionID,
		Sender:    sender,
		Message:   content,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("save chat message: %w", err)
	}
	return message, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	messages, err := s.repo.GetRecent(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	// Хранилище отдает новые первыми - разворачиваем для чата и ИИ
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (s *chatService) Reply(ctx context.Context, sessionID string) (*models.ChatMessage, error) {
	window, err := s.GetHistory(ctx, sessionID, aiContextLimit)
	if err != nil {
		return nil, err
	}

	if len(window) == 0 {
		return nil, fmt.Errorf("%w %s", ErrEmptyContext, sessionID)
	}

	// Последняя хронологическая запись - текущая реплика посетителя.
	// В историю она не попадает, иначе модель увидит свой же промпт
	// дважды.
	current := window[len(window)-1]
	history := make([]clients.ChatTurn, 0, len(window)-1)
	for _, msg := range window[:len(window)-1] {
		if strings.TrimSpace(msg.Message) == "" {
			continue
		}
		role := "user"
		if msg.Sender == models.SenderAdmin {
			role = "model"
		}
		history = append(history, clients.ChatTurn{Role: role, Text: msg.Message})
	}

	replyText, err := s.gemini.Generate(ctx, current.Message, history)
	if err != nil {
		// Деградация вместо стектрейса пользователю
		log.Printf("Chat generation failed for session %s: %v", sessionID, err)
		replyText = replyFallback
	}

	return s.SaveMessage(ctx, sessionID, models.SenderAdmin, replyText)
}

func (s *chatService) GetSessions(ctx context.Context, limit int) ([]string, error) {
	return s.repo.GetSessions(ctx, limit)
}

func (s *chatService) MarkSessionRead(ctx context.Context, sessionID string) error {
	return s.repo.MarkSessionRead(ctx, sessionID)
}
