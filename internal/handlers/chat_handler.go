package handlers

import (
	"errors"
	"net/http"
	"strings"

	"devfolio/internal/models"
	"devfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	chatSessionCookie = "chat_session_id"
	chatCookieMaxAge  = 60 * 60 * 24 * 30 // 30 дней
)

type ChatHandler struct {
	service service.ChatService
}

func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// History отдает хронологию сессии. Новому посетителю выставляется
// httponly-кука с uuid сессии и пустая история.
func (h *ChatHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID, err := c.Cookie(chatSessionCookie)
	if err != nil || sessionID == "" {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(chatSessionCookie, sessionID, chatCookieMaxAge, "/", "", false, true)

		c.JSON(http.StatusOK, gin.H{"messages": []models.ChatMessage{}})
		return
	}

	messages, err := h.service.GetHistory(ctx, sessionID, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// Send сохраняет реплику посетителя. Без куки сессии - 400, чтобы не
// плодить сессии-призраки.
func (h *ChatHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID, err := c.Cookie(chatSessionCookie)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing chat session"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	message, err := h.service.SaveMessage(ctx, sessionID, models.SenderVisitor, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}

	c.JSON(http.StatusOK, message)
}

// Reply строит контекст и запрашивает ответ ассистента. Пустой
// контекст при сохраненной реплике - противоречие в данных, 500.
func (h *ChatHandler) Reply(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID, err := c.Cookie(chatSessionCookie)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing chat session"})
		return
	}

	reply, err := h.service.Reply(ctx, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContext) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "chat history is inconsistent"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate reply"})
		return
	}

	c.JSON(http.StatusOK, reply)
}
