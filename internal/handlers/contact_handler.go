package handlers

import (
	"net/http"
	"regexp"

	"devfolio/internal/models"
	"devfolio/internal/repository"

	"github.com/gin-gonic/gin"
)

var emailRegex = regexp.MustCompile(`[^@]+@[^@]+\.[^@]+`)

const maxContactMessageLen = 2000

type ContactHandler struct {
	repo repository.ContactRepository
}

func NewContactHandler(repo repository.ContactRepository) *ContactHandler {
	return &ContactHandler{repo: repo}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
	// Поле-приманка: скрыто на форме, заполняют только боты
	ConfirmEmail string `json:"confirm_email"`
}

func (h *ContactHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and message are required"})
		return
	}

	// Honeypot: отвечаем как при успехе, но ничего не сохраняем
	if req.ConfirmEmail != "" {
		c.JSON(http.StatusOK, gin.H{"status": "success", "name": req.Name})
		return
	}

	if !emailRegex.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	if len(req.Message) > maxContactMessageLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message too long"})
		return
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.repo.Create(ctx, message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "name": req.Name})
}
