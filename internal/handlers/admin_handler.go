package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"devfolio/internal/models"
	"devfolio/internal/repository"
	"devfolio/internal/service"
	"devfolio/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	auth        service.AuthService
	articles    service.ArticleService
	chat        service.ChatService
	contactRepo repository.ContactRepository
}

func NewAdminHandler(
	auth service.AuthService,
	articles service.ArticleService,
	chat service.ChatService,
	contactRepo repository.ContactRepository,
) *AdminHandler {
	return &AdminHandler{
		auth:        auth,
		articles:    articles,
		chat:        chat,
		contactRepo: contactRepo,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AdminHandler) ListContactMessages(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	messages, err := h.contactRepo.GetPaginated(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	total, _ := h.contactRepo.Count(ctx)

	c.JSON(http.StatusOK, gin.H{
		"items": messages,
		"total": total,
		"page":  page,
	})
}

// ExportContactMessages отдает все сообщения одним Excel файлом
func (h *AdminHandler) ExportContactMessages(c *gin.Context) {
	ctx := c.Request.Context()

	messages, err := h.contactRepo.GetPaginated(ctx, 1, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	exportPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("contact_messages_%d.xlsx", time.Now().Unix()))
	if err := utils.WriteContactMessagesExcel(exportPath, messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}
	defer os.Remove(exportPath)

	c.FileAttachment(exportPath, "contact_messages.xlsx")
}

func (h *AdminHandler) ListChatSessions(c *gin.Context) {
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	sessions, err := h.chat.GetSessions(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *AdminHandler) GetChatSession(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("id")

	messages, err := h.chat.GetHistory(ctx, sessionID, 200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get session history"})
		return
	}

	if err := h.chat.MarkSessionRead(ctx, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark session read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "messages": messages})
}

type articleRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug"`
	Summary     string `json:"summary"`
	Content     string `json:"content" binding:"required"`
	IsPublished bool   `json:"is_published"`
}

func (h *AdminHandler) ListArticles(c *gin.Context) {
	ctx := c.Request.Context()

	articles, err := h.articles.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": articles})
}

func (h *AdminHandler) CreateArticle(c *gin.Context) {
	ctx := c.Request.Context()

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	article := &models.Article{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	}
	if err := h.articles.Create(ctx, article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, article)
}

func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	existing, err := h.articles.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get article"})
		return
	}

	existing.Title = req.Title
	if req.Slug != "" {
		existing.Slug = req.Slug
	}
	existing.Summary = req.Summary
	existing.Content = req.Content
	existing.IsPublished = req.IsPublished

	if err := h.articles.Update(ctx, existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update article"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	if err := h.articles.Delete(ctx, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
