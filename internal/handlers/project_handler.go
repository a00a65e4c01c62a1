package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"devfolio/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	service service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	projects, err := h.service.GetPaginated(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get projects"})
		return
	}

	if len(projects) == 0 {
		// Страница за пределами списка: фронтенд останавливает подгрузку
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     projects,
		"next_page": page + 1,
	})
}

func (h *ProjectHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	project, err := h.service.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// Sync - явный триггер синхронизации с GitHub (за админским токеном)
func (h *ProjectHandler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.Sync(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
