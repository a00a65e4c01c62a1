package handlers

import (
	"net/http"

	"devfolio/internal/service"

	"github.com/gin-gonic/gin"
)

type SteamHandler struct {
	service service.SteamService
}

func NewSteamHandler(service service.SteamService) *SteamHandler {
	return &SteamHandler{service: service}
}

// GetProfile всегда отвечает 200: при сбое API сервис уже подставил
// снапшот или офлайн-вариант
func (h *SteamHandler) GetProfile(c *gin.Context) {
	profile := h.service.GetProfile(c.Request.Context())
	c.JSON(http.StatusOK, profile)
}
