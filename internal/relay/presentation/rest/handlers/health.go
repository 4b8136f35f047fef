package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
)

type HealthResponse struct {
	Status             string `json:"status"`
	Service            string `json:"service"`
	Version            string `json:"version"`
	TelegramConfigured bool   `json:"telegram_configured"`
	Timestamp          int64  `json:"timestamp"`
}

// HealthHandler reports liveness and whether submissions can be delivered
type HealthHandler struct {
	service core.SubmissionService
	version string
}

func NewHealthHandler(service core.SubmissionService, version string) *HealthHandler {
	return &HealthHandler{
		service: service,
		version: version,
	}
}

func (h *HealthHandler) Handle(c *gin.Context) {
	c.JSON(http.StatusOK, &HealthResponse{
		Status:             "running",
		Service:            "confession-relay",
		Version:            h.version,
		TelegramConfigured: h.service.IsConfigured(),
		Timestamp:          time.Now().Unix(),
	})
}
