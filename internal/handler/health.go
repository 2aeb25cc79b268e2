package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/makeasinger/songgen/internal/service"
)

type HealthHandler struct {
	songService *service.SongService
}

func NewHealthHandler(songService *service.SongService) *HealthHandler {
	return &HealthHandler{songService: songService}
}

// Root handles GET /
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"timestamp": time.Now().Unix(),
	})
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"services": fiber.Map{
			"runpod": h.songService.IsConfigured(),
		},
	})
}
