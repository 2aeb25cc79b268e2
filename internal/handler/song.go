package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/makeasinger/songgen/internal/model"
	"github.com/makeasinger/songgen/internal/service"
	"github.com/makeasinger/songgen/pkg/response"
)

type SongHandler struct {
	service *service.SongService
	log     *slog.Logger
}

func NewSongHandler(svc *service.SongService, log *slog.Logger) *SongHandler {
	return &SongHandler{
		service: svc,
		log:     log,
	}
}

// Generate handles POST /api/generate-song
// @Summary      Generate song
// @Description  Generate a song synchronously on the RunPod ACE-Step endpoint
// @Tags         Songs
// @Accept       json
// @Produce      json
// @Param        request body model.GenerateSongRequest true "Generate request"
// @Success      200 {object} model.GenerateSongResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /api/generate-song [post]
func (h *SongHandler) Generate(c *fiber.Ctx) error {
	if err := h.service.CheckConfigured(); err != nil {
		return h.fail(c, err)
	}

	// Parsed regardless of Content-Type
	var req model.GenerateSongRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return h.fail(c, err)
	}

	cmd, err := h.service.Normalize(&req)
	if err != nil {
		return h.fail(c, err)
	}

	h.log.Info("Generating song with ACE-Step 1.5 via RunPod",
		slog.String("requestId", requestID(c)),
		slog.Float64("duration", cmd.Duration),
		slog.Bool("thinking", cmd.Thinking),
		slog.String("inference_steps", cmd.InferenceSteps.String()),
		slog.String("audio_format", cmd.AudioFormat),
	)

	result, err := h.service.Generate(c.Context(), cmd)
	if err != nil {
		return h.fail(c, err)
	}

	return response.OK(c, result)
}

// fail writes GenerationErrors as-is and hides everything else behind a generic 500
func (h *SongHandler) fail(c *fiber.Ctx, err error) error {
	var genErr *service.GenerationError
	if errors.As(err, &genErr) {
		return response.Error(c, genErr.StatusCode, genErr.Message)
	}

	h.log.Error("Generate song error", slog.String("requestId", requestID(c)), slog.Any("error", err))
	return response.InternalError(c)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
