package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/makeasinger/songgen/internal/client"
	"github.com/makeasinger/songgen/internal/model"
)

// Messages returned to the caller
const (
	MsgNotConfigured   = "RunPod not configured. Missing API key or endpoint ID."
	MsgMissingFields   = "Caption (or tags) and lyrics are required"
	MsgRequestFailed   = "Failed to generate song"
	MsgGenerationError = "Song generation failed"
	MsgPending         = "Song is being generated..."

	statusFailed = "FAILED"
)

// GenerationError is a failure with a caller-facing status code and message
type GenerationError struct {
	StatusCode int
	Message    string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation error (status %d): %s", e.StatusCode, e.Message)
}

// SongService turns caller requests into runsync calls and maps the outcome
type SongService struct {
	generator client.SongGenerator
	validator *validator.Validate
	log       *slog.Logger
}

// NewSongService creates a new song service
func NewSongService(generator client.SongGenerator, v *validator.Validate, log *slog.Logger) *SongService {
	return &SongService{
		generator: generator,
		validator: v,
		log:       log,
	}
}

// IsConfigured reports whether the upstream credentials are present
func (s *SongService) IsConfigured() bool {
	return s.generator != nil && s.generator.IsConfigured()
}

// CheckConfigured returns a GenerationError when the upstream cannot be called
func (s *SongService) CheckConfigured() error {
	if !s.IsConfigured() {
		return &GenerationError{StatusCode: http.StatusInternalServerError, Message: MsgNotConfigured}
	}
	return nil
}

// Normalize resolves legacy aliases, applies defaults and checks required fields.
// The returned command never refers to the alias names.
func (s *SongService) Normalize(req *model.GenerateSongRequest) (*model.GenerateSongCommand, error) {
	cmd := BuildCommand(req)

	if err := s.validator.Struct(cmd); err != nil {
		return nil, &GenerationError{StatusCode: http.StatusBadRequest, Message: MsgMissingFields}
	}

	return cmd, nil
}

// BuildCommand maps a request onto the canonical command without validating it
func BuildCommand(req *model.GenerateSongRequest) *model.GenerateSongCommand {
	caption := req.Caption
	if caption == "" {
		caption = req.Tags
	}

	thinking := model.DefaultThinking
	switch {
	case req.Thinking != nil:
		thinking = *req.Thinking
	case req.ThinkMode != nil:
		thinking = *req.ThinkMode
	}

	steps := model.DefaultInferenceSteps
	switch {
	case req.InferenceSteps != nil:
		steps = *req.InferenceSteps
	case req.Steps != nil:
		steps = *req.Steps
	}

	seed := model.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	duration := req.Duration
	if duration == 0 {
		duration = model.DefaultDuration
	}

	return &model.GenerateSongCommand{
		Caption:        caption,
		Lyrics:         req.Lyrics,
		Duration:       duration,
		BPM:            req.BPM,
		KeyScale:       req.KeyScale,
		VocalLanguage:  orDefault(req.VocalLanguage, model.DefaultVocalLanguage),
		Thinking:       thinking,
		InferenceSteps: steps,
		Seed:           seed,
		UseFormat:      req.UseFormat,
		AudioFormat:    orDefault(req.AudioFormat, model.DefaultAudioFormat),
	}
}

// Generate performs the runsync call and maps its outcome.
// Errors that are not *GenerationError are internal faults.
func (s *SongService) Generate(ctx context.Context, cmd *model.GenerateSongCommand) (*model.GenerateSongResponse, error) {
	if err := s.CheckConfigured(); err != nil {
		return nil, err
	}

	result, err := s.generator.RunSync(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("runsync call failed: %w", err)
	}

	return s.interpret(result)
}

func (s *SongService) interpret(result *client.RunSyncResult) (*model.GenerateSongResponse, error) {
	body := result.Body

	if !result.OK() {
		s.log.Error("RunPod API error",
			slog.Int("status", result.StatusCode),
			slog.String("body", string(result.RawBody)),
		)
		return nil, &GenerationError{
			StatusCode: result.StatusCode,
			Message:    textOf(body.Error, MsgRequestFailed),
		}
	}

	if body.Status == statusFailed {
		s.log.Error("RunPod job failed", slog.String("id", body.ID), slog.String("error", string(body.Error)))
		return nil, &GenerationError{
			StatusCode: http.StatusInternalServerError,
			Message:    textOf(body.Error, MsgGenerationError),
		}
	}

	output := decodeOutput(body.Output)

	if hasValue(output.Error) {
		s.log.Error("worker reported error", slog.String("id", body.ID), slog.String("error", string(output.Error)))
		return nil, &GenerationError{
			StatusCode: http.StatusInternalServerError,
			Message:    textOf(output.Error, MsgGenerationError),
		}
	}

	if output.AudioBase64 != "" {
		format := orDefault(output.Format, model.DefaultAudioFormat)
		return &model.GenerateSongResponse{
			Success:  true,
			AudioURL: DataURL(format, output.AudioBase64),
			Duration: output.Duration,
			Seed:     output.Seed,
			BPM:      output.BPM,
			KeyScale: output.KeyScale,
			Model:    orDefault(output.Model, model.DefaultModel),
			Format:   format,
		}, nil
	}

	// runsync normally returns a terminal status; kept for IN_QUEUE / IN_PROGRESS replies
	s.log.Warn("RunPod returned no audio", slog.String("id", body.ID), slog.String("status", body.Status))
	return &model.GenerateSongResponse{
		Success: false,
		Status:  body.Status,
		Message: MsgPending,
	}, nil
}

// DataURL embeds base64 audio into a data URL
func DataURL(format, payload string) string {
	return "data:audio/" + format + ";base64," + payload
}

// decodeOutput reads the worker output field by field so one oddly typed
// field cannot hide the others. Anything that is not an object yields no fields.
func decodeOutput(raw json.RawMessage) model.SongOutput {
	var fields map[string]json.RawMessage
	if !hasValue(raw) || json.Unmarshal(raw, &fields) != nil {
		return model.SongOutput{}
	}

	return model.SongOutput{
		Error:       fields["error"],
		AudioBase64: textOf(fields["audio_base64"], ""),
		Format:      textOf(fields["format"], ""),
		Model:       textOf(fields["model"], ""),
		Duration:    fields["duration"],
		Seed:        fields["seed"],
		BPM:         fields["bpm"],
		KeyScale:    fields["key_scale"],
	}
}

// textOf renders a raw JSON value as text.
// Strings are returned as-is, other non-empty values as their JSON text.
func textOf(raw json.RawMessage, fallback string) string {
	if !hasValue(raw) {
		return fallback
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		if msg == "" {
			return fallback
		}
		return msg
	}

	return string(bytes.TrimSpace(raw))
}

// hasValue reports whether raw holds something other than null, false or empty
func hasValue(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", `""`, "0":
		return false
	}
	return true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
