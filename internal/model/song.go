package model

import "encoding/json"

// Defaults applied when the caller omits a field
const (
	DefaultDuration       = 120
	DefaultVocalLanguage  = "en"
	DefaultThinking       = true
	DefaultInferenceSteps = json.Number("8")
	DefaultSeed           = json.Number("-1")
	DefaultAudioFormat    = "mp3"
	DefaultModel          = "ace-step-1.5-turbo"
)

// GenerateSongRequest represents the request body for song generation.
// Tags, ThinkMode and Steps are legacy aliases for Caption, Thinking and
// InferenceSteps. Step counts and seeds stay json.Number so any JSON number
// is forwarded exactly as sent.
type GenerateSongRequest struct {
	Caption        string       `json:"caption"`
	Lyrics         string       `json:"lyrics"`
	Duration       float64      `json:"duration"`
	BPM            *float64     `json:"bpm"`
	KeyScale       string       `json:"key_scale"`
	VocalLanguage  string       `json:"vocal_language"`
	Thinking       *bool        `json:"thinking"`
	InferenceSteps *json.Number `json:"inference_steps"`
	Seed           *json.Number `json:"seed"`
	UseFormat      bool         `json:"use_format"`
	AudioFormat    string       `json:"audio_format"`

	Tags      string       `json:"tags"`
	ThinkMode *bool        `json:"think_mode"`
	Steps     *json.Number `json:"steps"`
}

// GenerateSongCommand is the canonical input sent to the inference worker
type GenerateSongCommand struct {
	Caption        string      `json:"caption" validate:"required"`
	Lyrics         string      `json:"lyrics" validate:"required"`
	Duration       float64     `json:"duration"`
	BPM            *float64    `json:"bpm,omitempty"`
	KeyScale       string      `json:"key_scale"`
	VocalLanguage  string      `json:"vocal_language"`
	Thinking       bool        `json:"thinking"`
	InferenceSteps json.Number `json:"inference_steps"`
	Seed           json.Number `json:"seed"`
	UseFormat      bool        `json:"use_format"`
	AudioFormat    string      `json:"audio_format"`
}

// RunSyncRequest wraps a command in the serverless input envelope
type RunSyncRequest struct {
	Input *GenerateSongCommand `json:"input"`
}

// RunSyncResponse is the body returned by the runsync endpoint.
// Error and Output are kept raw because the worker does not guarantee their shape.
type RunSyncResponse struct {
	ID     string          `json:"id,omitempty"`
	Status string          `json:"status,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
	Output json.RawMessage `json:"output,omitempty"`
}

// SongOutput is the worker's result object. Metadata is passed through
// untouched because workers differ in how they type it.
type SongOutput struct {
	Error       json.RawMessage
	AudioBase64 string
	Format      string
	Model       string

	Duration json.RawMessage
	Seed     json.RawMessage
	BPM      json.RawMessage
	KeyScale json.RawMessage
}

// GenerateSongResponse is returned to the caller on success, and also
// carries the pending shape when the worker has not finished.
type GenerateSongResponse struct {
	Success  bool            `json:"success"`
	AudioURL string          `json:"audioUrl,omitempty"`
	Duration json.RawMessage `json:"duration,omitempty"`
	Seed     json.RawMessage `json:"seed,omitempty"`
	BPM      json.RawMessage `json:"bpm,omitempty"`
	KeyScale json.RawMessage `json:"key_scale,omitempty"`
	Model    string          `json:"model,omitempty"`
	Format   string          `json:"format,omitempty"`

	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
