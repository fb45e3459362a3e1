package pipeline

import (
	"github.com/kbukum/vidscribe/media"
	"github.com/kbukum/vidscribe/transcription"
	"github.com/kbukum/vidscribe/validation"
)

// Request describes one pipeline run. It is passed by value and not modified
// once the run starts.
type Request struct {
	VideoPath string `json:"video_path" validate:"required,notdir"`
	OutputDir string `json:"output_dir" validate:"required"`
	// AudioFormat is wav or mp3, matched as media.ParseFormat does.
	AudioFormat string `json:"audio_format" validate:"required,audioformat"`
	// Model is the local model tier. Empty uses the engine default.
	Model    string `json:"model,omitempty" validate:"omitempty,oneof=tiny base small medium large"`
	Language string `json:"language,omitempty"`
	Task     string `json:"task,omitempty" validate:"omitempty,oneof=transcribe translate"`
	// APIKey overrides the remote engine's configured credential.
	APIKey string `json:"-"`
}

// Validate checks the request, returning INVALID_INPUT with per-field details.
func (r Request) Validate() error {
	return validation.Validate(r)
}

// transcriptionRequest builds the engine request for audio.
func (r Request) transcriptionRequest(audio media.Audio) transcription.Request {
	return transcription.Request{
		AudioPath: audio.Path,
		Model:     r.Model,
		Language:  r.Language,
		Task:      r.Task,
		APIKey:    r.APIKey,
	}
}

// FromConfig builds a Request from the configured defaults.
func FromConfig(cfg Config) Request {
	cfg.ApplyDefaults()
	return Request{
		VideoPath:   cfg.VideoPath,
		OutputDir:   cfg.OutputDir,
		AudioFormat: cfg.AudioFormat,
	}
}
