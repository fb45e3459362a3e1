package deepgram

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/httpclient"
	"github.com/kbukum/vidscribe/logger"
	"github.com/kbukum/vidscribe/transcription"
	"github.com/kbukum/vidscribe/version"
)

const (
	serviceName = "deepgram"
	listenPath  = "/v1/listen"
)

var _ transcription.Transcriber = (*Transcriber)(nil)

var contentTypes = map[string]string{
	".wav": "audio/wav",
	".mp3": "audio/mpeg",
}

// Transcriber submits audio files to Deepgram.
type Transcriber struct {
	config Config
	client *httpclient.Client
	log    *logger.Logger
}

// New creates a Deepgram Transcriber. Unset config fields take their defaults.
func New(cfg Config) (*Transcriber, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: version.UserAgent(),
	})
	if err != nil {
		return nil, err
	}
	return &Transcriber{config: cfg, client: client, log: logger.Get("deepgram")}, nil
}

// Name returns the engine name.
func (t *Transcriber) Name() string { return transcription.EngineDeepgram }

// IsAvailable reports whether a credential is configured.
func (t *Transcriber) IsAvailable(_ context.Context) bool {
	return t.config.APIKey != ""
}

// Transcribe uploads req.AudioPath and normalizes the response. The request's
// APIKey and Language override the configured ones; its Model names a local
// tier and is not sent.
func (t *Transcriber) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	audio, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, errors.NotFound("Audio file", req.AudioPath)
	}
	apiKey := cmp.Or(req.APIKey, t.config.APIKey)
	if apiKey == "" {
		return nil, errors.Unauthorized("Deepgram API key is not set.")
	}
	language := cmp.Or(req.Language, t.config.Language)

	log := t.log.WithContext(ctx)
	log.Info("submitting audio", logger.Fields(
		logger.FieldPath, req.AudioPath,
		"bytes", len(audio),
		"diarize", t.config.Diarize,
		"api_key", maskKey(apiKey),
	))

	start := time.Now()
	resp, err := t.client.Do(ctx, httpclient.Request{
		Method:      http.MethodPost,
		Path:        listenPath,
		Query:       t.query(language),
		ContentType: contentType(req.AudioPath),
		Body:        audio,
		Auth:        httpclient.TokenAuth(apiKey),
	})
	if err != nil {
		return nil, httpclient.ToAppError(err, serviceName)
	}

	var body response
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, errors.ExternalServiceError(serviceName, fmt.Errorf("decode response: %w", err))
	}
	if len(body.Results.Channels) == 0 || len(body.Results.Channels[0].Alternatives) == 0 {
		return nil, errors.ExternalServiceError(serviceName, fmt.Errorf("response has no channel alternatives"))
	}

	ch := body.Results.Channels[0]
	res := toResult(ch, ch.Alternatives[0], language, t.config.Diarize)
	res.Duration = time.Since(start)
	log.Info("transcription complete", logger.MergeWithDuration(logger.Fields(
		"language", res.Language,
		"words", len(res.Words),
		"speakers", len(res.Speakers),
	), res.Duration))
	return res, nil
}

func (t *Transcriber) query(language string) url.Values {
	q := url.Values{}
	q.Set("model", t.config.Model)
	q.Set("smart_format", strconv.FormatBool(t.config.smartFormat()))
	q.Set("diarize", strconv.FormatBool(t.config.Diarize))
	q.Set("punctuate", strconv.FormatBool(t.config.punctuate()))
	if t.config.Tier != "" {
		q.Set("tier", t.config.Tier)
	}
	if language != "" {
		q.Set("language", language)
	}
	return q
}

// maskKey keeps the first four characters of a credential for log output.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "***"
	}
	return key[:4] + "***"
}

func contentType(path string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "application/octet-stream"
}
