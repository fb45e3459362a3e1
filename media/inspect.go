package media

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/process"
)

// StreamCodec returns the codec name of the first audio stream in path.
func (e *Extractor) StreamCodec(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", errors.NotFound("Audio file", path)
	}
	result, err := e.runner.Run(ctx, process.Command{
		Binary: e.config.FFprobeBinary,
		Args: []string{
			"-v", "error",
			"-select_streams", "a:0",
			"-show_entries", "stream=codec_name",
			"-of", "default=noprint_wrappers=1:nokey=1",
			path,
		},
	})
	if err != nil {
		return "", errors.ExtractionFailed(result.StderrText(), err).WithDetail("path", path)
	}
	codec := strings.TrimSpace(string(result.Stdout))
	if i := strings.IndexByte(codec, '\n'); i >= 0 {
		codec = strings.TrimSpace(codec[:i])
	}
	if codec == "" {
		return "", errors.ExtractionFailed("", fmt.Errorf("no audio stream in %s", path)).WithDetail("path", path)
	}
	return codec, nil
}

// Verify checks that the audio file carries the codec expected for its format.
func (e *Extractor) Verify(ctx context.Context, audio Audio) error {
	codec, err := e.StreamCodec(ctx, audio.Path)
	if err != nil {
		return err
	}
	if want := audio.Format.StoredCodec(); codec != want {
		return errors.ExtractionFailed("", fmt.Errorf("audio codec is %s, want %s", codec, want)).
			WithDetails(map[string]any{"path": audio.Path, "codec": codec})
	}
	return nil
}
