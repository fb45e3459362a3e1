package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kbukum/vidscribe/errors"
	"github.com/kbukum/vidscribe/validation"
)

// The audioformat tag accepts anything ParseFormat does.
func init() {
	validation.RegisterRule("audioformat", "must be wav or mp3", func(s string) bool {
		_, err := ParseFormat(s)
		return err == nil
	})
}

// Format is a target audio container.
type Format string

const (
	FormatWAV Format = "wav"
	FormatMP3 Format = "mp3"
)

// Codec names as ffmpeg encoders and as ffprobe reports them.
const (
	CodecPCM16LE    = "pcm_s16le"
	CodecLibMP3Lame = "libmp3lame"
	CodecMP3        = "mp3"
)

// Formats lists the supported target formats.
func Formats() []string {
	return []string{string(FormatWAV), string(FormatMP3)}
}

// ParseFormat converts s into a Format. Matching ignores case and a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatWAV, FormatMP3:
		return f, nil
	}
	return "", errors.InvalidInput("audio_format", fmt.Sprintf("unsupported audio format %q (want wav or mp3)", s))
}

// Codec returns the ffmpeg encoder for the format.
func (f Format) Codec() string {
	if f == FormatWAV {
		return CodecPCM16LE
	}
	return CodecLibMP3Lame
}

// StoredCodec returns the codec name ffprobe reports for files in this format.
func (f Format) StoredCodec() string {
	if f == FormatWAV {
		return CodecPCM16LE
	}
	return CodecMP3
}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string { return "." + string(f) }

func (f Format) String() string { return string(f) }

// DefaultOutputPath returns videoPath with its extension replaced by the format's.
func DefaultOutputPath(videoPath string, f Format) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + f.Ext()
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
