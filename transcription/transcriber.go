package transcription

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kbukum/vidscribe/provider"
)

// Transcriber is the interface speech-to-text engines implement.
type Transcriber interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe converts the audio file in req into text.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// AsRequestResponse adapts a Transcriber to provider.RequestResponse so it can
// be wrapped with provider middleware.
func AsRequestResponse(t Transcriber) provider.RequestResponse[Request, *Result] {
	return &requestResponse{t: t}
}

type requestResponse struct {
	t Transcriber
}

func (a *requestResponse) Name() string                         { return a.t.Name() }
func (a *requestResponse) IsAvailable(ctx context.Context) bool { return a.t.IsAvailable(ctx) }

func (a *requestResponse) Execute(ctx context.Context, req Request) (*Result, error) {
	return a.t.Transcribe(ctx, req)
}

// SortSegments orders segments by start time, keeping the relative order of
// segments that start together.
func SortSegments(segments []Segment) {
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
}

// SpeakerTurns groups consecutive words with the same speaker into turns.
// Words without a speaker are skipped.
func SpeakerTurns(words []Word) []SpeakerTurn {
	var turns []SpeakerTurn
	var text []string
	flush := func() {
		if len(turns) > 0 && len(text) > 0 {
			turns[len(turns)-1].Text = strings.Join(text, " ")
		}
		text = text[:0]
	}
	for _, w := range words {
		if w.Speaker == nil {
			continue
		}
		if len(turns) == 0 || turns[len(turns)-1].Speaker != *w.Speaker {
			flush()
			turns = append(turns, SpeakerTurn{Speaker: *w.Speaker, Start: w.Start})
		}
		turns[len(turns)-1].End = w.End
		text = append(text, w.Word)
	}
	flush()
	return turns
}

// SpeakerLabel renders a speaker index as a segment label.
func SpeakerLabel(speaker int) string {
	return fmt.Sprintf("Speaker %d", speaker)
}

// Preview returns at most n characters of text, followed by "..." when the
// text was cut.
func Preview(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}
