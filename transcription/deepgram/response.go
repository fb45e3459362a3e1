package deepgram

import (
	"strings"

	"github.com/kbukum/vidscribe/transcription"
)

type response struct {
	Metadata struct {
		Duration float64 `json:"duration"`
	} `json:"metadata"`
	Results struct {
		Channels []channel `json:"channels"`
	} `json:"results"`
}

type channel struct {
	DetectedLanguage string        `json:"detected_language"`
	Alternatives     []alternative `json:"alternatives"`
}

type alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Words      []word  `json:"words"`
	Paragraphs *struct {
		Paragraphs []paragraph `json:"paragraphs"`
	} `json:"paragraphs"`
}

type word struct {
	Word           string  `json:"word"`
	PunctuatedWord string  `json:"punctuated_word"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence"`
	Speaker        *int    `json:"speaker"`
}

type paragraph struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Speaker   *int    `json:"speaker"`
	Sentences []struct {
		Text string `json:"text"`
	} `json:"sentences"`
}

// toResult normalizes one alternative. diarize controls whether speaker
// labels from the response are kept.
func toResult(ch channel, alt alternative, language string, diarize bool) *transcription.Result {
	if ch.DetectedLanguage != "" {
		language = ch.DetectedLanguage
	}

	words := make([]transcription.Word, 0, len(alt.Words))
	for _, w := range alt.Words {
		tw := transcription.Word{
			Word:       w.Word,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		}
		if w.PunctuatedWord != "" {
			tw.Word = w.PunctuatedWord
		}
		if diarize && w.Speaker != nil {
			tw.Speaker = w.Speaker
		}
		words = append(words, tw)
	}

	res := &transcription.Result{
		Engine:     transcription.EngineDeepgram,
		Text:       strings.TrimSpace(alt.Transcript),
		Language:   language,
		Confidence: &alt.Confidence,
		Words:      words,
	}
	if diarize {
		res.Speakers = transcription.SpeakerTurns(words)
	}

	switch {
	case alt.Paragraphs != nil && len(alt.Paragraphs.Paragraphs) > 0:
		res.Segments = paragraphSegments(alt.Paragraphs.Paragraphs, diarize)
	case len(res.Speakers) > 0:
		for _, turn := range res.Speakers {
			res.Segments = append(res.Segments, transcription.Segment{
				Start:   turn.Start,
				End:     turn.End,
				Text:    turn.Text,
				Speaker: transcription.SpeakerLabel(turn.Speaker),
			})
		}
	case len(words) > 0:
		res.Segments = []transcription.Segment{{
			Start: words[0].Start,
			End:   words[len(words)-1].End,
			Text:  res.Text,
		}}
	}
	transcription.SortSegments(res.Segments)
	return res
}

func paragraphSegments(paragraphs []paragraph, diarize bool) []transcription.Segment {
	segments := make([]transcription.Segment, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts := make([]string, 0, len(p.Sentences))
		for _, s := range p.Sentences {
			if t := strings.TrimSpace(s.Text); t != "" {
				parts = append(parts, t)
			}
		}
		seg := transcription.Segment{Start: p.Start, End: p.End, Text: strings.Join(parts, " ")}
		if diarize && p.Speaker != nil {
			seg.Speaker = transcription.SpeakerLabel(*p.Speaker)
		}
		segments = append(segments, seg)
	}
	return segments
}
