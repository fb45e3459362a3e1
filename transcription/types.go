package transcription

import "time"

// Engine names double as artifact keys in pipeline output.
const (
	EngineWhisper  = "whisper"
	EngineDeepgram = "deepgram"
)

// Task values.
const (
	TaskTranscribe = "transcribe"
	TaskTranslate  = "translate"
)

// Request is one engine call on an extracted audio file.
type Request struct {
	AudioPath string `json:"audio_path"`
	// Model selects the local model tier. Empty uses the engine default.
	Model string `json:"model,omitempty"`
	// Language is a hint such as "en". Empty lets the engine detect it.
	Language string `json:"language,omitempty"`
	// Task is "transcribe" or "translate" (into English).
	Task string `json:"task,omitempty"`
	// Verbose asks the engine to report progress.
	Verbose bool `json:"verbose,omitempty"`
	// APIKey overrides the configured credential of remote engines.
	APIKey string `json:"-"`
}

// Result is what one engine produced. It is read-only once returned.
type Result struct {
	Engine string `json:"engine"`
	// Text is the full transcript as the engine returned it.
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
	// Language is the hint that was sent, or else the detected language.
	Language string `json:"language,omitempty"`
	// Confidence is the overall confidence, when the engine reports one.
	Confidence *float64 `json:"confidence,omitempty"`
	// Words are word-level timings, when the engine reports them.
	Words []Word `json:"words,omitempty"`
	// Speakers are contiguous speaker turns, populated only for diarized results.
	Speakers []SpeakerTurn `json:"speakers,omitempty"`
	// Duration is the wall-clock time the engine took.
	Duration time.Duration `json:"duration,omitempty"`
}

// Segment is a stretch of the transcript. Times are seconds from the
// start of the audio.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// Word is a single recognized word.
type Word struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	// Speaker is the zero-based speaker index, if diarized.
	Speaker *int `json:"speaker,omitempty"`
}

// SpeakerTurn is a contiguous run of words from one speaker.
type SpeakerTurn struct {
	Speaker int     `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}
