package pipeline

// State is a position in the run state machine.
type State int

const (
	StateStart State = iota
	StateAudioExtracted
	StateTranscribed
	StatePersisted
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateAudioExtracted:
		return "audio_extracted"
	case StateTranscribed:
		return "transcribed"
	case StatePersisted:
		return "persisted"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stage names, used in logs, span names and error details.
const (
	StageValidate   = "validate"
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StagePersist    = "persist"
	StageCleanup    = "cleanup"
)
