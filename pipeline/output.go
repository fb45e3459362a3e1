package pipeline

import "github.com/kbukum/vidscribe/transcription"

// ArtifactAudio is the Files key of a retained audio file. Transcripts are
// keyed by engine name.
const ArtifactAudio = "audio"

// Output is the result of a successful run.
type Output struct {
	// RunID identifies the run in logs and traces.
	RunID string `json:"run_id"`
	// Results holds one result per engine, keyed by engine name.
	Results map[string]*transcription.Result `json:"results"`
	// Files maps artifact names to the paths retained on disk.
	Files map[string]string `json:"files"`
}
