package transcription

import "github.com/kbukum/vidscribe/provider"

// NewRegistry creates an ordered registry of transcribers. Engines run in the
// order they are registered.
func NewRegistry() *provider.Registry[Transcriber] {
	return provider.NewRegistry[Transcriber]()
}
