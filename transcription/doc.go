// Package transcription defines the Transcriber interface and the result
// types shared by speech-to-text engines.
//
// It follows the provider pattern: every engine is a provider.Provider with a
// Transcribe method, engines are kept in an ordered registry, and
// AsRequestResponse adapts an engine to provider.RequestResponse so the
// logging, metrics and tracing middleware can wrap it.
//
// # Engines
//
//   - transcription/whisper: local whisper CLI
//   - transcription/deepgram: Deepgram pre-recorded audio API
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	_ = reg.Register(whisper.New(cfg.Whisper))
//	for _, t := range reg.All() {
//		result, err := t.Transcribe(ctx, transcription.Request{AudioPath: path})
//	}
package transcription
