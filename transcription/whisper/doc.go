// Package whisper transcribes audio with the local whisper command-line tool.
//
// The tool runs in a private temporary directory with JSON output, which is
// parsed into a transcription.Result and then discarded. Model handles are
// resolved once per process and cached.
package whisper
