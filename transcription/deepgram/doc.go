// Package deepgram transcribes audio with the Deepgram pre-recorded audio API.
//
// A Transcriber uploads the raw audio bytes to /v1/listen in one request and
// normalizes the first channel's first alternative into a
// transcription.Result. Speaker attribution is kept only when diarization was
// requested. Failures map onto the application error taxonomy through
// httpclient.ToAppError; there are no retries.
package deepgram
