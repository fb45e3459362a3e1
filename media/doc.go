// Package media extracts audio tracks from video files with ffmpeg.
//
// Extraction runs the ffmpeg binary through a process.Runner so tests can
// substitute the tool. Two target formats are supported: wav (pcm_s16le) and
// mp3 (libmp3lame). StreamCodec reports the codec of an audio file's first audio
// stream using ffprobe.
//
//	ex := media.NewExtractor(media.Config{})
//	audio, err := ex.Extract(ctx, "videos/demo.mp4", "out/demo.wav", media.FormatWAV)
package media
