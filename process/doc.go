// Package process runs ffmpeg, ffprobe and whisper as subprocesses and
// captures their output.
//
// Every subprocess leads its own process group. Cancelling the context
// sends SIGTERM to the group and SIGKILL once the grace period is over, so
// helpers a tool spawned die with it.
//
// Callers take a Runner. Executor is the real one; tests pass a RunnerFunc.
package process
