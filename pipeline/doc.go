// Package pipeline runs one video through extraction, transcription and
// persistence.
//
// An Orchestrator moves each run through a fixed state machine:
//
//	Start → AudioExtracted → Transcribed → Persisted → Done
//
// Any state can fall to Failed. On failure every file produced by the run is
// removed before the error is returned, wrapped as PIPELINE_FAILED with the
// stage and run ID in its details. Removal failures are logged and ignored.
//
// Each run gets a UUID that tags its log lines and its trace span; every stage
// is traced as a child span and timed in the stage duration histogram.
//
//	orch := pipeline.New(media.NewExtractor(cfg.Media), engines)
//	out, err := orch.Run(ctx, pipeline.Request{VideoPath: "videos/demo.mp4", OutputDir: "transcriptions"})
//
// The Orchestrator keeps no per-run state, so concurrent runs with distinct
// output directories are independent.
package pipeline
