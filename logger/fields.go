package logger

import "time"

// Field keys shared across packages.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldStage     = "stage"
	FieldEngine    = "engine"
	FieldModel     = "model"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a field map from alternating keys and values. A trailing
// key without a value and non-string keys are dropped.
//
//	log.Info("audio extracted", logger.Fields(logger.FieldPath, out))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// MergeWithError sets the error field on fields, allocating if nil.
func MergeWithError(fields map[string]any, err error) map[string]any {
	if fields == nil {
		fields = map[string]any{}
	}
	fields[FieldError] = err.Error()
	return fields
}

// MergeWithDuration sets duration_ms on fields, allocating if nil.
func MergeWithDuration(fields map[string]any, d time.Duration) map[string]any {
	if fields == nil {
		fields = map[string]any{}
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
