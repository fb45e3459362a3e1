package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// consoleWriter renders "15:04:05 INF [pipeline] message key=value".
// The component is lifted out of the fields into its own column.
func consoleWriter(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:           w,
		NoColor:       noColor,
		TimeFormat:    "15:04:05",
		PartsOrder:    []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, FieldComponent, zerolog.MessageFieldName},
		FieldsExclude: []string{FieldComponent},
		FormatPartValueByName: func(v any, _ string) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("[%v]", v)
		},
	}
}
