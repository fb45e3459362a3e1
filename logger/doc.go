// Package logger is vidscribe's structured logging on top of zerolog.
//
// Init installs the root logger from the logging section of the config.
// Packages derive component loggers from it and add the run ID of the
// current pipeline run from the context:
//
//	log := logger.Get("media").WithContext(ctx)
//	log.Info("audio extracted", logger.Fields(logger.FieldPath, out))
//
// Console output is meant for a terminal, json for log shippers.
package logger
