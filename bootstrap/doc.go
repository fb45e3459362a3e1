// Package bootstrap runs a finite command with a uniform lifecycle.
//
// NewApp applies config defaults, validates the config and initializes the
// root logger. RunTask then runs the OnStart hooks and the OnConfigure
// callbacks, prints the startup summary, executes the task with a context
// that SIGINT and SIGTERM cancel, and finally runs the OnStop hooks within
// the graceful timeout.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.OnStop(shutdownTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := orchestrator.Run(ctx, req)
//	    return err
//	})
package bootstrap
