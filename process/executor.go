package process

import (
	"context"

	"github.com/kbukum/vidscribe/logger"
)

// Executor is the Runner used outside tests. It logs every invocation at
// debug level under the tool's name.
type Executor struct {
	log *logger.Logger
}

// NewExecutor returns an Executor logging as tool.
func NewExecutor(tool string) *Executor {
	return &Executor{log: logger.Get(tool)}
}

// Run runs cmd and logs its command line, exit code and duration.
func (e *Executor) Run(ctx context.Context, cmd Command) (*Result, error) {
	log := e.log.WithContext(ctx)
	log.Debug("running command", logger.Fields("command", cmd.String()))

	res, err := Run(ctx, cmd)
	if res == nil {
		return nil, err
	}
	fields := logger.MergeWithDuration(logger.Fields("binary", cmd.Binary, "exit_code", res.ExitCode), res.Duration)
	if err != nil {
		log.Debug("command failed", logger.MergeWithError(fields, err))
	} else {
		log.Debug("command finished", fields)
	}
	return res, err
}
