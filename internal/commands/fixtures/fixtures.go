// Package fixtures provides recording registries for command wiring tests.
package fixtures

import (
	"errors"

	"github.com/Hilal-Ahmad786/Blogweb/internal/commands"
	command "github.com/goliatone/go-command"
)

// Job is a cron registration captured by a Recorder.
type Job struct {
	Expression string
	Config     command.HandlerConfig
	Run        func() error
}

// Recorder captures command handlers and cron jobs. Setting CommandErr or
// CronErr makes the matching registration fail.
type Recorder struct {
	Handlers   []any
	Jobs       []Job
	CommandErr error
	CronErr    error
}

var _ commands.CommandRegistry = (*Recorder)(nil)

// NewRecorder constructs an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RegisterCommand records handler.
func (r *Recorder) RegisterCommand(handler any) error {
	if r.CommandErr != nil {
		return r.CommandErr
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// Cron returns a registrar recording scheduled jobs. Handlers other than
// func() error are rejected, matching what the scheduler can run.
func (r *Recorder) Cron() commands.CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		if r.CronErr != nil {
			return r.CronErr
		}
		run, ok := handler.(func() error)
		if !ok {
			return errors.New("fixtures: cron handler must be func() error")
		}
		r.Jobs = append(r.Jobs, Job{Expression: cfg.Expression, Config: cfg, Run: run})
		return nil
	}
}

// RunJobs executes every recorded job once and joins their errors.
func (r *Recorder) RunJobs() error {
	var errs []error
	for _, job := range r.Jobs {
		errs = append(errs, job.Run())
	}
	return errors.Join(errs...)
}
