package pipeline

import (
	"context"
	"log/slog"

	"github.com/acessolab/a11yscan/internal/model"
)

// Step is one stage of an evaluation. Steps run in sequence and each
// receives the report accumulated by the previous steps.
type Step interface {
	// Do executes the step. Non-critical problems should be recorded on
	// the report and return nil; a returned error stops the pipeline
	// unless it was configured to continue.
	Do(ctx context.Context, report *model.Report) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of evaluation steps in order.
type Pipeline struct {
	steps []Step

	logger *slog.Logger

	// continueOnError keeps executing steps after one fails. The
	// default stops on the first error because a failed fetch leaves
	// nothing for the later steps to analyze.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps the pipeline running after a step fails.
// Failed steps are logged and recorded on the report.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline. Add steps with AddStep or AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step. Steps execute in the order they were added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence, checking for cancellation before
// each one. The first error is recorded on the report; whether execution
// continues depends on WithContinueOnError.
func (p *Pipeline) Execute(ctx context.Context, report *model.Report) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("evaluation cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			report.Error = ctx.Err().Error()
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"url", report.URL,
		)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"url", report.URL,
				"error", err,
			)

			report.Error = err.Error()

			if !p.continueOnError {
				return err
			}
			continue
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"url", report.URL,
		)
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
