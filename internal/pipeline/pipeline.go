package pipeline

import (
	"context"
	"log/slog"

	"sirescan/internal/model"
)

// Step is one stage of per-sire processing. Steps run in sequence, each
// receiving the report accumulated by the previous ones.
type Step interface {
	// Do executes the step, mutating the report in place.
	// An error stops the remaining steps for this sire only.
	Do(ctx context.Context, report *model.SireReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes an ordered list of steps for one sire at a time.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline with the given options. Steps are added with
// AddStep and run in insertion order.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence for one sire. Context cancellation is
// checked between steps; the first step error stops the remaining steps
// and is returned to the caller, which decides whether the run continues
// with the next sire.
func (p *Pipeline) Execute(ctx context.Context, report *model.SireReport) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"sire", report.Sire,
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"sire", report.Sire,
		)

		if err := step.Do(ctx, report); err != nil {
			return err
		}
	}
	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
