package pipeline

import (
	"context"
	"log/slog"

	"github.com/designlens/designlens/internal/dom"
	"github.com/designlens/designlens/internal/model"
)

// Step defines the interface that all per-page analysis steps implement.
// Steps are executed in sequence, each populating part of the page result.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., priority, dependencies)
type Step interface {
	// Do executes the step against one parsed page, recording its output
	// in result. Non-critical problems (unparseable colors, odd markup)
	// are skipped per element and never abort the page walk; an error
	// return is reserved for failures that invalidate the whole page.
	Do(ctx context.Context, page *dom.Document, result *model.PageResult) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes analysis steps against one page at a time.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution even
// when a step fails. Failed steps are logged but subsequent steps still
// run, so a broken stylesheet doesn't cost the page its style inventory.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps are added with AddStep or AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps against one page in sequence.
// Cancellation is checked between steps: a page analysis either completes
// its full element walk or is abandoned wholesale.
func (p *Pipeline) Execute(ctx context.Context, page *dom.Document, result *model.PageResult) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"page", page.URL,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"page", page.URL,
		)

		if err := step.Do(ctx, page, result); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"page", page.URL,
				"error", err,
			)
			if !p.continueOnError {
				return err
			}
		}
	}

	return nil
}
