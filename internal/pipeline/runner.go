package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blightcli/internal/infrastructure"
)

// Runner executes steps one after another and stops at the first failure
type Runner struct {
	steps   []Step
	logger  *slog.Logger
	metrics *infrastructure.RunMetrics
}

// NewRunner creates a runner over steps. metrics may be nil.
func NewRunner(logger *slog.Logger, metrics *infrastructure.RunMetrics, steps ...Step) *Runner {
	return &Runner{
		steps:   steps,
		logger:  infrastructure.WithComponent(logger, "pipeline"),
		metrics: metrics,
	}
}

// Steps returns the step IDs in execution order
func (r *Runner) Steps() []string {
	ids := make([]string, len(r.steps))
	for i, s := range r.steps {
		ids[i] = s.ID()
	}
	return ids
}

// Run executes every step against state. A cancelled context stops the
// run before the next step starts.
func (r *Runner) Run(ctx context.Context, state *State) error {
	for _, step := range r.steps {
		state.SetStep(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	state.Start()
	r.logger.InfoContext(ctx, "Pipeline started",
		slog.Int("step_count", len(r.steps)))

	for i, step := range r.steps {
		if err := ctx.Err(); err != nil {
			r.logger.WarnContext(ctx, "Pipeline cancelled",
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			state.Cancel(err)
			return err
		}

		stepState := state.GetStep(step.ID())
		stepState.Start()
		r.logger.InfoContext(ctx, "Executing step",
			slog.String("step", step.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(r.steps)))

		err := step.Execute(ctx, state)
		if err != nil {
			stepState.Fail(err)
		} else {
			stepState.Complete()
		}
		r.metrics.StepFinished(step.ID(), stepState.Duration(), err)

		if err != nil {
			r.logger.ErrorContext(ctx, "Step failed",
				slog.String("step", step.ID()),
				slog.Duration("duration", stepState.Duration()),
				slog.String("error", err.Error()))
			wrapped := fmt.Errorf("%s: %w", step.ID(), err)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				state.Cancel(wrapped)
			} else {
				state.Fail(wrapped)
			}
			return wrapped
		}

		r.logger.InfoContext(ctx, "Step completed",
			slog.String("step", step.ID()),
			slog.Duration("duration", stepState.Duration()))
	}

	state.Complete()
	r.metrics.MarkSuccess(time.Now())
	r.logger.InfoContext(ctx, "Pipeline completed",
		slog.Duration("duration", time.Since(state.StartTime)))
	return nil
}
