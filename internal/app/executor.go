package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// Write operations run as Validate → Perform → Verify → Archive → Respond.
// Nothing reaches the store before Verify accepts the built state, so a
// rejected quote is never persisted.
//
//  1. VALIDATE - check the input before any state is built
//  2. PERFORM  - build the new state (normalize, default, timestamp)
//  3. VERIFY   - re-check the built state independently of Perform
//  4. ARCHIVE  - persist the verified state
//  5. RESPOND  - shape the result for the caller

// ExecutionStep names one step of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records the step an operation failed in. It unwraps to the
// step's own error, so domain errors stay visible to errors.Is and errors.As.
type ExecutionError struct {
	Step  ExecutionStep
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Executor runs operations and logs their progress.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. A nil logger means slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation holds the step functions of one write. Nil steps are skipped and
// pass the zero value along.
type Operation[I, P, V, O any] struct {
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

// stepRunner logs and traces each step of a single execution.
type stepRunner struct {
	logger *slog.Logger
	span   trace.Span
}

func (r stepRunner) run(ctx context.Context, step ExecutionStep, fn func() error) error {
	logging.Trace(ctx, r.logger, "step started", slog.String("step", string(step)))

	if err := fn(); err != nil {
		level := slog.LevelError
		if step == StepValidate {
			level = slog.LevelWarn
		}

		r.logger.Log(ctx, level, "step failed", slog.String("step", string(step)), slog.Any("error", err))

		return &ExecutionError{Step: step, Cause: err}
	}

	r.span.AddEvent(string(step))

	return nil
}

// Execute runs op over input. The request-scoped logger in ctx is preferred
// over the executor's own so step logs carry request IDs.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var (
		performed P
		verified  V
		result    O
		zero      O
	)

	logger := exec.logger
	if scoped, ok := logging.Lookup(ctx); ok {
		logger = scoped
	}

	r := stepRunner{
		logger: logger.With(slog.String("operation", op.Name)),
		span:   trace.SpanFromContext(ctx),
	}
	start := time.Now()

	steps := []struct {
		step ExecutionStep
		fn   func() error
	}{
		{StepValidate, func() error {
			if op.Validate == nil {
				return nil
			}

			return op.Validate(ctx, input)
		}},
		{StepPerform, func() (err error) {
			if op.Perform != nil {
				performed, err = op.Perform(ctx, input)
			}

			return err
		}},
		{StepVerify, func() (err error) {
			if op.Verify != nil {
				verified, err = op.Verify(ctx, input, performed)
			}

			return err
		}},
		{StepArchive, func() error {
			if op.Archive == nil {
				return nil
			}

			return op.Archive(ctx, input, verified)
		}},
		{StepRespond, func() (err error) {
			if op.Respond != nil {
				result, err = op.Respond(ctx, input, verified)
			}

			return err
		}},
	}

	for _, s := range steps {
		if err := r.run(ctx, s.step, s.fn); err != nil {
			return zero, err
		}
	}

	r.logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// IsExecutionError reports whether err came out of Execute.
func IsExecutionError(err error) bool {
	_, ok := GetExecutionStep(err)
	return ok
}

// GetExecutionStep returns the step err failed in.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
