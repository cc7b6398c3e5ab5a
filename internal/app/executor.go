package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/blog-service/internal/domain"
	"github.com/jsamuelsen/blog-service/internal/platform/logging"
)

// Operations that touch more than one collection run as a fixed sequence of
// steps so that nothing is written before every precondition has been read
// and checked:
//
//   1. VALIDATE  - check the input on its own
//   2. PERFORM   - read whatever the write depends on (e.g. the referenced author)
//   3. VERIFY    - turn what was read into the exact value to store
//   4. ARCHIVE   - write it
//   5. RESPOND   - shape the stored value for the caller
//
// The store offers no multi-document transactions, so the sequence narrows but
// does not close the window between PERFORM and ARCHIVE.

// ExecutionStep names a step of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records the step an operation failed in.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause so domain error helpers keep working.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func stepError(step ExecutionStep, message string, cause error) error {
	return &ExecutionError{Step: step, Message: message, Cause: cause}
}

// Executor runs Operations and logs each step.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. A nil logger falls back to slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation is a write that depends on state read beforehand.
//
// I is the caller's input, P what Perform read, V the value Verify decided to
// store and O what the caller gets back. Nil steps are skipped; a nil
// Archive passes the verified value straight through.
type Operation[I, P, V, O any] struct {
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) (V, error)
	Respond  func(ctx context.Context, input I, archived V) (O, error)
}

type executionContext[I, P, V, O any] struct {
	logger *slog.Logger
	op     Operation[I, P, V, O]
	input  I
}

// logFailure logs caller mistakes at Warn and everything else at Error.
func (e *executionContext[I, P, V, O]) logFailure(ctx context.Context, step ExecutionStep, err error) {
	level := slog.LevelError
	if domain.IsValidation(err) || domain.IsNotFound(err) {
		level = slog.LevelWarn
	}

	e.logger.Log(ctx, level, "operation step failed",
		slog.String("step", string(step)),
		slog.Any("error", err),
	)
}

func (e *executionContext[I, P, V, O]) runValidate(ctx context.Context) error {
	if e.op.Validate == nil {
		return nil
	}

	if err := e.op.Validate(ctx, e.input); err != nil {
		e.logFailure(ctx, StepValidate, err)
		return stepError(StepValidate, "input validation failed", err)
	}

	e.logger.DebugContext(ctx, "validation passed")

	return nil
}

func (e *executionContext[I, P, V, O]) runPerform(ctx context.Context) (P, error) {
	var zero P

	if e.op.Perform == nil {
		return zero, nil
	}

	performed, err := e.op.Perform(ctx, e.input)
	if err != nil {
		e.logFailure(ctx, StepPerform, err)
		return zero, stepError(StepPerform, "reading dependencies failed", err)
	}

	e.logger.DebugContext(ctx, "dependencies read")

	return performed, nil
}

func (e *executionContext[I, P, V, O]) runVerify(ctx context.Context, performed P) (V, error) {
	var zero V

	if e.op.Verify == nil {
		return zero, nil
	}

	verified, err := e.op.Verify(ctx, e.input, performed)
	if err != nil {
		e.logFailure(ctx, StepVerify, err)
		return zero, stepError(StepVerify, "verification failed", err)
	}

	e.logger.DebugContext(ctx, "result verified")

	return verified, nil
}

func (e *executionContext[I, P, V, O]) runArchive(ctx context.Context, verified V) (V, error) {
	if e.op.Archive == nil {
		return verified, nil
	}

	archived, err := e.op.Archive(ctx, e.input, verified)
	if err != nil {
		e.logFailure(ctx, StepArchive, err)

		var zero V

		return zero, stepError(StepArchive, "write failed", err)
	}

	e.logger.DebugContext(ctx, "state archived")

	return archived, nil
}

func (e *executionContext[I, P, V, O]) runRespond(ctx context.Context, archived V) (O, error) {
	var zero O

	if e.op.Respond == nil {
		return zero, nil
	}

	result, err := e.op.Respond(ctx, e.input, archived)
	if err != nil {
		e.logFailure(ctx, StepRespond, err)
		return zero, stepError(StepRespond, "building response failed", err)
	}

	return result, nil
}

// Execute runs op against input. The first failing step stops the run and
// its error is returned wrapped in an *ExecutionError.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	logger, ok := logging.Lookup(ctx)
	if !ok {
		logger = exec.logger
	}

	logger = logger.With(slog.String("operation", op.Name))
	start := time.Now()

	ec := &executionContext[I, P, V, O]{
		logger: logger,
		op:     op,
		input:  input,
	}

	if err := ec.runValidate(ctx); err != nil {
		return zero, err
	}

	performed, err := ec.runPerform(ctx)
	if err != nil {
		return zero, err
	}

	verified, err := ec.runVerify(ctx, performed)
	if err != nil {
		return zero, err
	}

	archived, err := ec.runArchive(ctx, verified)
	if err != nil {
		return zero, err
	}

	result, err := ec.runRespond(ctx, archived)
	if err != nil {
		return zero, err
	}

	logger.InfoContext(ctx, "operation completed",
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}
