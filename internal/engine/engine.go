// Package engine решает, допустима ли операция над бронированием:
// лимит частоты, затем цепочка валидации, затем граф статусов.
// Движок ничего не сохраняет, решение применяет вызывающий слой.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/ratelimit"
	"github.com/m04kA/SMC-BookingEngine/internal/validation"
)

type Engine struct {
	limiter      RateLimiter
	validator    Validator
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// Option настраивает Engine
type Option func(*Engine)

// WithTimeProvider replaces the wall clock
func WithTimeProvider(tp TimeProvider) Option {
	return func(e *Engine) {
		e.timeProvider = tp
	}
}

// WithMetrics records decision outcomes
func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func New(limiter RateLimiter, validator Validator, logger Logger, opts ...Option) *Engine {
	e := &Engine{
		limiter:      limiter,
		validator:    validator,
		metrics:      nopMetrics{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process runs the whole pipeline for one request: Admit, then Decide.
// Errors are *ratelimit.LimitError, *validation.Error or *domain.TransitionError for
// rejected requests; anything else is a caller or infrastructure fault.
func (e *Engine) Process(ctx context.Context, req *Request) (*Decision, error) {
	spec, err := lookup(req.Operation, req.Caller)
	if err != nil {
		return nil, err
	}

	if outcome, err := e.admit(ctx, req.Operation, req.Caller, spec); err != nil {
		e.metrics.ObserveDecision(req.Operation.String(), outcome)
		return nil, err
	}

	decision, outcome, err := e.decide(req, spec)
	e.metrics.ObserveDecision(req.Operation.String(), outcome)
	return decision, err
}

// Admit counts the request against the operation's rate limit tier.
// Callers that must load the booking before Decide call Admit first, so throttled
// requests never reach storage or validation.
func (e *Engine) Admit(ctx context.Context, op domain.Operation, caller string) error {
	spec, err := lookup(op, caller)
	if err != nil {
		return err
	}

	outcome, err := e.admit(ctx, op, caller, spec)
	if err != nil {
		e.metrics.ObserveDecision(op.String(), outcome)
	}
	return err
}

// Decide runs the validation chain and the state machine without touching the rate limit
func (e *Engine) Decide(req *Request) (*Decision, error) {
	spec, err := lookup(req.Operation, req.Caller)
	if err != nil {
		return nil, err
	}

	decision, outcome, err := e.decide(req, spec)
	e.metrics.ObserveDecision(req.Operation.String(), outcome)
	return decision, err
}

func lookup(op domain.Operation, caller string) (operationSpec, error) {
	spec, ok := operations[op]
	if !ok {
		return operationSpec{}, fmt.Errorf("%w: %s", validation.ErrUnknownOperation, op)
	}
	if caller == "" {
		return operationSpec{}, ErrMissingCaller
	}
	return spec, nil
}

func (e *Engine) admit(ctx context.Context, op domain.Operation, caller string, spec operationSpec) (string, error) {
	if _, err := e.limiter.Allow(ctx, caller, spec.tier); err != nil {
		if errors.Is(err, ratelimit.ErrRateLimited) {
			e.logger.Warn("Engine: %s rate limited: tier=%s", op, spec.tier)
			return OutcomeRateLimited, err
		}
		e.logger.Error("Engine: %s rate limit check failed: %v", op, err)
		return OutcomeError, fmt.Errorf("%w: rate limit: %v", ErrInternal, err)
	}
	return OutcomeAccepted, nil
}

func (e *Engine) decide(req *Request, spec operationSpec) (*Decision, string, error) {
	op := req.Operation

	// 1. Цепочка валидации (санитайзеры внутри)
	now := e.timeProvider.Now()

	var extra []validation.CrossRule
	if spec.capsRefund && req.Booking != nil {
		extra = append(extra, validation.NotAbove(validation.FieldRefundAmount, req.Booking.TotalAmount))
	}

	values, err := e.validator.Validate(op, req.Payload, now, extra...)
	if err != nil {
		if errors.Is(err, validation.ErrValidation) {
			e.logger.Warn("Engine: %s validation failed: %v", op, err)
			return nil, OutcomeInvalid, err
		}
		e.logger.Error("Engine: %s validator failed: %v", op, err)
		return nil, OutcomeError, fmt.Errorf("%w: validation: %v", ErrInternal, err)
	}

	decision := &Decision{
		Operation: op,
		Values:    values,
	}
	decision.BookingID, _ = values.String(validation.FieldBookingID)

	// 2. Операции без существующего бронирования
	if !spec.existing {
		if op == domain.OpCreate {
			requiresPayment, _ := values.Bool(validation.FieldRequiresPayment)
			decision.To = domain.InitialStatus(requiresPayment)
			decision.ChangesStatus = true
		}
		return decision, OutcomeAccepted, nil
	}

	if req.Booking == nil {
		return nil, OutcomeError, ErrBookingRequired
	}
	if req.Booking.ID != decision.BookingID {
		return nil, OutcomeError, fmt.Errorf("%w: snapshot=%s, requested=%s", ErrBookingMismatch, req.Booking.ID, decision.BookingID)
	}

	current := req.Booking.Status
	decision.From = current
	decision.To = current

	// 3. Граф статусов
	if !spec.transition {
		if !domain.CanReschedule(current) {
			e.logger.Warn("Engine: %s rejected for booking=%s in status %s", op, decision.BookingID, current)
			return nil, OutcomeInvalidTransition, &domain.TransitionError{
				Operation: op.String(),
				Current:   current,
				Requested: current,
			}
		}
		return decision, OutcomeAccepted, nil
	}

	target := spec.target
	if target == "" {
		status, _ := values.String(validation.FieldStatus)
		target = domain.BookingStatus(status)
	}

	if err := domain.Transition(current, target); err != nil {
		var tErr *domain.TransitionError
		if errors.As(err, &tErr) {
			tErr.Operation = op.String()
		}
		e.logger.Warn("Engine: %s rejected for booking=%s: %v", op, decision.BookingID, err)
		return nil, OutcomeInvalidTransition, err
	}

	decision.To = target
	decision.ChangesStatus = true
	return decision, OutcomeAccepted, nil
}
