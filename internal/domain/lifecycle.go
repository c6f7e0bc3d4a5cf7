package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is matched by every *TransitionError through errors.Is
var ErrInvalidTransition = errors.New("domain: invalid status transition")

// TransitionError reports a status change that is absent from the transition graph.
// For operations that do not change status (reschedule) Requested equals Current.
type TransitionError struct {
	Operation string
	Current   BookingStatus
	Requested BookingStatus
}

func (e *TransitionError) Error() string {
	if e.Current == e.Requested && e.Operation != "" {
		return fmt.Sprintf("%s: booking in status %s does not allow %s", ErrInvalidTransition, e.Current, e.Operation)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.Current, e.Requested)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// transitions граф допустимых переходов: to -> множество допустимых from.
// Из терминальных статусов (COMPLETED, CANCELLED, REFUNDED) выходов нет,
// кроме COMPLETED -> REFUNDED.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPendingPayment: {StatusPending},
	StatusConfirmed:      {StatusPending, StatusPendingPayment},
	StatusInProgress:     {StatusConfirmed},
	StatusCompleted:      {StatusInProgress},
	StatusCancelled:      {StatusPending, StatusPendingPayment, StatusConfirmed},
	StatusRefunded:       {StatusCompleted, StatusConfirmed},
}

// CanTransition returns true if from -> to is present in the transition graph
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[to] {
		if allowed == from {
			return true
		}
	}
	return false
}

// Transition authorizes from -> to, returning *TransitionError when it is illegal.
// The requested status is never adjusted to a neighbouring legal one.
func Transition(from, to BookingStatus) error {
	if !from.IsValid() || !to.IsValid() || !CanTransition(from, to) {
		return &TransitionError{Current: from, Requested: to}
	}
	return nil
}

// InitialStatus returns the status a new booking starts in
func InitialStatus(requiresPayment bool) BookingStatus {
	if requiresPayment {
		return StatusPendingPayment
	}
	return StatusPending
}

// CanReschedule returns true if scheduledAt may be changed in this status
func CanReschedule(status BookingStatus) bool {
	return status.IsValid() && !status.IsTerminal()
}
