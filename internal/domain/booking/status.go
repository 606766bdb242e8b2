package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses are the statuses that occupy a stylist's time.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrValidation(CodeInvalidState, "La reserva no puede confirmarse en su estado actual")
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.Blocking() {
		return httperr.ErrValidation(CodeInvalidState, "La reserva ya está cancelada")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
