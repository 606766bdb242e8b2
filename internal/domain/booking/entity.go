package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(r *models.Reservation, now time.Time) error {
	if err := CanConfirm(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusConfirmed)
	r.ConfirmedAt = &now
	return nil
}

func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCancelled)
	r.CancelledAt = &now
	return nil
}
