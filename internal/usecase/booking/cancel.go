package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// CancelReservation frees the reservation's interval for new bookings.
type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	reservationID uint,
) (*models.Reservation, error) {

	r, err := uc.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, httperr.ErrNotFound(domain.CodeReservationNotFound, "Reserva no encontrada")
	}

	if err := domain.Cancel(r, time.Now().In(uc.loc)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, r); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   audit.ActionReservationCancelled,
		Entity:   "reservation",
		EntityID: audit.EntityRef(r.ID),
		Metadata: map[string]any{
			"fecha":       r.Date,
			"hora_inicio": r.StartTime,
		},
	})

	return r, nil
}
