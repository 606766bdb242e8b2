package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ConfirmReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewConfirmReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *ConfirmReservation {
	return &ConfirmReservation{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

func (uc *ConfirmReservation) Execute(
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

	if err := domain.Confirm(r, time.Now().In(uc.loc)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, r); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   audit.ActionReservationConfirmed,
		Entity:   "reservation",
		EntityID: audit.EntityRef(r.ID),
	})

	return r, nil
}
