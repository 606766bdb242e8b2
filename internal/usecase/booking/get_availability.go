package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute recomputes the slots from storage on every call.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	if in.StylistID == 0 || in.Date.IsZero() {
		return nil, httperr.ErrValidation(domain.CodeMissingReservationData, "Peluquero y fecha son obligatorios")
	}
	if in.DurationMin <= 0 || in.DurationMin > domain.MaxDurationMin {
		return nil, httperr.ErrValidation(domain.CodeInvalidDuration, "La duración debe estar entre 1 y 1440 minutos")
	}

	wh, err := uc.repo.GetActiveWorkingHours(ctx, in.StylistID, domain.Weekday(in.Date))
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return []domain.Slot{}, nil
	}

	reservations, err := uc.repo.ListBusyReservations(ctx, in.StylistID, in.Date.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}

	return domain.ComputeSlots(wh, domain.BusyIntervals(reservations), in.DurationMin), nil
}
