package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type ListReservationsByDate struct {
	repo domain.Repository
}

func NewListReservationsByDate(
	repo domain.Repository,
) *ListReservationsByDate {
	return &ListReservationsByDate{
		repo: repo,
	}
}

func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.ReservationListDTO, error) {

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.ErrValidation(domain.CodeInvalidDateOrTime, "Fecha inválida")
	}

	reservations, err := uc.repo.ListReservationsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return dto.NewReservationList(reservations), nil
}

// ListReservationsForPeriod covers the inclusive range [from, to].
type ListReservationsForPeriod struct {
	repo domain.Repository
}

func NewListReservationsForPeriod(
	repo domain.Repository,
) *ListReservationsForPeriod {
	return &ListReservationsForPeriod{
		repo: repo,
	}
}

func (uc *ListReservationsForPeriod) Execute(
	ctx context.Context,
	from string,
	to string,
) ([]dto.ReservationListDTO, error) {

	start, err := time.Parse(domain.DateLayout, from)
	if err != nil {
		return nil, httperr.ErrValidation(domain.CodeInvalidDateOrTime, "Fecha de inicio inválida")
	}
	end, err := time.Parse(domain.DateLayout, to)
	if err != nil {
		return nil, httperr.ErrValidation(domain.CodeInvalidDateOrTime, "Fecha de fin inválida")
	}
	if end.Before(start) {
		return nil, httperr.ErrValidation(domain.CodeInvalidDateOrTime, "El rango de fechas es inválido")
	}

	reservations, err := uc.repo.ListReservationsForPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return dto.NewReservationList(reservations), nil
}

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
)

// ListRecentReservations feeds the dashboard with the latest bookings.
type ListRecentReservations struct {
	repo domain.Repository
}

func NewListRecentReservations(
	repo domain.Repository,
) *ListRecentReservations {
	return &ListRecentReservations{
		repo: repo,
	}
}

// Execute clamps limit into [1, MaxRecentLimit]; zero means DefaultRecentLimit.
func (uc *ListRecentReservations) Execute(
	ctx context.Context,
	limit int,
) ([]dto.ReservationListDTO, error) {

	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	reservations, err := uc.repo.ListRecentReservations(ctx, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewReservationList(reservations), nil
}
