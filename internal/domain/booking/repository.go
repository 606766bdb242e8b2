package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetStylist(
		ctx context.Context,
		stylistID uint,
	) (*models.Stylist, error)

	// -------- Availability --------
	GetActiveWorkingHours(
		ctx context.Context,
		stylistID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListBusyReservations(
		ctx context.Context,
		stylistID uint,
		date string,
	) ([]models.Reservation, error)

	// -------- Reservation (create) --------
	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	// -------- Client --------
	UpsertClientByPhone(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// WithinTx runs fn against a repository bound to one transaction that
	// is serialized with every other WithinTx for the same stylist and date.
	WithinTx(
		ctx context.Context,
		stylistID uint,
		date string,
		fn func(tx Repository) error,
	) error

	// -------- Reservation (state change / reads) --------
	GetReservation(
		ctx context.Context,
		reservationID uint,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	ListReservationsByDate(
		ctx context.Context,
		date string,
	) ([]models.Reservation, error)

	ListReservationsForPeriod(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Reservation, error)

	// ListRecentReservations returns the newest bookings first.
	ListRecentReservations(
		ctx context.Context,
		limit int,
	) ([]models.Reservation, error)
}
