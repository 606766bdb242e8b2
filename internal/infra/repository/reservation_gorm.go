package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

func (r *ReservationGormRepository) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *ReservationGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &service, nil
}

func (r *ReservationGormRepository) GetStylist(
	ctx context.Context,
	stylistID uint,
) (*models.Stylist, error) {

	var stylist models.Stylist
	if err := r.db.WithContext(ctx).First(&stylist, stylistID).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &stylist, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ReservationGormRepository) GetActiveWorkingHours(
	ctx context.Context,
	stylistID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("stylist_id = ? AND weekday = ? AND active = ?", stylistID, weekday, true).
		First(&wh).Error; err != nil {
		return nil, notFoundAsNil(err)
	}

	return &wh, nil
}

func (r *ReservationGormRepository) ListBusyReservations(
	ctx context.Context,
	stylistID uint,
	date string,
) ([]models.Reservation, error) {

	q := r.db.WithContext(ctx)
	if r.isPostgres() {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	reservations := []models.Reservation{}
	if err := q.
		Where(
			"stylist_id = ? AND booking_date = ? AND status IN ?",
			stylistID, date, domain.ActiveStatuses(),
		).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return reservations, nil
}

// --------------------------------------------------
// Reservation (create)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// UpsertClientByPhone inserts a client with one visit, or bumps the visit
// count of the existing row. A stored email is never overwritten.
func (r *ReservationGormRepository) UpsertClientByPhone(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	now := time.Now()
	client := models.Client{
		Name:        name,
		Phone:       phone,
		Email:       email,
		TotalVisits: 1,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "phone"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_visits": gorm.Expr("clients.total_visits + 1"),
				"email":        gorm.Expr("CASE WHEN clients.email IS NULL OR clients.email = '' THEN excluded.email ELSE clients.email END"),
				"updated_at":   now,
			}),
		}).
		Create(&client).Error; err != nil {
		return nil, err
	}

	var stored models.Client
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&stored).Error; err != nil {
		return nil, err
	}

	return &stored, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

// WithinTx opens a transaction and, on PostgreSQL, takes a transaction scoped
// advisory lock on (stylist, date) before running fn. SQLite serializes
// writers on its own.
func (r *ReservationGormRepository) WithinTx(
	ctx context.Context,
	stylistID uint,
	date string,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(?, ?)",
				int32(stylistID), dateLockKey(date),
			).Error; err != nil {
				return err
			}
		}
		return fn(&ReservationGormRepository{db: tx})
	})
}

// dateLockKey turns YYYY-MM-DD into yyyymmdd.
func dateLockKey(date string) int32 {
	n, err := strconv.Atoi(strings.ReplaceAll(date, "-", ""))
	if err != nil {
		return 0
	}
	return int32(n)
}

// --------------------------------------------------
// Reservation (state change / reads)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	reservationID uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, reservationID).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ReservationGormRepository) ListReservationsByDate(
	ctx context.Context,
	date string,
) ([]models.Reservation, error) {
	return r.ListReservationsForPeriod(ctx, date, date)
}

func (r *ReservationGormRepository) ListReservationsForPeriod(
	ctx context.Context,
	from string,
	to string,
) ([]models.Reservation, error) {

	reservations := []models.Reservation{}

	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Stylist").
		Where("booking_date >= ? AND booking_date <= ?", from, to).
		Order("booking_date ASC").
		Order("start_time ASC").
		Order("stylist_id ASC").
		Find(&reservations).Error

	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationGormRepository) ListRecentReservations(
	ctx context.Context,
	limit int,
) ([]models.Reservation, error) {

	reservations := []models.Reservation{}

	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Stylist").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&reservations).Error

	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
