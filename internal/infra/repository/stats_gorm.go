package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type GeneralStats struct {
	ConfirmedUpcoming int64 `json:"reservas_confirmadas"`
	PendingUpcoming   int64 `json:"reservas_pendientes"`
	ActiveClients     int64 `json:"total_clientes"`
	VIPClients        int64 `json:"clientes_vip"`
	ActiveStylists    int64 `json:"peluqueros_activos"`
	ActiveServices    int64 `json:"servicios_activos"`
}

type DailyRevenue struct {
	Date    string  `json:"fecha"`
	Revenue float64 `json:"daily_revenue"`
}

// StatsGormRepository aggregates dashboard figures. Revenue only counts
// confirmed reservations.
type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) General(ctx context.Context, today string) (GeneralStats, error) {
	var s GeneralStats
	db := r.db.WithContext(ctx)

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&s.ConfirmedUpcoming, db.Model(&models.Reservation{}).Where("status = ? AND booking_date >= ?", string(domain.StatusConfirmed), today)},
		{&s.PendingUpcoming, db.Model(&models.Reservation{}).Where("status = ? AND booking_date >= ?", string(domain.StatusPending), today)},
		{&s.ActiveClients, db.Model(&models.Client{}).Where("active = ?", true)},
		{&s.VIPClients, db.Model(&models.Client{}).Where("vip = ?", true)},
		{&s.ActiveStylists, db.Model(&models.Stylist{}).Where("active = ?", true)},
		{&s.ActiveServices, db.Model(&models.Service{}).Where("active = ?", true)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return GeneralStats{}, err
		}
	}

	return s, nil
}

func (r *StatsGormRepository) Revenue(ctx context.Context, from, to string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("COALESCE(SUM(final_price), 0)").
		Where("booking_date BETWEEN ? AND ? AND status = ?", from, to, string(domain.StatusConfirmed)).
		Scan(&total).Error
	return total, err
}

func (r *StatsGormRepository) DailyRevenue(ctx context.Context, from, to string) ([]DailyRevenue, error) {
	out := []DailyRevenue{}
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("booking_date AS date, COALESCE(SUM(final_price), 0) AS revenue").
		Where("booking_date BETWEEN ? AND ? AND status = ?", from, to, string(domain.StatusConfirmed)).
		Group("booking_date").
		Order("booking_date ASC").
		Scan(&out).Error
	return out, err
}
