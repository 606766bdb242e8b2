package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestStats(t *testing.T) {
	gdb := setupDB(t)
	stylist, service := seed(t, gdb)
	ctx := context.Background()

	rows := []models.Reservation{
		{Date: "2025-06-02", StartTime: "10:00", EndTime: "11:00", Status: "confirmed", FinalPrice: 1000},
		{Date: "2025-06-02", StartTime: "12:00", EndTime: "13:00", Status: "confirmed", FinalPrice: 500},
		{Date: "2025-06-03", StartTime: "10:00", EndTime: "11:00", Status: "pending", FinalPrice: 700},
		{Date: "2025-06-04", StartTime: "10:00", EndTime: "11:00", Status: "confirmed", FinalPrice: 300},
		{Date: "2025-06-04", StartTime: "12:00", EndTime: "13:00", Status: "cancelled", FinalPrice: 900},
	}
	for _, r := range rows {
		r.ClientName, r.ClientPhone = "X", "1"
		r.StylistID, r.ServiceID = stylist.ID, service.ID
		require.NoError(t, gdb.Create(&r).Error)
	}
	require.NoError(t, gdb.Create(&models.Client{Name: "A", Phone: "1", Active: true, VIP: true}).Error)
	require.NoError(t, gdb.Create(&models.Client{Name: "B", Phone: "2", Active: false}).Error)

	repo := NewStatsGormRepository(gdb)

	general, err := repo.General(ctx, "2025-06-03")
	require.NoError(t, err)
	assert.EqualValues(t, 1, general.ConfirmedUpcoming)
	assert.EqualValues(t, 1, general.PendingUpcoming)
	assert.EqualValues(t, 1, general.ActiveClients)
	assert.EqualValues(t, 1, general.VIPClients)
	assert.EqualValues(t, 1, general.ActiveStylists)
	assert.EqualValues(t, 1, general.ActiveServices)

	total, err := repo.Revenue(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, 1800.0, total)

	daily, err := repo.DailyRevenue(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, []DailyRevenue{
		{Date: "2025-06-02", Revenue: 1500},
		{Date: "2025-06-04", Revenue: 300},
	}, daily)

	empty, err := repo.Revenue(ctx, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestClientVIPColumn(t *testing.T) {
	gdb := setupDB(t)

	assert.True(t, gdb.Migrator().HasColumn(&models.Client{}, "vip"))
	assert.False(t, gdb.Migrator().HasColumn(&models.Client{}, "v_ip"))

	require.NoError(t, gdb.Create(&models.Client{Name: "A", Phone: "1", Active: true, VIP: true}).Error)

	general, err := NewStatsGormRepository(gdb).General(context.Background(), "2025-06-03")
	require.NoError(t, err)
	assert.EqualValues(t, 1, general.VIPClients)
}
