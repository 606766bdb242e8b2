package booking

import (
	"context"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type memState struct {
	services     map[uint]models.Service
	stylists     map[uint]models.Stylist
	workingHours []models.WorkingHours
	reservations []models.Reservation
	clients      []models.Client
	nextID       uint
}

func (s memState) clone() memState {
	c := s
	c.services = make(map[uint]models.Service, len(s.services))
	for k, v := range s.services {
		c.services[k] = v
	}
	c.stylists = make(map[uint]models.Stylist, len(s.stylists))
	for k, v := range s.stylists {
		c.stylists[k] = v
	}
	c.workingHours = append([]models.WorkingHours(nil), s.workingHours...)
	c.reservations = append([]models.Reservation(nil), s.reservations...)
	c.clients = append([]models.Client(nil), s.clients...)
	return c
}

// memRepository keeps the same overlap and phone uniqueness rules as the
// gorm repository. WithinTx serializes callers and rolls back on error.
type memRepository struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	state memState

	upsertErr error
}

var _ domain.Repository = (*memRepository)(nil)

func newMemRepository() *memRepository {
	return &memRepository{
		state: memState{
			services: map[uint]models.Service{},
			stylists: map[uint]models.Stylist{},
			nextID:   1,
		},
	}
}

func (m *memRepository) addService(s models.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.services[s.ID] = s
}

func (m *memRepository) addStylist(s models.Stylist) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.stylists[s.ID] = s
}

func (m *memRepository) addWorkingHours(wh models.WorkingHours) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.workingHours = append(m.state.workingHours, wh)
}

func (m *memRepository) addReservation(r models.Reservation) models.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.state.nextID
	m.state.nextID++
	m.state.reservations = append(m.state.reservations, r)
	return r
}

func (m *memRepository) reservationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.reservations)
}

func (m *memRepository) clientsSnapshot() []models.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Client(nil), m.state.clients...)
}

func (m *memRepository) GetService(_ context.Context, id uint) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memRepository) GetStylist(_ context.Context, id uint) (*models.Stylist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.stylists[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memRepository) GetActiveWorkingHours(_ context.Context, stylistID uint, weekday int) (*models.WorkingHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, wh := range m.state.workingHours {
		if wh.StylistID == stylistID && wh.Weekday == weekday && wh.Active {
			found := wh
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memRepository) ListBusyReservations(_ context.Context, stylistID uint, date string) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Reservation{}
	for _, r := range m.state.reservations {
		if r.StylistID == stylistID && r.Date == date && domain.Status(r.Status).Blocking() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (m *memRepository) CreateReservation(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.state.nextID
	m.state.nextID++
	m.state.reservations = append(m.state.reservations, *r)
	return nil
}

func (m *memRepository) UpsertClientByPhone(_ context.Context, name, phone, email string) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	for i := range m.state.clients {
		c := &m.state.clients[i]
		if c.Phone != phone {
			continue
		}
		c.TotalVisits++
		if c.Email == "" {
			c.Email = email
		}
		found := *c
		return &found, nil
	}
	c := models.Client{
		ID:          m.state.nextID,
		Name:        name,
		Phone:       phone,
		Email:       email,
		TotalVisits: 1,
		Active:      true,
	}
	m.state.nextID++
	m.state.clients = append(m.state.clients, c)
	return &c, nil
}

func (m *memRepository) WithinTx(ctx context.Context, _ uint, _ string, fn func(tx domain.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.state.clone()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.state = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memRepository) GetReservation(_ context.Context, id uint) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.state.reservations {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memRepository) UpdateReservation(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.state.reservations {
		if m.state.reservations[i].ID == r.ID {
			m.state.reservations[i] = *r
			return nil
		}
	}
	return nil
}

func (m *memRepository) ListReservationsByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	return m.ListReservationsForPeriod(ctx, date, date)
}

func (m *memRepository) ListReservationsForPeriod(_ context.Context, from, to string) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Reservation{}
	for _, r := range m.state.reservations {
		if r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (m *memRepository) ListRecentReservations(_ context.Context, limit int) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Reservation{}, m.state.reservations...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
