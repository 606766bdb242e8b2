package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	ActionReservationCreated   = "reservation_created"
	ActionReservationConflict  = "reservation_conflict"
	ActionReservationConfirmed = "reservation_confirmed"
	ActionReservationCancelled = "reservation_cancelled"
	ActionWorkingHoursUpdated  = "working_hours_updated"
	ActionServiceChanged       = "service_changed"
	ActionStylistChanged       = "stylist_changed"
	ActionAdminLogin           = "admin_login"

	ActorPublic = "public"
	ActorAdmin  = "admin"
)

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
		cancel()
	}
}

// Dispatch never blocks; events are dropped when the queue is full.
// A nil dispatcher is a no-op.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	defer func() {
		// send on a closed queue during shutdown
		if recover() != nil {
			d.log.Warn().Str("action", ev.Action).Msg("audit dispatcher closed, dropping event")
		}
	}()

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}

func EntityRef(id uint) *uint {
	return &id
}
