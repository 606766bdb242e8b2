package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type Draft struct {
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint
	StylistID uint

	Date      string
	StartTime string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CommitReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
	loc   *time.Location
}

func NewCommitReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log zerolog.Logger,
	loc *time.Location,
) *CommitReservation {
	return &CommitReservation{
		repo:  repo,
		audit: audit,
		log:   log.With().Str("usecase", "commit_reservation").Logger(),
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CommitReservation) Execute(
	ctx context.Context,
	in Draft,
) (*models.Reservation, error) {

	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ClientEmail = strings.TrimSpace(in.ClientEmail)
	in.Notes = strings.TrimSpace(in.Notes)

	// --------------------------------------------------
	// 1️⃣ Draft validation
	// --------------------------------------------------
	date, start, err := uc.validate(in)
	if err != nil {
		metrics.IncReservation(metrics.ResultRejected)
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Re-check and write in one transaction
	// --------------------------------------------------
	var created *models.Reservation

	err = uc.repo.WithinTx(ctx, in.StylistID, in.Date, func(tx domain.Repository) error {
		r, err := uc.commit(ctx, tx, in, date, start)
		if err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil && httperr.IsExclusionConflict(err) {
		err = slotUnavailable()
	}

	// --------------------------------------------------
	// 3️⃣ Side effects
	// --------------------------------------------------
	if err != nil {
		uc.recordFailure(in, err)
		return nil, err
	}

	metrics.IncReservation(metrics.ResultCreated)
	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorPublic,
		Action:   audit.ActionReservationCreated,
		Entity:   "reservation",
		EntityID: audit.EntityRef(created.ID),
		Metadata: map[string]any{
			"id_peluquero": created.StylistID,
			"id_servicio":  created.ServiceID,
			"fecha":        created.Date,
			"hora_inicio":  created.StartTime,
			"hora_fin":     created.EndTime,
		},
	})
	uc.log.Info().
		Uint("reservation_id", created.ID).
		Uint("stylist_id", created.StylistID).
		Str("date", created.Date).
		Str("start", created.StartTime).
		Msg("reservation created")

	return created, nil
}

func (uc *CommitReservation) validate(in Draft) (time.Time, int, error) {
	if in.ClientName == "" || in.ClientPhone == "" {
		return time.Time{}, 0, httperr.ErrValidation(domain.CodeMissingClientData, "Nombre y teléfono son obligatorios")
	}

	if in.ClientEmail != "" && !validators.IsEmailFormatValid(in.ClientEmail) {
		return time.Time{}, 0, httperr.ErrValidation(domain.CodeInvalidEmail, "Formato de email inválido")
	}

	if in.ServiceID == 0 || in.StylistID == 0 || in.Date == "" || in.StartTime == "" {
		return time.Time{}, 0, httperr.ErrValidation(domain.CodeMissingReservationData, "Faltan datos de la reserva")
	}

	date, err := domain.ParseDate(in.Date, uc.loc)
	if err != nil {
		return time.Time{}, 0, httperr.ErrValidation(domain.CodeInvalidDateOrTime, "Fecha u hora inválida")
	}
	start, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return time.Time{}, 0, httperr.ErrValidation(domain.CodeInvalidDateOrTime, "Fecha u hora inválida")
	}

	return date, start, nil
}

func (uc *CommitReservation) commit(
	ctx context.Context,
	tx domain.Repository,
	in Draft,
	date time.Time,
	start int,
) (*models.Reservation, error) {

	service, err := tx.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if service == nil || !service.Active {
		return nil, httperr.ErrNotFound(domain.CodeServiceNotFound, "Servicio no encontrado")
	}

	stylist, err := tx.GetStylist(ctx, in.StylistID)
	if err != nil {
		return nil, fmt.Errorf("get stylist: %w", err)
	}
	if stylist == nil || !stylist.Active {
		return nil, httperr.ErrNotFound(domain.CodeStylistNotFound, "Peluquero no encontrado")
	}

	candidate := domain.Interval{Start: start, End: start + service.DurationMin}

	wh, err := tx.GetActiveWorkingHours(ctx, in.StylistID, domain.Weekday(date))
	if err != nil {
		return nil, fmt.Errorf("get working hours: %w", err)
	}
	if !domain.IsWithinWorkingHours(wh, candidate) {
		return nil, httperr.ErrConflict(domain.CodeOutsideWorkingHours, "El horario está fuera del horario de atención")
	}

	existing, err := tx.ListBusyReservations(ctx, in.StylistID, in.Date)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if domain.OverlapsAny(candidate, domain.BusyIntervals(existing)) {
		return nil, slotUnavailable()
	}

	r := &models.Reservation{
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientEmail: in.ClientEmail,
		StylistID:   in.StylistID,
		ServiceID:   service.ID,
		Date:        in.Date,
		StartTime:   domain.FormatClock(candidate.Start),
		EndTime:     domain.FormatClock(candidate.End),
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
		FinalPrice:  service.Price,
	}
	if err := tx.CreateReservation(ctx, r); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	if _, err := tx.UpsertClientByPhone(ctx, in.ClientName, in.ClientPhone, in.ClientEmail); err != nil {
		return nil, fmt.Errorf("upsert client: %w", err)
	}

	return r, nil
}

func (uc *CommitReservation) recordFailure(in Draft, err error) {
	result := failureResult(err)
	metrics.IncReservation(result)

	if httperr.IsKind(err, httperr.KindConflict) {
		uc.audit.Dispatch(audit.Event{
			Actor:  audit.ActorPublic,
			Action: audit.ActionReservationConflict,
			Entity: "reservation",
			Metadata: map[string]any{
				"id_peluquero": in.StylistID,
				"fecha":        in.Date,
				"hora_inicio":  in.StartTime,
				"error_code":   err.Error(),
			},
		})
	}

	if result == metrics.ResultFailed {
		uc.log.Error().Err(err).Uint("stylist_id", in.StylistID).Str("date", in.Date).Msg("reservation commit failed")
	}
}

// failureResult labels a failed commit. Only a lost race for the slot counts
// as a conflict; other domain errors are rejections.
func failureResult(err error) string {
	switch {
	case httperr.IsBusiness(err, domain.CodeSlotUnavailable):
		return metrics.ResultConflict
	case httperr.KindOf(err) != "":
		return metrics.ResultRejected
	default:
		return metrics.ResultFailed
	}
}

func slotUnavailable() error {
	return httperr.ErrConflict(domain.CodeSlotUnavailable, "El horario seleccionado ya no está disponible")
}
