package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ReservationListDTO struct {
	ID          uint    `json:"id_reserva"`
	Date        string  `json:"fecha_turno"`
	StartTime   string  `json:"hora_inicio_turno"`
	EndTime     string  `json:"hora_fin_turno"`
	Status      string  `json:"estado_reserva"`
	ClientName  string  `json:"nombre_cliente"`
	ClientPhone string  `json:"telefono_cliente"`
	ClientEmail string  `json:"email_cliente,omitempty"`
	ServiceName string  `json:"nombre_servicio"`
	StylistName string  `json:"nombre_peluquero"`
	FinalPrice  float64 `json:"precio_final"`
	Notes       string  `json:"notas_cliente,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func NewReservationList(reservations []models.Reservation) []ReservationListDTO {
	out := make([]ReservationListDTO, 0, len(reservations))
	for _, r := range reservations {
		item := ReservationListDTO{
			ID:          r.ID,
			Date:        r.Date,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			Status:      r.Status,
			ClientName:  r.ClientName,
			ClientPhone: r.ClientPhone,
			ClientEmail: r.ClientEmail,
			FinalPrice:  r.FinalPrice,
			Notes:       r.Notes,
			CreatedAt:   r.CreatedAt,
		}
		if r.Service != nil {
			item.ServiceName = r.Service.Name
		}
		if r.Stylist != nil {
			item.StylistName = r.Stylist.Name
		}
		out = append(out, item)
	}
	return out
}
