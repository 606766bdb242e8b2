package models

import "time"

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id_reserva"`

	ClientName  string `gorm:"size:100;not null" json:"nombre_cliente"`
	ClientPhone string `gorm:"size:30;not null;index" json:"telefono_cliente"`
	ClientEmail string `gorm:"size:100" json:"email_cliente,omitempty"`

	StylistID uint     `gorm:"not null;index:idx_reservations_stylist_date,priority:1" json:"id_peluquero"`
	Stylist   *Stylist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"peluquero,omitempty"`

	ServiceID uint     `gorm:"not null" json:"id_servicio"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"servicio,omitempty"`

	// Date is stored as YYYY-MM-DD and times as HH:MM so that range
	// comparisons behave the same on every supported driver.
	Date      string `gorm:"column:booking_date;size:10;not null;index:idx_reservations_stylist_date,priority:2" json:"fecha_turno"`
	StartTime string `gorm:"size:5;not null" json:"hora_inicio_turno"`
	EndTime   string `gorm:"size:5;not null" json:"hora_fin_turno"`

	Status string `gorm:"size:20;not null;index" json:"estado_reserva"`

	Notes      string  `gorm:"size:255" json:"notas_cliente,omitempty"`
	FinalPrice float64 `json:"precio_final"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
