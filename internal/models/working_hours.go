package models

import "time"

// WorkingHours is one recurring weekly window. Weekday follows 1=Monday..7=Sunday.
type WorkingHours struct {
	ID        uint `gorm:"primaryKey" json:"id_horario"`
	StylistID uint `gorm:"not null;uniqueIndex:idx_working_hours_stylist_day,priority:1" json:"id_peluquero"`

	Weekday int `gorm:"not null;uniqueIndex:idx_working_hours_stylist_day,priority:2" json:"dia_semana"`

	StartTime string `gorm:"size:5;not null" json:"hora_inicio"`
	EndTime   string `gorm:"size:5;not null" json:"hora_fin"`
	Active    bool   `json:"activo_horario"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
