package models

import "time"

type Stylist struct {
	ID uint `gorm:"primaryKey" json:"id_peluquero"`

	Name            string `gorm:"size:100;not null" json:"nombre_peluquero"`
	Specialty       string `gorm:"size:100" json:"especialidad_peluquero"`
	Description     string `gorm:"size:255" json:"descripcion_peluquero"`
	YearsExperience int    `json:"anios_experiencia"`
	Active          bool   `json:"activo_peluquero"`

	AvatarInitials string `gorm:"size:4" json:"avatar_iniciales"`
	AvatarURL      string `gorm:"size:255" json:"avatar_url"`
	Phone          string `gorm:"size:30" json:"telefono_peluquero"`
	Email          string `gorm:"size:100" json:"email_peluquero"`

	// Services the stylist can perform (stylist_services join table).
	Services []Service `gorm:"many2many:stylist_services;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
