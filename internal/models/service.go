package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id_servicio"`

	Name        string  `gorm:"size:100;not null" json:"nombre_servicio"`
	Description string  `gorm:"size:255" json:"descripcion_servicio"`
	Category    string  `gorm:"size:50;index" json:"categoria_servicio"`
	Price       float64 `json:"precio_servicio"`
	DurationMin int     `gorm:"not null" json:"duracion_minutos"`
	Active      bool    `json:"activo_servicio"`

	CategoryOrder int `json:"orden_categoria"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
