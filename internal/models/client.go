package models

import "time"

// Cliente sin login, identificado por teléfono.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id_cliente"`

	Name  string `gorm:"size:100;not null" json:"nombre_cliente"`
	Phone string `gorm:"size:30;not null;uniqueIndex" json:"telefono_cliente"`
	Email string `gorm:"size:100" json:"email_cliente"`

	TotalVisits int  `gorm:"not null" json:"total_visitas"`
	VIP         bool `gorm:"column:vip" json:"cliente_vip"`
	Active      bool `json:"activo_cliente"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
