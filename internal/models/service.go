package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Price       float64 `json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	ImageURL    string  `gorm:"size:255" json:"image_url"`

	// Minutes. Validated at the handler boundary, max 150.
	DurationMin int `json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
