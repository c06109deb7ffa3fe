package models

import "time"

// Only approved requests block availability.
type TimeOffRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:idx_timeoff" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      time.Time `gorm:"type:date;uniqueIndex:idx_timeoff" json:"date"`
	StartTime string    `gorm:"size:5;uniqueIndex:idx_timeoff" json:"start_time"`
	EndTime   string    `gorm:"size:5" json:"end_time"`

	Reason   string `gorm:"type:text" json:"reason"`
	Approved bool   `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
