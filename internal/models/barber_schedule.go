package models

import "time"

// Weekday names as stored in barber_schedules.day_of_week.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

func IsWeekday(name string) bool {
	for _, d := range Weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// One row per (barber, weekday). Times are "15:04" wall-clock strings
// in the business timezone.
type BarberSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:idx_barber_weekday" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DayOfWeek string `gorm:"size:20;uniqueIndex:idx_barber_weekday" json:"day_of_week"`

	StartTime string `gorm:"size:5;default:'09:00'" json:"start_time"`
	EndTime   string `gorm:"size:5;default:'17:00'" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
