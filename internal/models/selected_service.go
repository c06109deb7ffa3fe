package models

type SelectedService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"uniqueIndex:idx_booking_service" json:"booking_id"`

	ServiceID uint    `gorm:"uniqueIndex:idx_booking_service" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`
}
