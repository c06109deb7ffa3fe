package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex" json:"email"`
	Phone string `gorm:"size:15" json:"phone"`

	// Percentage of a service's price the barber keeps, 0..100.
	AgreedMargin int `gorm:"default:60" json:"agreed_margin"`

	SocialInsuranceNumber string `gorm:"size:9" json:"-"`

	EmergencyContactName         string `gorm:"size:100" json:"emergency_contact_name"`
	EmergencyContactPhone        string `gorm:"size:15" json:"emergency_contact_phone"`
	EmergencyContactRelationship string `gorm:"size:100" json:"emergency_contact_relationship"`

	ProfileImageURL string `gorm:"size:255" json:"profile_image_url"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
