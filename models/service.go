package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a bookable listing owned by one provider. ProviderName is
// snapshotted at creation and not re-joined on reads; bookings made against
// the listing keep whatever name it carried when they were created.
type Service struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ProviderID   string    `json:"provider_id" gorm:"index"`
	ProviderName string    `json:"provider_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Duration     int       `json:"duration"` // minutes
	Location     string    `json:"location,omitempty"`
	Images       []string  `json:"images,omitempty" gorm:"serializer:json"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
