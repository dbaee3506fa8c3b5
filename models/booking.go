package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking links one customer to one service/provider for a given date and
// time. CustomerName, ProviderName and ServiceTitle are denormalized at
// creation time; renaming the source user or listing later must not change
// existing bookings.
type Booking struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	CustomerID    string        `json:"customer_id" gorm:"index"`
	CustomerName  string        `json:"customer_name"`
	ProviderID    string        `json:"provider_id" gorm:"index"`
	ProviderName  string        `json:"provider_name"`
	ServiceID     string        `json:"service_id"`
	ServiceTitle  string        `json:"service_title"`
	BookingDate   string        `json:"booking_date"` // "2006-01-02"
	BookingTime   string        `json:"booking_time"` // "15:04"
	Status        BookingStatus `json:"status"`
	TotalPrice    float64       `json:"total_price"`
	Notes         string        `json:"notes,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentPending
	}
	return nil
}

// ValidStatus reports whether s is one of the four booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	// completed and cancelled are terminal
}

// CheckTransition returns an error when moving from the booking's current
// status to next is not allowed by the transition table. Callers only invoke
// this when transition enforcement is switched on; the default behavior is an
// unconditional overwrite.
func (b *Booking) CheckTransition(next BookingStatus) error {
	if next == b.Status {
		return nil
	}
	for _, s := range allowedTransitions[b.Status] {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("invalid transition from %s to %s", b.Status, next)
}
