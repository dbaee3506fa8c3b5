package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/localserve/localserve/db"
	"github.com/localserve/localserve/models"
	"github.com/localserve/localserve/utils"
)

// StartReminderJobs initializes and starts the cron scheduler for booking reminders
func StartReminderJobs() {
	c := cron.New()
	// Every morning at 8, remind customers about today's confirmed bookings
	_, err := c.AddFunc("0 8 * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders checks for today's confirmed bookings and mails the customers
func sendBookingReminders() {
	today := time.Now().Format("2006-01-02")

	var bookings []models.Booking
	err := db.DB.
		Where("status = ? AND booking_date = ?", models.StatusConfirmed, today).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		var customer models.User
		if err := db.DB.First(&customer, "id = ?", booking.CustomerID).Error; err != nil {
			log.Printf("Customer %s not found for booking %s: %v", booking.CustomerID, booking.ID, err)
			continue
		}
		if err := sendReminderEmail(&booking, customer.Email); err != nil {
			log.Printf("Failed to send reminder for booking %s: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %s to %s", booking.ID, customer.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking, to string) error {
	subject := fmt.Sprintf("Reminder: %s today at %s", booking.ServiceTitle, booking.BookingTime)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your booking today.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Total:</strong> %.2f</li>
		</ul>
		<p>If you need to reschedule or cancel, contact your provider as soon as possible.</p>
		<p>Best regards,</p>
		<p>The LocalServe Team</p>
	`, booking.CustomerName, booking.ServiceTitle, booking.ProviderName,
		booking.BookingDate, booking.BookingTime, booking.TotalPrice)

	return utils.SendEmail(to, subject, body)
}
