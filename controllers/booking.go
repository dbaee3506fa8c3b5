package controllers

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/localserve/localserve/db"
	"github.com/localserve/localserve/models"
	"github.com/localserve/localserve/utils"
)

// transitionsEnforced reports whether status updates go through the
// transition table. The source system applied none, so the guard is opt-in.
func transitionsEnforced() bool {
	return os.Getenv("BOOKING_ENFORCE_TRANSITIONS") == "true"
}

type CreateBookingInput struct {
	ServiceID   string `json:"service_id"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	Notes       string `json:"notes"`
}

// CreateBooking reserves a listing for the logged-in customer. Status and
// payment status always start at pending regardless of input, the total is
// the listing price, and customer/provider/service names are snapshotted
// from the live records at this moment only. There is no double-booking or
// slot-conflict check across bookings sharing a provider and date/time.
func CreateBooking(c *fiber.Ctx) error {
	customerID := c.Locals("userID").(string)

	input := new(CreateBookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.ServiceID == "" || input.BookingDate == "" || input.BookingTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
			Error:   err.Error(),
		})
	}

	var customer models.User
	if err := db.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Customer not found",
		})
	}

	booking := models.Booking{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		ProviderID:    service.ProviderID,
		ProviderName:  service.ProviderName,
		ServiceID:     service.ID,
		ServiceTitle:  service.Title,
		BookingDate:   input.BookingDate,
		BookingTime:   input.BookingTime,
		Status:        models.StatusPending,
		TotalPrice:    service.Price,
		Notes:         input.Notes,
		PaymentStatus: models.PaymentPending,
	}

	if err := db.DB.Create(&booking).Error; err != nil {
		log.Printf("Error creating booking: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetCustomerBookings returns the logged-in customer's bookings, newest
// first, all statuses included.
func GetCustomerBookings(c *fiber.Ctx) error {
	customerID := c.Locals("userID").(string)

	var bookings []models.Booking
	if err := db.DB.
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(bookings)
}

// GetProviderBookings returns the logged-in provider's bookings, newest
// first, all statuses included.
func GetProviderBookings(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(string)

	var bookings []models.Booking
	if err := db.DB.
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(bookings)
}

// GetBooking returns a single booking by id.
func GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.First(&booking, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}

	return c.JSON(booking)
}

type UpdateStatusInput struct {
	Status models.BookingStatus `json:"status"`
}

// UpdateBookingStatus overwrites the booking's status. By default any
// transition is accepted, including re-confirming a cancelled booking; with
// BOOKING_ENFORCE_TRANSITIONS=true the transition table is applied instead.
func UpdateBookingStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(UpdateStatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if !models.ValidStatus(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown booking status",
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}

	if transitionsEnforced() {
		if err := booking.CheckTransition(input.Status); err != nil {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Status transition not allowed",
				Error:   err.Error(),
			})
		}
	}

	if err := db.DB.Model(&booking).Update("status", input.Status).Error; err != nil {
		log.Printf("Error updating booking %s status: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update booking status",
			Error:   err.Error(),
		})
	}

	booking.Status = input.Status
	return c.JSON(booking)
}

type UpdatePaymentInput struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

// UpdateBookingPayment overwrites the booking's payment status. Same
// unconditional semantics as UpdateBookingStatus.
func UpdateBookingPayment(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(UpdatePaymentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if !models.ValidPaymentStatus(input.PaymentStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown payment status",
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&booking).Update("payment_status", input.PaymentStatus).Error; err != nil {
		log.Printf("Error updating booking %s payment: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update payment status",
			Error:   err.Error(),
		})
	}

	booking.PaymentStatus = input.PaymentStatus
	return c.JSON(booking)
}

// CancelBooking forces the booking's status to cancelled, whatever it was.
func CancelBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.First(&booking, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&booking).Update("status", models.StatusCancelled).Error; err != nil {
		log.Printf("Error cancelling booking %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel booking",
			Error:   err.Error(),
		})
	}

	booking.Status = models.StatusCancelled
	return c.JSON(booking)
}
