package provider

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/localserve/localserve/db"
	"github.com/localserve/localserve/models"
)

// GetDashboardOverview returns booking counts by status and the provider's
// active listing count.
func GetDashboardOverview(c *fiber.Ctx) error {
	providerID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var statistics struct {
		TotalBookings  int64     `json:"total_bookings"`
		PendingCount   int64     `json:"pending_count"`
		ConfirmedCount int64     `json:"confirmed_count"`
		CompletedCount int64     `json:"completed_count"`
		CancelledCount int64     `json:"cancelled_count"`
		ActiveServices int64     `json:"active_services"`
		LastUpdated    time.Time `json:"last_updated"`
	}

	bookingQuery := db.DB.Model(&models.Booking{}).Where("provider_id = ?", providerID)
	bookingQuery.Count(&statistics.TotalBookings)

	countByStatus := func(status models.BookingStatus, dst *int64) {
		db.DB.Model(&models.Booking{}).
			Where("provider_id = ? AND status = ?", providerID, status).
			Count(dst)
	}
	countByStatus(models.StatusPending, &statistics.PendingCount)
	countByStatus(models.StatusConfirmed, &statistics.ConfirmedCount)
	countByStatus(models.StatusCompleted, &statistics.CompletedCount)
	countByStatus(models.StatusCancelled, &statistics.CancelledCount)

	db.DB.Model(&models.Service{}).
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Count(&statistics.ActiveServices)

	statistics.LastUpdated = time.Now()

	return c.JSON(statistics)
}

// GetEarningsSummary returns revenue from completed bookings: lifetime and
// current-month totals, how much of it is paid versus awaiting payment, and
// the most recent completed bookings.
func GetEarningsSummary(c *fiber.Ctx) error {
	providerID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	type sumResult struct {
		Total float64
	}

	var total, month, paid, unpaid sumResult

	db.DB.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ?", providerID, models.StatusCompleted).
		Select("COALESCE(SUM(total_price), 0) as total").
		Scan(&total)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	db.DB.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ? AND created_at >= ?", providerID, models.StatusCompleted, monthStart).
		Select("COALESCE(SUM(total_price), 0) as total").
		Scan(&month)

	db.DB.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ? AND payment_status = ?", providerID, models.StatusCompleted, models.PaymentPaid).
		Select("COALESCE(SUM(total_price), 0) as total").
		Scan(&paid)

	db.DB.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ? AND payment_status = ?", providerID, models.StatusCompleted, models.PaymentPending).
		Select("COALESCE(SUM(total_price), 0) as total").
		Scan(&unpaid)

	var recent []models.Booking
	db.DB.
		Where("provider_id = ? AND status = ?", providerID, models.StatusCompleted).
		Order("created_at desc").
		Limit(5).
		Find(&recent)

	return c.JSON(fiber.Map{
		"total_earnings":   total.Total,
		"month_earnings":   month.Total,
		"paid_earnings":    paid.Total,
		"pending_earnings": unpaid.Total,
		"recent_completed": recent,
	})
}
