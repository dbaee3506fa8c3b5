package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/localserve/localserve/db"
	"github.com/localserve/localserve/models"
	"github.com/localserve/localserve/utils"
)

// Browse results are capped; there is no pagination beyond this.
const serviceListLimit = 100

type CreateServiceInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Duration    int      `json:"duration"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
}

// CreateService publishes a new listing owned by the logged-in provider. The
// provider's display name is snapshotted onto the listing.
func CreateService(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(string)

	input := new(CreateServiceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var provider models.User
	if err := db.DB.First(&provider, "id = ?", providerID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	service := models.Service{
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Price:        input.Price,
		Duration:     input.Duration,
		Location:     input.Location,
		Images:       input.Images,
		IsActive:     true,
	}

	if err := db.DB.Create(&service).Error; err != nil {
		log.Printf("Error creating service: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create service",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// GetAllServices returns active listings, newest first, capped at 100.
func GetAllServices(c *fiber.Ctx) error {
	var services []models.Service

	if err := db.DB.
		Where("is_active = ?", true).
		Order("created_at desc").
		Limit(serviceListLimit).
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}

	return c.JSON(services)
}

// GetService returns a listing by id. A missing id yields an empty result,
// not an error; soft-deleted listings are still returned here.
func GetService(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	err := db.DB.First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(nil)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch service",
			Error:   err.Error(),
		})
	}

	return c.JSON(service)
}

// GetServicesByProvider returns a provider's active listings, newest first.
func GetServicesByProvider(c *fiber.Ctx) error {
	providerID := c.Params("id")

	var services []models.Service
	if err := db.DB.
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Order("created_at desc").
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch provider services",
			Error:   err.Error(),
		})
	}

	return c.JSON(services)
}

type UpdateServiceInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price"`
	Duration    *int      `json:"duration"`
	Location    *string   `json:"location"`
	Images      *[]string `json:"images"`
}

// UpdateService merges the provided fields into the listing. Only the owning
// provider may update; absent fields are left untouched.
func UpdateService(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(string)

	input := new(UpdateServiceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	if service.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the owning provider can update this service",
		})
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&service).Updates(updates).Error; err != nil {
			log.Printf("Error updating service %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update service",
				Error:   err.Error(),
			})
		}
	}
	if input.Images != nil {
		if err := db.DB.Model(&service).Select("images").Updates(models.Service{Images: *input.Images}).Error; err != nil {
			log.Printf("Error updating service images %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update service",
				Error:   err.Error(),
			})
		}
	}

	// Re-read so the response reflects the merged record.
	if err := db.DB.First(&service, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch service",
			Error:   err.Error(),
		})
	}

	return c.JSON(service)
}

// DeleteService soft-deletes a listing by flipping is_active. The record
// stays in storage and remains reachable by direct id lookup.
func DeleteService(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(string)

	var service models.Service
	if err := db.DB.First(&service, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	if service.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the owning provider can delete this service",
		})
	}

	if err := db.DB.Model(&service).Update("is_active", false).Error; err != nil {
		log.Printf("Error deleting service %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete service",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadServiceImage uploads a listing photo and appends its URL to the
// service's image list.
func UploadServiceImage(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(string)

	var service models.Service
	if err := db.DB.First(&service, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	if service.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the owning provider can update this service",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image file provided",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read image file",
		})
	}
	defer file.Close()

	url, err := utils.UploadToCloudinary(file, "", "services")
	if err != nil {
		log.Printf("Error uploading service image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload image",
			Error:   err.Error(),
		})
	}

	service.Images = append(service.Images, url)
	if err := db.DB.Model(&service).Select("images").Updates(models.Service{Images: service.Images}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save image",
		})
	}

	return c.JSON(service)
}
