package handler

import (
	"errors"
	"math"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateSeminar(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateSeminarInput)
	user, _ := c.Locals("actingUser").(*model.User)
	db := database.DB

	seminar := model.Seminar{
		Title:       input.Title,
		Slug:        helper.GenerateUniqueSeminarSlug(db, input.Title),
		Speaker:     input.Speaker,
		Topic:       input.Topic,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Venue:       input.Venue,
		Capacity:    input.Capacity,
	}
	if user != nil {
		seminar.CreatedBy = user.ID
	}

	if err := db.Create(&seminar).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Seminar created successfully",
		"seminar": seminar,
	})
}

// GetSeminars lists seminars, excluding archived ones unless asked for.
func GetSeminars(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.Seminar{}).Order("created_at DESC")
	if c.Query("includeArchived") != "true" {
		query = query.Where("is_archived = ?", false)
	}

	var seminars []model.Seminar
	if err := query.Find(&seminars).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"seminars": seminars})
}

func GetSeminarById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if seminar.IsArchived {
		return c.JSON(fiber.Map{
			"seminar":    seminar,
			"isArchived": true,
			"archivedAt": seminar.ArchivedAt,
			"message":    "This seminar has been archived",
		})
	}
	return c.JSON(fiber.Map{"seminar": seminar})
}

func GetSeminarBySlug(c *fiber.Ctx) error {
	db := database.DB

	var seminar model.Seminar
	if err := db.Where("slug = ?", c.Params("slug")).First(&seminar).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"seminar": seminar})
}

func buildCapacityStatus(seminar model.Seminar) model.CapacityStatus {
	percentage := 0
	if seminar.Capacity > 0 {
		percentage = int(math.Round(float64(seminar.RegisteredCount) / float64(seminar.Capacity) * 100))
	}
	return model.CapacityStatus{
		SeminarId:        seminar.ID,
		Title:            seminar.Title,
		Capacity:         seminar.Capacity,
		RegisteredCount:  seminar.RegisteredCount,
		AvailableSeats:   seminar.Capacity - seminar.RegisteredCount,
		IsFull:           seminar.RegisteredCount >= seminar.Capacity,
		PercentageFilled: percentage,
	}
}

func GetSeminarCapacity(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"capacityStatus": buildCapacityStatus(seminar)})
}

func UpdateSeminar(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.UpdateSeminarInput)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Never shrink capacity under already-claimed seats.
	if input.Capacity != nil && *input.Capacity < seminar.RegisteredCount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":              constants.CAPACITY_BELOW_COUNT,
			"currentRegistrations": seminar.RegisteredCount,
		})
	}

	if input.Title != nil {
		seminar.Title = *input.Title
	}
	if input.Speaker != nil {
		seminar.Speaker = *input.Speaker
	}
	if input.Topic != nil {
		seminar.Topic = *input.Topic
	}
	if input.Description != nil {
		seminar.Description = *input.Description
	}
	if input.Date != nil {
		seminar.Date = input.Date
	}
	if input.Time != nil {
		seminar.Time = *input.Time
	}
	if input.Venue != nil {
		seminar.Venue = *input.Venue
	}
	if input.Capacity != nil {
		seminar.Capacity = *input.Capacity
	}

	if err := db.Save(&seminar).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return c.JSON(fiber.Map{
		"message": "Seminar updated successfully",
		"seminar": seminar,
	})
}

// DeleteSeminar removes the seminar and cascades its schedules and
// registrations.
func DeleteSeminar(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if err := tx.Where("seminar_id = ?", id).Delete(&model.Schedule{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Where("seminar_id = ?", id).Delete(&model.Registration{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Delete(&model.Seminar{}, id).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return c.JSON(fiber.Map{"message": "Seminar deleted successfully"})
}
