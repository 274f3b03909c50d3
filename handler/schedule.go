package handler

import (
	"errors"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateSchedule(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateScheduleInput)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, input.SeminarId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	schedule := model.Schedule{
		SeminarId: input.SeminarId,
		Date:      input.Date,
		Time:      input.Time,
		IsActive:  true,
	}
	if err := db.Create(&schedule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Schedule created successfully",
		"schedule": schedule,
	})
}

func GetSchedules(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.Schedule{}).Preload("Seminar").Order("date")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var schedules []model.Schedule
	if err := query.Find(&schedules).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"schedules": schedules, "count": len(schedules)})
}

func GetScheduleById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var schedule model.Schedule
	if err := db.Preload("Seminar").First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SCHEDULE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"schedule": schedule})
}

func UpdateSchedule(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.UpdateScheduleInput)
	db := database.DB

	var schedule model.Schedule
	if err := db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SCHEDULE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	updates := map[string]any{}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.Time != nil {
		updates["time"] = *input.Time
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := db.Model(&schedule).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
		}
	}

	return c.JSON(fiber.Map{"message": "Schedule updated successfully", "schedule": schedule})
}

func DeleteSchedule(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var schedule model.Schedule
	if err := db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SCHEDULE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Delete(&schedule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return c.JSON(fiber.Map{"message": "Schedule deleted successfully"})
}
