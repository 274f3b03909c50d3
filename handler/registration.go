package handler

import (
	"errors"
	"time"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateRegistration claims one seat in a seminar. The capacity and duplicate
// checks up front are advisory; the conditional counter update and the unique
// (seminar_id, email) index inside the transaction are what actually hold
// under concurrent attempts.
func CreateRegistration(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateRegistrationInput)
	db := database.DB

	email := helper.NormalizeEmail(input.Email)

	check, err := helper.CheckSeminarCapacity(db, input.SeminarId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !check.OK {
		return utils.ErrorResponse(c, check.Status, check.Message, nil)
	}
	seminar := *check.Seminar

	var existing model.Registration
	err = db.Where("seminar_id = ? AND email = ?", input.SeminarId, email).First(&existing).Error
	if err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.REGISTRATION_DUPLICATE, nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	registration := model.Registration{
		SeminarId:        input.SeminarId,
		StudentName:      input.Name,
		StudentId:        helper.DefaultStudentId(input.StudentId, email),
		Email:            email,
		Department:       helper.DefaultDepartment(input.Department),
		RegistrationDate: time.Now(),
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	// Atomic seat claim: never lets registered_count pass capacity, never a
	// read-modify-write of the whole row.
	result := tx.Model(&model.Seminar{}).
		Where("id = ? AND is_archived = ? AND registered_count < capacity", input.SeminarId, false).
		UpdateColumn("registered_count", gorm.Expr("registered_count + 1"))
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		// Filled up (or got archived) between the pre-check and here.
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.SEMINAR_FULL, nil)
	}

	if err := tx.Create(&registration).Error; err != nil {
		tx.Rollback()
		if helper.IsDuplicateKeyError(err) {
			// Lost the race to another insert for the same (seminar, email).
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.REGISTRATION_DUPLICATE, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendRegistrationConfirmationAsync(registration, seminar)
	NotifyCapacityChange(input.SeminarId)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": constants.REGISTRATION_SUCCESS,
		"registration": model.RegistrationResponse{
			Id:        registration.ID,
			Name:      registration.StudentName,
			Email:     registration.Email,
			SeminarId: registration.SeminarId,
			Timestamp: registration.RegistrationDate,
		},
	})
}

// CancelRegistration releases the seat. The decrement is clamped at zero so a
// cancellation race cannot drive the counter negative.
func CancelRegistration(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var registration model.Registration
	if err := db.First(&registration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	deleted := tx.Delete(&model.Registration{}, id)
	if deleted.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, deleted.Error)
	}
	if deleted.RowsAffected == 0 {
		// A concurrent cancel got here first; only the winner decrements.
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, nil)
	}

	result := tx.Model(&model.Seminar{}).
		Where("id = ? AND registered_count > 0", registration.SeminarId).
		UpdateColumn("registered_count", gorm.Expr("registered_count - 1"))
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	NotifyCapacityChange(registration.SeminarId)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": constants.REGISTRATION_CANCELLED})
}

func GetSeminarRegistrations(c *fiber.Ctx) error {
	seminarId := c.Locals("inputId").(uint)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, seminarId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var registrations []model.Registration
	if err := db.Where("seminar_id = ?", seminarId).
		Order("registration_date DESC").
		Find(&registrations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"registrations":   registrations,
		"count":           len(registrations),
		"seminarCapacity": seminar.Capacity,
		"availableSeats":  seminar.Capacity - seminar.RegisteredCount,
	})
}

func CheckRegistrationStatus(c *fiber.Ctx) error {
	seminarId := c.Locals("inputId").(uint)
	email := helper.NormalizeEmail(c.Params("email"))
	db := database.DB

	var registration model.Registration
	err := db.Where("seminar_id = ? AND email = ?", seminarId, email).First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"isRegistered": false, "registration": nil})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"isRegistered": true,
		"registration": model.RegistrationResponse{
			Id:        registration.ID,
			Name:      registration.StudentName,
			Email:     registration.Email,
			SeminarId: registration.SeminarId,
			Timestamp: registration.RegistrationDate,
		},
	})
}

func GetUserRegistrations(c *fiber.Ctx) error {
	email := helper.NormalizeEmail(c.Params("email"))
	db := database.DB

	var registrations []model.Registration
	if err := db.Where("email = ?", email).
		Order("registration_date DESC").
		Find(&registrations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"registrations": registrations,
		"count":         len(registrations),
		"userEmail":     email,
	})
}
