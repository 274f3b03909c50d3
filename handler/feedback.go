package handler

import (
	"errors"
	"math"
	"time"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SubmitFeedback(c *fiber.Ctx) error {
	input := c.Locals("input").(model.SubmitFeedbackInput)
	db := database.DB

	var registration model.Registration
	if err := db.First(&registration, input.RegistrationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if registration.SeminarId != input.SeminarId {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FEEDBACK_MISMATCH, nil)
	}

	var existing model.Feedback
	err := db.Where("registration_id = ?", input.RegistrationId).First(&existing).Error
	if err == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FEEDBACK_EXISTS, nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	feedback := model.Feedback{
		RegistrationId:       input.RegistrationId,
		SeminarId:            input.SeminarId,
		Rating:               input.Rating,
		ContentQuality:       input.ContentQuality,
		SpeakerEffectiveness: input.SpeakerEffectiveness,
		OrganizationQuality:  input.OrganizationQuality,
		Comments:             input.Comments,
		Suggestions:          input.Suggestions,
		SubmittedAt:          time.Now(),
	}

	if err := db.Create(&feedback).Error; err != nil {
		if helper.IsDuplicateKeyError(err) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FEEDBACK_EXISTS, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Feedback submitted successfully",
		"feedback": feedback,
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func GetSeminarFeedback(c *fiber.Ctx) error {
	seminarId := c.Locals("inputId").(uint)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, seminarId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var feedback []model.Feedback
	if err := db.Where("seminar_id = ?", seminarId).Find(&feedback).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var averages *model.AverageRatings
	if count := len(feedback); count > 0 {
		var rating, content, speaker, organization int
		for _, item := range feedback {
			rating += item.Rating
			content += item.ContentQuality
			speaker += item.SpeakerEffectiveness
			organization += item.OrganizationQuality
		}
		averages = &model.AverageRatings{
			OverallRating:        round1(float64(rating) / float64(count)),
			ContentQuality:       round1(float64(content) / float64(count)),
			SpeakerEffectiveness: round1(float64(speaker) / float64(count)),
			OrganizationQuality:  round1(float64(organization) / float64(count)),
		}
	}

	return c.JSON(fiber.Map{
		"feedback":       feedback,
		"averageRatings": averages,
		"count":          len(feedback),
	})
}

func CheckFeedbackStatus(c *fiber.Ctx) error {
	seminarId := c.Locals("inputId").(uint)
	email := helper.NormalizeEmail(c.Params("email"))
	db := database.DB

	var registration model.Registration
	err := db.Where("seminar_id = ? AND email = ?", seminarId, email).First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"isRegistered": false, "hasFeedback": false})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var feedback model.Feedback
	err = db.Where("registration_id = ?", registration.ID).First(&feedback).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	resp := fiber.Map{
		"isRegistered":   true,
		"registrationId": registration.ID,
		"hasFeedback":    err == nil,
	}
	if err == nil {
		resp["feedbackId"] = feedback.ID
	}
	return c.JSON(resp)
}
