package handler

import (
	"errors"
	"log"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ResendConfirmation mails the confirmation for one registration again, for
// when the original never arrived.
func ResendConfirmation(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var registration model.Registration
	if err := db.First(&registration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var seminar model.Seminar
	if err := db.First(&seminar, registration.SeminarId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := utils.SendRegistrationConfirmation(registration, seminar); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not send confirmation email", err)
	}

	return c.JSON(fiber.Map{"message": "Confirmation email sent"})
}

// SendSeminarReminders mails a reminder to every registrant of one seminar,
// counting individual failures instead of aborting on them.
func SendSeminarReminders(c *fiber.Ctx) error {
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
	if err := db.Where("seminar_id = ?", seminar.ID).Find(&registrations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(registrations) == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NO_REGISTRATIONS, nil)
	}

	sent, failed := 0, 0
	for _, registration := range registrations {
		if err := utils.SendSeminarReminder(registration, seminar); err != nil {
			log.Printf("reminder to %s failed: %v", registration.Email, err)
			failed++
			continue
		}
		sent++
	}

	return c.JSON(fiber.Map{
		"message": "Reminder emails processed",
		"results": fiber.Map{"success": sent, "failed": failed},
	})
}

// SendFeedbackRequests mails feedback requests to every registrant of one
// seminar.
func SendFeedbackRequestsForSeminar(c *fiber.Ctx) error {
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
	if err := db.Where("seminar_id = ?", seminar.ID).Find(&registrations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(registrations) == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NO_REGISTRATIONS, nil)
	}

	sent, failed := 0, 0
	for _, registration := range registrations {
		if err := utils.SendFeedbackRequest(registration, seminar); err != nil {
			log.Printf("feedback request to %s failed: %v", registration.Email, err)
			failed++
			continue
		}
		sent++
	}

	return c.JSON(fiber.Map{
		"message": "Feedback request emails processed",
		"results": fiber.Map{"success": sent, "failed": failed},
	})
}

// SendCertificateEmailForRegistration mails the certificate details for one
// registration again. The certificate must already have been issued.
func SendCertificateEmailForRegistration(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var registration model.Registration
	if err := db.First(&registration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var certificate model.Certificate
	if err := db.Where("registration_id = ?", registration.ID).First(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CERTIFICATE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var seminar model.Seminar
	if err := db.First(&seminar, registration.SeminarId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := utils.SendCertificateEmail(certificate, registration, seminar); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not send certificate email", err)
	}

	return c.JSON(fiber.Map{"message": "Certificate email sent"})
}

// SendCancellationNotices mails a cancellation notice to every registrant of
// one seminar.
func SendCancellationNotices(c *fiber.Ctx) error {
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
	if err := db.Where("seminar_id = ?", seminar.ID).Find(&registrations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(registrations) == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NO_REGISTRATIONS, nil)
	}

	sent, failed := 0, 0
	for _, registration := range registrations {
		if err := utils.SendCancellationNotice(registration, seminar); err != nil {
			log.Printf("cancellation notice to %s failed: %v", registration.Email, err)
			failed++
			continue
		}
		sent++
	}

	return c.JSON(fiber.Map{
		"message": "Cancellation notices processed",
		"results": fiber.Map{"success": sent, "failed": failed},
	})
}

type announcementInput struct {
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
	// When SeminarId is zero the announcement goes to every known user.
	SeminarId uint `json:"seminarId"`
}

// SendAnnouncementBroadcast mails a free-form announcement either to the
// registrants of one seminar or to all users.
func SendAnnouncementBroadcast(c *fiber.Ctx) error {
	var input announcementInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if input.Subject == "" || input.Body == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("subject and body are required"))
	}
	db := database.DB

	var recipients []string
	if input.SeminarId != 0 {
		var seminar model.Seminar
		if err := db.First(&seminar, input.SeminarId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := db.Model(&model.Registration{}).
			Where("seminar_id = ?", seminar.ID).
			Pluck("email", &recipients).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	} else {
		if err := db.Model(&model.User{}).
			Where("is_blocked = ?", false).
			Pluck("email", &recipients).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if len(recipients) == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, nil)
	}

	sent, failed := utils.SendAnnouncement(recipients, input.Subject, input.Body)

	return c.JSON(fiber.Map{
		"message": "Announcement processed",
		"results": fiber.Map{"success": sent, "failed": failed},
	})
}
