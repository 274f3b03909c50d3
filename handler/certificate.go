package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"seminar_manager/config"
	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// issueCertificate creates a certificate for a registration that has none yet.
// Number and verification code are regenerated on the rare unique collision.
func issueCertificate(db *gorm.DB, registration model.Registration, seminar model.Seminar) (*model.Certificate, error) {
	for attempt := 0; attempt < 3; attempt++ {
		code, err := helper.GenerateVerificationCode()
		if err != nil {
			return nil, err
		}
		number, err := helper.GenerateCertificateNumber()
		if err != nil {
			return nil, err
		}
		certificate := model.Certificate{
			RegistrationId:    registration.ID,
			SeminarId:         seminar.ID,
			StudentName:       registration.StudentName,
			SeminarTitle:      seminar.Title,
			IssueDate:         time.Now(),
			CertificateNumber: number,
			VerificationCode:  code,
			Status:            constants.CERTIFICATE_ISSUED,
		}
		err = db.Create(&certificate).Error
		if err == nil {
			return &certificate, nil
		}
		if !helper.IsDuplicateKeyError(err) {
			return nil, err
		}
		// A collision on registration_id means the certificate already
		// exists; collisions on number or code get a fresh draw.
		var existing model.Certificate
		if db.Where("registration_id = ?", registration.ID).First(&existing).Error == nil {
			return nil, errDuplicateCertificate
		}
	}
	return nil, errors.New("could not generate a unique certificate number")
}

var errDuplicateCertificate = errors.New("certificate already exists")

func GenerateCertificate(c *fiber.Ctx) error {
	input := c.Locals("input").(model.GenerateCertificateInput)
	db := database.DB

	var registration model.Registration
	if err := db.First(&registration, input.RegistrationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REGISTRATION_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var existing model.Certificate
	if err := db.Where("registration_id = ?", registration.ID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":     constants.CERTIFICATE_EXISTS,
			"certificate": existing,
		})
	}

	var seminar model.Seminar
	if err := db.First(&seminar, registration.SeminarId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	certificate, err := issueCertificate(db, registration, seminar)
	if err != nil {
		if errors.Is(err, errDuplicateCertificate) {
			db.Where("registration_id = ?", registration.ID).First(&existing)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":     constants.CERTIFICATE_EXISTS,
				"certificate": existing,
			})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	go func() {
		if err := utils.SendCertificateEmail(*certificate, registration, seminar); err != nil {
			fmt.Printf("certificate email failed for %s: %v\n", registration.Email, err)
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Certificate generated successfully",
		"certificate": certificate,
	})
}

// GenerateBulkCertificates issues certificates for every registration of a
// seminar. A failure for one registration does not stop the rest.
func GenerateBulkCertificates(c *fiber.Ctx) error {
	input := c.Locals("input").(model.BulkCertificateInput)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, input.SeminarId).Error; err != nil {
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

	var results model.BulkCertificateResults
	for _, registration := range registrations {
		var existing model.Certificate
		if db.Where("registration_id = ?", registration.ID).First(&existing).Error == nil {
			results.AlreadyExists++
			continue
		}
		if _, err := issueCertificate(db, registration, seminar); err != nil {
			if errors.Is(err, errDuplicateCertificate) {
				results.AlreadyExists++
			} else {
				results.Failed++
			}
			continue
		}
		results.Success++
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Bulk certificate generation completed",
		"results": results,
	})
}

func GetCertificateById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var certificate model.Certificate
	if err := db.First(&certificate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CERTIFICATE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"certificate": certificate})
}

// VerifyCertificate checks a number/code pair from the public verification
// page. A wrong code gets the same answer as an unknown number.
func VerifyCertificate(c *fiber.Ctx) error {
	input := c.Locals("input").(model.VerifyCertificateInput)
	db := database.DB

	var certificate model.Certificate
	err := db.Where("certificate_number = ? AND verification_code = ?",
		strings.TrimSpace(input.CertificateNumber),
		strings.ToUpper(strings.TrimSpace(input.VerificationCode)),
	).First(&certificate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"isValid": false,
				"message": constants.CERTIFICATE_INVALID,
			})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if certificate.Status == constants.CERTIFICATE_REVOKED {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"isValid": false,
			"message": constants.CERTIFICATE_WAS_REVOKED,
		})
	}

	return c.JSON(fiber.Map{
		"isValid": true,
		"message": constants.CERTIFICATE_IS_VALID,
		"certificate": fiber.Map{
			"certificateNumber": certificate.CertificateNumber,
			"studentName":       certificate.StudentName,
			"seminarTitle":      certificate.SeminarTitle,
			"issueDate":         certificate.IssueDate,
			"status":            certificate.Status,
		},
	})
}

func RevokeCertificate(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var certificate model.Certificate
	if err := db.First(&certificate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CERTIFICATE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if certificate.Status == constants.CERTIFICATE_REVOKED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CERTIFICATE_WAS_REVOKED, nil)
	}

	if err := db.Model(&certificate).Update("status", constants.CERTIFICATE_REVOKED).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Certificate revoked successfully",
		"certificate": certificate,
	})
}

func GetStudentCertificates(c *fiber.Ctx) error {
	email := helper.NormalizeEmail(c.Params("email"))
	db := database.DB

	var certificates []model.Certificate
	err := db.
		Joins("JOIN registrations ON registrations.id = certificates.registration_id").
		Where("registrations.email = ?", email).
		Find(&certificates).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"certificates": certificates, "count": len(certificates)})
}

func GetSeminarCertificates(c *fiber.Ctx) error {
	seminarId := c.Locals("inputId").(uint)
	db := database.DB

	var certificates []model.Certificate
	if err := db.Where("seminar_id = ?", seminarId).Find(&certificates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"certificates": certificates, "count": len(certificates)})
}

// GetCertificateQR returns a PNG QR code that links to the public
// verification page with the number and code prefilled.
func GetCertificateQR(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var certificate model.Certificate
	if err := db.First(&certificate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CERTIFICATE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	base := config.ConfigOr("FRONTEND_URL", "http://localhost:3000")
	content := fmt.Sprintf("%s/certificates/verify?number=%s&code=%s",
		base, certificate.CertificateNumber, certificate.VerificationCode)

	png, err := utils.GenerateQRCode(content, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
