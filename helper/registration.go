package helper

import (
	"errors"
	"strings"

	"seminar_manager/constants"
	"seminar_manager/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CapacityCheck is the outcome of the advisory pre-check that runs before a
// registration insert. The unique index and the conditional counter update
// remain the final authority under concurrency.
type CapacityCheck struct {
	OK             bool
	Status         int
	Message        string
	Seminar        *model.Seminar
	AvailableSeats int
}

func CheckSeminarCapacity(db *gorm.DB, seminarId uint) (CapacityCheck, error) {
	var seminar model.Seminar
	if err := db.First(&seminar, seminarId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CapacityCheck{Status: fiber.StatusNotFound, Message: constants.SEMINAR_NOT_FOUND}, nil
		}
		return CapacityCheck{}, err
	}

	if seminar.IsArchived {
		return CapacityCheck{
			Status:  fiber.StatusBadRequest,
			Message: constants.SEMINAR_ARCHIVED,
			Seminar: &seminar,
		}, nil
	}

	if seminar.RegisteredCount >= seminar.Capacity {
		return CapacityCheck{
			Status:  fiber.StatusBadRequest,
			Message: constants.SEMINAR_FULL,
			Seminar: &seminar,
		}, nil
	}

	return CapacityCheck{
		OK:             true,
		Seminar:        &seminar,
		AvailableSeats: seminar.Capacity - seminar.RegisteredCount,
	}, nil
}

// IsDuplicateKeyError reports whether err is a unique-constraint violation.
// Covers gorm's translated error, Postgres (23505) and SQLite in tests.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultStudentId falls back to the email local part when no student id was
// supplied, matching what the admin UI expects.
func DefaultStudentId(studentId, email string) string {
	if studentId != "" {
		return studentId
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func DefaultDepartment(department string) string {
	if department == "" {
		return "General"
	}
	return department
}
