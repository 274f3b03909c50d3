package model

import "time"

type Registration struct {
	DTO
	SeminarId        uint      `gorm:"not null;uniqueIndex:idx_seminar_email" json:"seminarId"`
	StudentName      string    `gorm:"not null" json:"studentName"`
	StudentId        string    `json:"studentId"`
	Email            string    `gorm:"not null;uniqueIndex:idx_seminar_email" json:"email"`
	Department       string    `json:"department"`
	RegistrationDate time.Time `gorm:"not null" json:"registrationDate"`

	Seminar Seminar `gorm:"foreignKey:SeminarId" json:"-"`
}

type CreateRegistrationInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	SeminarId  uint   `json:"seminarId" validate:"required,gt=0"`
	StudentId  string `json:"studentId"`
	Department string `json:"department"`
}

// RegistrationResponse mirrors what the UI expects after a successful registration.
type RegistrationResponse struct {
	Id        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	SeminarId uint      `json:"seminarId"`
	Timestamp time.Time `json:"timestamp"`
}
