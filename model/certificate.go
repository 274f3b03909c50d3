package model

import "time"

type Certificate struct {
	DTO
	RegistrationId    uint      `gorm:"not null;uniqueIndex" json:"registrationId"`
	SeminarId         uint      `gorm:"not null" json:"seminarId"`
	StudentName       string    `gorm:"not null" json:"studentName"`
	SeminarTitle      string    `gorm:"not null" json:"seminarTitle"`
	IssueDate         time.Time `gorm:"not null" json:"issueDate"`
	CertificateNumber string    `gorm:"size:30;uniqueIndex;not null" json:"certificateNumber"`
	VerificationCode  string    `gorm:"size:8;uniqueIndex;not null" json:"verificationCode"`
	Status            string    `gorm:"not null;default:'issued'" json:"status"`

	Registration Registration `gorm:"foreignKey:RegistrationId" json:"-"`
}

type GenerateCertificateInput struct {
	RegistrationId uint `json:"registrationId" validate:"required,gt=0"`
}

type BulkCertificateInput struct {
	SeminarId uint `json:"seminarId" validate:"required,gt=0"`
}

type VerifyCertificateInput struct {
	CertificateNumber string `json:"certificateNumber" validate:"required"`
	VerificationCode  string `json:"verificationCode" validate:"required"`
}

// BulkCertificateResults counts per-registration outcomes of a bulk run.
type BulkCertificateResults struct {
	Success       int `json:"success"`
	AlreadyExists int `json:"alreadyExists"`
	Failed        int `json:"failed"`
}
