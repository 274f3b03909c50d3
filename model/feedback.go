package model

import "time"

type Feedback struct {
	DTO
	RegistrationId       uint      `gorm:"not null;uniqueIndex" json:"registrationId"`
	SeminarId            uint      `gorm:"not null" json:"seminarId"`
	Rating               int       `gorm:"not null" json:"rating"`
	ContentQuality       int       `gorm:"not null" json:"contentQuality"`
	SpeakerEffectiveness int       `gorm:"not null" json:"speakerEffectiveness"`
	OrganizationQuality  int       `gorm:"not null" json:"organizationQuality"`
	Comments             string    `gorm:"size:1000" json:"comments"`
	Suggestions          string    `gorm:"size:1000" json:"suggestions"`
	SubmittedAt          time.Time `gorm:"not null" json:"submittedAt"`

	Registration Registration `gorm:"foreignKey:RegistrationId" json:"-"`
}

type SubmitFeedbackInput struct {
	RegistrationId       uint   `json:"registrationId" validate:"required,gt=0"`
	SeminarId            uint   `json:"seminarId" validate:"required,gt=0"`
	Rating               int    `json:"rating" validate:"required,min=1,max=5"`
	ContentQuality       int    `json:"contentQuality" validate:"required,min=1,max=5"`
	SpeakerEffectiveness int    `json:"speakerEffectiveness" validate:"required,min=1,max=5"`
	OrganizationQuality  int    `json:"organizationQuality" validate:"required,min=1,max=5"`
	Comments             string `json:"comments" validate:"omitempty,max=1000"`
	Suggestions          string `json:"suggestions" validate:"omitempty,max=1000"`
}

type AverageRatings struct {
	OverallRating        float64 `json:"overallRating"`
	ContentQuality       float64 `json:"contentQuality"`
	SpeakerEffectiveness float64 `json:"speakerEffectiveness"`
	OrganizationQuality  float64 `json:"organizationQuality"`
}
