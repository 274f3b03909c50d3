package model

import "time"

type Schedule struct {
	DTO
	SeminarId uint      `gorm:"not null" json:"seminarId"`
	Date      time.Time `gorm:"not null" json:"date"`
	Time      string    `gorm:"not null" json:"time"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`

	Seminar Seminar `gorm:"foreignKey:SeminarId" json:"seminar"`
}

type CreateScheduleInput struct {
	SeminarId uint      `json:"seminarId" validate:"required,gt=0"`
	Date      time.Time `json:"date" validate:"required"`
	Time      string    `json:"time" validate:"required"`
}

type UpdateScheduleInput struct {
	Date     *time.Time `json:"date"`
	Time     *string    `json:"time"`
	IsActive *bool      `json:"isActive"`
}
