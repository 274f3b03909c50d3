package model

import "time"

type Seminar struct {
	DTO
	Title           string     `gorm:"size:200;not null" validate:"required,max=200" json:"title"`
	Slug            string     `gorm:"size:220;uniqueIndex" json:"slug"`
	Speaker         string     `gorm:"size:100;not null" validate:"required,max=100" json:"speaker"`
	Topic           string     `gorm:"size:150;not null" validate:"required,max=150" json:"topic"`
	Description     string     `gorm:"size:1000;not null" validate:"required,max=1000" json:"description"`
	Date            *time.Time `json:"date"`
	Time            string     `json:"time"`
	Venue           string     `gorm:"size:200" json:"venue"`
	Capacity        int        `gorm:"not null" validate:"required,min=1" json:"capacity"`
	RegisteredCount int        `gorm:"not null;default:0" json:"registeredCount"`
	IsArchived      bool       `gorm:"not null;default:false" json:"isArchived"`
	ArchivedAt      *time.Time `json:"archivedAt,omitempty"`
	CreatedBy       uint       `json:"createdBy"`

	Registrations []Registration `gorm:"foreignKey:SeminarId;constraint:OnDelete:CASCADE" json:"-"`
	Schedules     []Schedule     `gorm:"foreignKey:SeminarId;constraint:OnDelete:CASCADE" json:"-"`
}

type CreateSeminarInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Speaker     string     `json:"speaker" validate:"required,max=100"`
	Topic       string     `json:"topic" validate:"required,max=150"`
	Description string     `json:"description" validate:"required,max=1000"`
	Date        *time.Time `json:"date"`
	Time        string     `json:"time"`
	Venue       string     `json:"venue" validate:"omitempty,max=200"`
	Capacity    int        `json:"capacity" validate:"required,min=1"`
}

type UpdateSeminarInput struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Speaker     *string    `json:"speaker" validate:"omitempty,max=100"`
	Topic       *string    `json:"topic" validate:"omitempty,max=150"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Date        *time.Time `json:"date"`
	Time        *string    `json:"time"`
	Venue       *string    `json:"venue" validate:"omitempty,max=200"`
	Capacity    *int       `json:"capacity" validate:"omitempty,min=1"`
}

// CapacityStatus is the payload of GET /api/seminars/:id/capacity.
type CapacityStatus struct {
	SeminarId        uint   `json:"seminarId"`
	Title            string `json:"title"`
	Capacity         int    `json:"capacity"`
	RegisteredCount  int    `json:"registeredCount"`
	AvailableSeats   int    `json:"availableSeats"`
	IsFull           bool   `json:"isFull"`
	PercentageFilled int    `json:"percentageFilled"`
}
