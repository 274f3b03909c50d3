package model

type Speaker struct {
	DTO
	Name         string `gorm:"not null" validate:"required" json:"name"`
	Email        string `gorm:"not null" validate:"required,email" json:"email"`
	Phone        string `json:"phone"`
	Organization string `gorm:"not null" validate:"required" json:"organization"`
	Designation  string `gorm:"not null" validate:"required" json:"designation"`
	Bio          string `gorm:"not null" validate:"required" json:"bio"`
	Expertise    string `gorm:"not null" validate:"required" json:"expertise"`
	Experience   string `gorm:"not null" validate:"required" json:"experience"`
	Linkedin     string `json:"linkedin"`
}

type CreateSpeakerInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization" validate:"required"`
	Designation  string `json:"designation" validate:"required"`
	Bio          string `json:"bio" validate:"required"`
	Expertise    string `json:"expertise" validate:"required"`
	Experience   string `json:"experience" validate:"required"`
	Linkedin     string `json:"linkedin"`
}

type UpdateSpeakerInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	Organization *string `json:"organization"`
	Designation  *string `json:"designation"`
	Bio          *string `json:"bio"`
	Expertise    *string `json:"expertise"`
	Experience   *string `json:"experience"`
	Linkedin     *string `json:"linkedin"`
}
