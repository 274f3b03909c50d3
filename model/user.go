package model

import "time"

type User struct {
	DTO
	Name        string     `gorm:"not null" validate:"required" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Password    string     `gorm:"not null" validate:"required,min=6" json:"-"`
	Role        string     `gorm:"not null;default:'student'" json:"role"`
	Phone       string     `json:"phone"`
	Institution string     `json:"institution"`
	IsBlocked   bool       `gorm:"not null;default:false" json:"isBlocked"`
	BlockReason string     `json:"blockReason,omitempty"`
	BlockDate   *time.Time `json:"blockDate,omitempty"`
	BlockedBy   string     `json:"blockedBy,omitempty"`
	WarningCount int       `gorm:"not null;default:0" json:"warningCount"`
}

type RegisterUserInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"omitempty,oneof=admin student"`
	Phone       string `json:"phone"`
	Institution string `json:"institution"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type BlockUserInput struct {
	Reason string `json:"reason" validate:"required"`
}

type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalStudents int64 `json:"totalStudents"`
	TotalAdmins   int64 `json:"totalAdmins"`
	BlockedUsers  int64 `json:"blockedUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
}
