package handler

import (
	"errors"
	"time"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetUsers(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.User{}).Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if c.Query("blocked") == "true" {
		query = query.Where("is_blocked = ?", true)
	}
	limit := c.QueryInt("limit")
	page := c.QueryInt("page")
	query = utils.ApplyPagination(query, &limit, &page)

	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

func GetUserById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

func BlockUser(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.BlockUserInput)
	db := database.DB

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if user.Role == constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Admin accounts cannot be blocked", nil)
	}

	blockedBy := ""
	if admin, ok := c.Locals("actingUser").(*model.User); ok && admin != nil {
		blockedBy = admin.Email
	}

	now := time.Now()
	updates := map[string]any{
		"is_blocked":   true,
		"block_reason": input.Reason,
		"block_date":   now,
		"blocked_by":   blockedBy,
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return c.JSON(fiber.Map{"message": "User blocked successfully", "user": user})
}

func UnblockUser(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	updates := map[string]any{
		"is_blocked":   false,
		"block_reason": "",
		"block_date":   nil,
		"blocked_by":   "",
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return c.JSON(fiber.Map{"message": "User unblocked successfully", "user": user})
}

// AddWarning bumps the warning counter. Three warnings block the account.
func AddWarning(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	updates := map[string]any{"warning_count": gorm.Expr("warning_count + 1")}
	if user.WarningCount+1 >= 3 {
		updates["is_blocked"] = true
		updates["block_reason"] = "Blocked automatically after 3 warnings"
		updates["block_date"] = time.Now()
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	db.First(&user, id)
	return c.JSON(fiber.Map{"message": "Warning added", "user": user})
}

func DeleteUser(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if user.Role == constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Admin accounts cannot be deleted", nil)
	}

	if err := db.Delete(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func GetUserStats(c *fiber.Ctx) error {
	db := database.DB

	var stats model.UserStats
	if err := db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	db.Model(&model.User{}).Where("role = ?", constants.ROLE_STUDENT).Count(&stats.TotalStudents)
	db.Model(&model.User{}).Where("role = ?", constants.ROLE_ADMIN).Count(&stats.TotalAdmins)
	db.Model(&model.User{}).Where("is_blocked = ?", true).Count(&stats.BlockedUsers)
	stats.ActiveUsers = stats.TotalUsers - stats.BlockedUsers

	return c.JSON(fiber.Map{"stats": stats})
}
