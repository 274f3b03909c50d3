package handler

import (
	"errors"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func userResponse(user *model.User) fiber.Map {
	return fiber.Map{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"role":        user.Role,
		"phone":       user.Phone,
		"institution": user.Institution,
	}
}

func Register(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterUserInput)
	db := database.DB

	email := helper.NormalizeEmail(input.Email)
	existing, err := helper.GetUserByEmail(email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.EMAIL_EXISTS, nil)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	role := input.Role
	if role == "" {
		role = constants.ROLE_STUDENT
	}

	user := model.User{
		Name:        input.Name,
		Email:       email,
		Password:    hash,
		Role:        role,
		Phone:       input.Phone,
		Institution: input.Institution,
	}
	if err := db.Create(&user).Error; err != nil {
		if helper.IsDuplicateKeyError(err) {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.EMAIL_EXISTS, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
		"user":    userResponse(&user),
	})
}

func Login(c *fiber.Ctx) error {
	input := c.Locals("input").(model.LoginInput)

	user, err := helper.GetUserByEmail(helper.NormalizeEmail(input.Email))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil || !helper.CheckPasswordHash(input.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, errors.New("email or password does not match"))
	}

	if user.IsBlocked {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_BLOCKED, nil)
	}

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    userResponse(user),
	})
}

// Profile returns the account behind the presented token.
func Profile(c *fiber.Ctx) error {
	_, user, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}
	return c.JSON(fiber.Map{"user": userResponse(user)})
}
