package handler

import (
	"errors"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateSpeaker(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateSpeakerInput)
	db := database.DB

	speaker := model.Speaker{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Organization: input.Organization,
		Designation:  input.Designation,
		Bio:          input.Bio,
		Expertise:    input.Expertise,
		Experience:   input.Experience,
		Linkedin:     input.Linkedin,
	}
	if err := db.Create(&speaker).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Speaker created successfully",
		"speaker": speaker,
	})
}

func GetSpeakers(c *fiber.Ctx) error {
	db := database.DB

	var speakers []model.Speaker
	if err := db.Order("name").Find(&speakers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"speakers": speakers, "count": len(speakers)})
}

func GetSpeakerById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var speaker model.Speaker
	if err := db.First(&speaker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SPEAKER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"speaker": speaker})
}

func UpdateSpeaker(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.UpdateSpeakerInput)
	db := database.DB

	var speaker model.Speaker
	if err := db.First(&speaker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SPEAKER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Organization != nil {
		updates["organization"] = *input.Organization
	}
	if input.Designation != nil {
		updates["designation"] = *input.Designation
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Expertise != nil {
		updates["expertise"] = *input.Expertise
	}
	if input.Experience != nil {
		updates["experience"] = *input.Experience
	}
	if input.Linkedin != nil {
		updates["linkedin"] = *input.Linkedin
	}
	if len(updates) > 0 {
		if err := db.Model(&speaker).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
		}
	}

	return c.JSON(fiber.Map{"message": "Speaker updated successfully", "speaker": speaker})
}

func DeleteSpeaker(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var speaker model.Speaker
	if err := db.First(&speaker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SPEAKER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Delete(&speaker).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return c.JSON(fiber.Map{"message": "Speaker deleted successfully"})
}
