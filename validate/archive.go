package validate

import (
	"errors"
	"strconv"

	"seminar_manager/constants"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func ArchiveSeminar(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil || id <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		// Body is optional; all fields default from the seminar itself.
		var input model.ArchiveSeminarInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
			}
			if err := validate.Struct(input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
			}
		}

		c.Locals("inputId", uint(id))
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateArchive(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil || id <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateArchiveInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("inputId", uint(id))
		c.Locals("input", input)
		return c.Next()
	}
}
