package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/pkg/utils"
)

// invalidBody - ответ на тело запроса, которое не удалось разобрать
func invalidBody(c *fiber.Ctx, err error) error {
	return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"error": "invalid request body: " + err.Error(),
	}))
}

// parseBody разбирает JSON тело; пустое тело оставляет req нетронутым
func parseBody(c *fiber.Ctx, req interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(req)
}
