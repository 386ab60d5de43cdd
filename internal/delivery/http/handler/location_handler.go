package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/usecase/dto"
)

// LocationHandler принимает GPS показания от устройства
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// Update godoc
// @Summary Передать показание GPS
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.LocationRequest true "Показание"
// @Success 200 {object} utils.SuccessResponse{data=domain.LocationReading}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/location [post]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	reading, err := h.locationUC.Update(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, reading, nil)
}

// Current godoc
// @Summary Текущая позиция
// @Description Последний свежий фикс или точка по умолчанию (used_fallback=true)
// @Tags Location
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Router /api/v1/location [get]
func (h *LocationHandler) Current(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.locationUC.Status(c.Context()), nil)
}
