package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/usecase/dto"
)

// CatchHandler - журнал улова
type CatchHandler struct {
	catchUC *usecase.CatchUseCase
	logger  *zap.Logger
}

// NewCatchHandler создает новый экземпляр CatchHandler
func NewCatchHandler(catchUC *usecase.CatchUseCase, logger *zap.Logger) *CatchHandler {
	return &CatchHandler{
		catchUC: catchUC,
		logger:  logger,
	}
}

// List godoc
// @Summary Журнал улова
// @Description Все записи улова, самые новые первыми
// @Tags Catches
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.CatchLog}
// @Router /api/v1/catches [get]
func (h *CatchHandler) List(c *fiber.Ctx) error {
	catches := h.catchUC.List(c.Context())
	return utils.SendSuccess(c, catches, &utils.Meta{Total: len(catches)})
}

// Create godoc
// @Summary Записать улов
// @Description Числовые поля принимаются числом или строкой; некорректные значения отбрасываются
// @Tags Catches
// @Accept json
// @Produce json
// @Param request body dto.CreateCatchRequest true "Улов"
// @Success 201 {object} utils.SuccessResponse{data=domain.CatchLog}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/catches [post]
func (h *CatchHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCatchRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}

	record, err := h.catchUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, record)
}

// Clear godoc
// @Summary Очистить журнал улова
// @Tags Catches
// @Success 204
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/catches [delete]
func (h *CatchHandler) Clear(c *fiber.Ctx) error {
	if err := h.catchUC.Clear(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
