package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/usecase/dto"
)

// SyncHandler - статусы синхронизации записей
type SyncHandler struct {
	syncUC *usecase.SyncUseCase
	logger *zap.Logger
}

// NewSyncHandler создает новый экземпляр SyncHandler
func NewSyncHandler(syncUC *usecase.SyncUseCase, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		syncUC: syncUC,
		logger: logger,
	}
}

// Pending godoc
// @Summary Записи, ожидающие синхронизации
// @Description Записи pending и failed: сначала улов, затем планы
// @Tags Sync
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.PendingResponse}
// @Router /api/v1/sync/pending [get]
func (h *SyncHandler) Pending(c *fiber.Ctx) error {
	resp := h.syncUC.PendingSummary(c.Context())
	return utils.SendSuccess(c, resp, &utils.Meta{
		Total:   len(resp.Records),
		Pending: resp.Pending,
	})
}

// MarkSynced godoc
// @Summary pending → synced
// @Tags Sync
// @Produce json
// @Param collection path string true "catches или trips"
// @Param id path string true "ID записи"
// @Success 200 {object} utils.SuccessResponse{data=dto.SyncTransitionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sync/{collection}/{id}/synced [post]
func (h *SyncHandler) MarkSynced(c *fiber.Ctx) error {
	return h.transition(c, h.syncUC.MarkSynced)
}

// MarkFailed godoc
// @Summary pending → failed
// @Tags Sync
// @Produce json
// @Param collection path string true "catches или trips"
// @Param id path string true "ID записи"
// @Success 200 {object} utils.SuccessResponse{data=dto.SyncTransitionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sync/{collection}/{id}/failed [post]
func (h *SyncHandler) MarkFailed(c *fiber.Ctx) error {
	return h.transition(c, h.syncUC.MarkFailed)
}

// Retry godoc
// @Summary failed → pending, запись снова уйдёт в outbox
// @Tags Sync
// @Produce json
// @Param collection path string true "catches или trips"
// @Param id path string true "ID записи"
// @Success 200 {object} utils.SuccessResponse{data=dto.SyncTransitionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sync/{collection}/{id}/retry [post]
func (h *SyncHandler) Retry(c *fiber.Ctx) error {
	return h.transition(c, h.syncUC.Retry)
}

func (h *SyncHandler) transition(
	c *fiber.Ctx,
	apply func(ctx context.Context, collection domain.Collection, id string) (*dto.SyncTransitionResponse, error),
) error {
	resp, err := apply(c.Context(), domain.Collection(c.Params("collection")), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// SyncNow godoc
// @Summary Опубликовать ожидающие записи в outbox
// @Description Публикует записи pending; failed пропускаются до Retry
// @Tags Sync
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.SyncNowResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/sync/now [post]
func (h *SyncHandler) SyncNow(c *fiber.Ctx) error {
	resp, err := h.syncUC.SyncNow(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}
