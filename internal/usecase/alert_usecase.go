package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/pkg/validator"
	"github.com/sea-companion/internal/usecase/dto"
)

// Текст уведомления о сезонном запрете, которое показывается при пустом списке
const (
	seasonalBanTitle   = "Monsoon fishing ban"
	seasonalBanMessage = "The annual monsoon ban on mechanised fishing is in force on the west coast from 1 June to 31 July. Check local notices before putting out to sea."
)

// AlertUseCase - уведомления рыбака
type AlertUseCase struct {
	store  *RecordStore
	logger *zap.Logger
}

// NewAlertUseCase создает новый экземпляр AlertUseCase
func NewAlertUseCase(store *RecordStore, logger *zap.Logger) *AlertUseCase {
	return &AlertUseCase{
		store:  store,
		logger: logger,
	}
}

// List возвращает уведомления, самые новые первыми
func (uc *AlertUseCase) List(ctx context.Context) []domain.AlertItem {
	return uc.store.Alerts(ctx)
}

// Unread - количество непрочитанных
func (uc *AlertUseCase) Unread(ctx context.Context) int {
	n := 0
	for _, a := range uc.store.Alerts(ctx) {
		if !a.Read {
			n++
		}
	}
	return n
}

// Create добавляет уведомление. Без severity - info.
func (uc *AlertUseCase) Create(ctx context.Context, req dto.CreateAlertRequest) (*domain.AlertItem, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"error": err.Error(),
		})
	}

	severity := domain.Severity(req.Severity)
	if severity == "" {
		severity = domain.SeverityInfo
	}

	item := newAlert(strings.TrimSpace(req.Type), strings.TrimSpace(req.Title), strings.TrimSpace(req.Message), severity)
	if err := uc.store.AppendAlert(ctx, item); err != nil {
		return nil, err
	}

	return &item, nil
}

// MarkRead помечает уведомление прочитанным. Повторный вызов ничего не меняет.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id string) (*domain.AlertItem, error) {
	var updated domain.AlertItem

	err := uc.store.UpdateAlerts(ctx, func(items []domain.AlertItem) ([]domain.AlertItem, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Read = true
				updated = items[i]
				return items, nil
			}
		}
		return nil, errors.ErrRecordNotFound.WithDetails(map[string]interface{}{
			"collection": string(domain.CollectionAlerts),
			"id":         id,
		})
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// SeedSeasonalBanIfEmpty добавляет уведомление о сезонном запрете, если уведомлений ещё нет.
// Возвращает true, если уведомление добавлено.
func (uc *AlertUseCase) SeedSeasonalBanIfEmpty(ctx context.Context) (bool, error) {
	seeded := false

	err := uc.store.UpdateAlerts(ctx, func(items []domain.AlertItem) ([]domain.AlertItem, error) {
		if len(items) > 0 {
			return items, nil
		}
		seeded = true
		return []domain.AlertItem{
			newAlert(domain.AlertTypeSeasonalBan, seasonalBanTitle, seasonalBanMessage, domain.SeverityWarning),
		}, nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		uc.logger.Info("Seasonal ban alert seeded")
	}
	return seeded, nil
}

// RaiseBoundaryAlerts добавляет по уведомлению на каждое новое нарушение границы
func (uc *AlertUseCase) RaiseBoundaryAlerts(ctx context.Context, violations []domain.Violation) error {
	if len(violations) == 0 {
		return nil
	}

	fresh := make([]domain.AlertItem, 0, len(violations))
	for _, v := range violations {
		fresh = append(fresh, boundaryAlert(v))
	}

	err := uc.store.UpdateAlerts(ctx, func(items []domain.AlertItem) ([]domain.AlertItem, error) {
		return append(fresh, items...), nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("Boundary alerts raised", zap.Int("count", len(fresh)))
	return nil
}

// Clear удаляет все уведомления
func (uc *AlertUseCase) Clear(ctx context.Context) error {
	return uc.store.Clear(ctx, domain.CollectionAlerts)
}

func newAlert(alertType, title, message string, severity domain.Severity) domain.AlertItem {
	return domain.AlertItem{
		ID:        uuid.NewString(),
		Type:      alertType,
		Title:     title,
		Message:   message,
		Severity:  severity,
		Timestamp: domain.NowMillis(),
		Read:      false,
	}
}

func boundaryAlert(v domain.Violation) domain.AlertItem {
	name := v.BoundaryName
	if name == "" {
		name = v.BoundaryID
	}

	if v.Type == domain.ViolationInside {
		return newAlert(domain.AlertTypeBoundary,
			"Inside restricted area",
			fmt.Sprintf("You are inside %s. Leave the area immediately.", name),
			domain.SeverityDanger)
	}

	return newAlert(domain.AlertTypeBoundary,
		"Approaching boundary",
		fmt.Sprintf("%s is %.1f km away.", name, v.DistanceKm),
		v.Severity)
}
