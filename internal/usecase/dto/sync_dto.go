package dto

import "github.com/sea-companion/internal/domain"

// PendingResponse - записи, ожидающие синхронизации
type PendingResponse struct {
	Records []domain.SyncRecord `json:"records"`
	Pending int                 `json:"pending"`
	Failed  int                 `json:"failed"`
}

// SyncNowResponse - результат публикации в outbox
type SyncNowResponse struct {
	Published int `json:"published"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// SyncTransitionResponse - запись после смены статуса
type SyncTransitionResponse struct {
	Collection domain.Collection `json:"collection"`
	ID         string            `json:"id"`
	SyncStatus domain.SyncState  `json:"syncStatus"`
}
