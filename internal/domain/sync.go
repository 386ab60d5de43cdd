package domain

import "encoding/json"

// SyncState - статус сверки локальной записи с удалённой системой
type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncSynced  SyncState = "synced"
	SyncFailed  SyncState = "failed"
)

func (s SyncState) Valid() bool {
	switch s {
	case SyncPending, SyncSynced, SyncFailed:
		return true
	}
	return false
}

// CanTransitionTo - допустимые переходы: pending→synced, pending→failed, failed→pending
func (s SyncState) CanTransitionTo(next SyncState) bool {
	switch s {
	case SyncPending:
		return next == SyncSynced || next == SyncFailed
	case SyncFailed:
		return next == SyncPending
	default:
		return false
	}
}

// NeedsSync - запись ещё не подтверждена удалённой стороной
func (s SyncState) NeedsSync() bool {
	return s == SyncPending || s == SyncFailed
}

// Collection - именованная коллекция хранилища
type Collection string

const (
	CollectionCatches  Collection = "catches"
	CollectionTrips    Collection = "trips"
	CollectionAlerts   Collection = "alerts"
	CollectionSettings Collection = "settings"
	CollectionForecast Collection = "forecast"
)

// AllCollections - все коллекции хранилища. Порядок фиксирован, в нём же берутся блокировки.
var AllCollections = []Collection{CollectionCatches, CollectionTrips, CollectionAlerts, CollectionSettings, CollectionForecast}

// SyncableCollections - коллекции, записи которых имеют syncStatus, в порядке обхода
var SyncableCollections = []Collection{CollectionCatches, CollectionTrips}

func (c Collection) Valid() bool {
	switch c {
	case CollectionCatches, CollectionTrips, CollectionAlerts, CollectionSettings, CollectionForecast:
		return true
	}
	return false
}

// Syncable - есть ли у записей коллекции жизненный цикл синхронизации
func (c Collection) Syncable() bool {
	return c == CollectionCatches || c == CollectionTrips
}

// SyncRecord - запись, ожидающая синхронизации, вместе с исходным JSON
type SyncRecord struct {
	Collection Collection      `json:"collection"`
	ID         string          `json:"id"`
	SyncStatus SyncState       `json:"syncStatus"`
	Payload    json.RawMessage `json:"payload"`
}
