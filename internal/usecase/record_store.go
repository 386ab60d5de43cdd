package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/pkg/errors"
)

// RecordStore - единственный владелец сохранённых коллекций. Каждая коллекция хранится
// одним JSON документом под ключом prefix+collection и переписывается целиком.
//
// На каждую коллекцию свой RWMutex: запись и read-modify-write держат блокировку на запись,
// чтение - на чтение. Между коллекциями транзакций нет, последний писатель выигрывает.
type RecordStore struct {
	blobs  repository.BlobRepository
	prefix string
	locks  map[domain.Collection]*sync.RWMutex
	logger *zap.Logger
}

// NewRecordStore создает новый экземпляр RecordStore
func NewRecordStore(blobs repository.BlobRepository, prefix string, logger *zap.Logger) *RecordStore {
	locks := make(map[domain.Collection]*sync.RWMutex, len(domain.AllCollections))
	for _, c := range domain.AllCollections {
		locks[c] = &sync.RWMutex{}
	}

	return &RecordStore{
		blobs:  blobs,
		prefix: prefix,
		locks:  locks,
		logger: logger,
	}
}

// Key - ключ документа коллекции
func (s *RecordStore) Key(c domain.Collection) string {
	return s.prefix + string(c)
}

// readBlob читает документ без блокировки. ok=false - хранилище недоступно.
func (s *RecordStore) readBlob(ctx context.Context, c domain.Collection) (data []byte, ok bool) {
	data, err := s.blobs.Get(ctx, s.Key(c))
	if err != nil {
		s.logger.Warn("Storage unavailable, using defaults",
			zap.String("collection", string(c)),
			zap.Error(err))
		return nil, false
	}
	return data, true
}

func (s *RecordStore) writeBlob(ctx context.Context, c domain.Collection, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.ErrStorage.Wrap(err)
	}

	if err := s.blobs.Set(ctx, s.Key(c), data); err != nil {
		s.logger.Error("Failed to persist collection",
			zap.String("collection", string(c)),
			zap.Error(err))
		return errors.ErrStorage.Wrap(err)
	}
	return nil
}

// decodeList разбирает документ-массив. Битый документ даёт пустой список.
func decodeList[T any](s *RecordStore, c domain.Collection, data []byte) []T {
	items := []T{}
	if len(data) == 0 {
		return items
	}
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Corrupt collection, using empty list",
			zap.String("collection", string(c)),
			zap.Error(err))
		return []T{}
	}
	if items == nil {
		// документ "null"
		return []T{}
	}
	return items
}

// getList - чтение коллекции под блокировкой на чтение, при сбое деградирует в пустой список
func getList[T any](ctx context.Context, s *RecordStore, c domain.Collection) []T {
	mu := s.locks[c]
	mu.RLock()
	defer mu.RUnlock()

	data, _ := s.readBlob(ctx, c)
	return decodeList[T](s, c, data)
}

// saveList заменяет коллекцию целиком
func saveList[T any](ctx context.Context, s *RecordStore, c domain.Collection, items []T) error {
	if items == nil {
		items = []T{}
	}

	mu := s.locks[c]
	mu.Lock()
	defer mu.Unlock()

	return s.writeBlob(ctx, c, items)
}

// updateList - read-modify-write под блокировкой на запись. Если хранилище недоступно,
// изменение не применяется, чтобы не затереть данные пустым списком.
func updateList[T any](ctx context.Context, s *RecordStore, c domain.Collection, fn func([]T) ([]T, error)) error {
	mu := s.locks[c]
	mu.Lock()
	defer mu.Unlock()

	data, err := s.blobs.Get(ctx, s.Key(c))
	if err != nil {
		s.logger.Error("Failed to read collection for update",
			zap.String("collection", string(c)),
			zap.Error(err))
		return errors.ErrStorage.Wrap(err)
	}

	items, err := fn(decodeList[T](s, c, data))
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	return s.writeBlob(ctx, c, items)
}

// prepend добавляет запись в начало, самые новые первыми
func prepend[T any](item T) func([]T) ([]T, error) {
	return func(items []T) ([]T, error) {
		return append([]T{item}, items...), nil
	}
}

// ============================================================================
// Catches
// ============================================================================

func (s *RecordStore) Catches(ctx context.Context) []domain.CatchLog {
	return getList[domain.CatchLog](ctx, s, domain.CollectionCatches)
}

func (s *RecordStore) SaveCatches(ctx context.Context, items []domain.CatchLog) error {
	return saveList(ctx, s, domain.CollectionCatches, items)
}

// AppendCatch добавляет улов в начало коллекции
func (s *RecordStore) AppendCatch(ctx context.Context, item domain.CatchLog) error {
	return updateList(ctx, s, domain.CollectionCatches, prepend(item))
}

func (s *RecordStore) UpdateCatches(ctx context.Context, fn func([]domain.CatchLog) ([]domain.CatchLog, error)) error {
	return updateList(ctx, s, domain.CollectionCatches, fn)
}

// ============================================================================
// Trips
// ============================================================================

func (s *RecordStore) Trips(ctx context.Context) []domain.TripPlan {
	return getList[domain.TripPlan](ctx, s, domain.CollectionTrips)
}

func (s *RecordStore) SaveTrips(ctx context.Context, items []domain.TripPlan) error {
	return saveList(ctx, s, domain.CollectionTrips, items)
}

// AppendTrip добавляет план в начало коллекции
func (s *RecordStore) AppendTrip(ctx context.Context, item domain.TripPlan) error {
	return updateList(ctx, s, domain.CollectionTrips, prepend(item))
}

func (s *RecordStore) UpdateTrips(ctx context.Context, fn func([]domain.TripPlan) ([]domain.TripPlan, error)) error {
	return updateList(ctx, s, domain.CollectionTrips, fn)
}

// ============================================================================
// Alerts
// ============================================================================

func (s *RecordStore) Alerts(ctx context.Context) []domain.AlertItem {
	return getList[domain.AlertItem](ctx, s, domain.CollectionAlerts)
}

func (s *RecordStore) SaveAlerts(ctx context.Context, items []domain.AlertItem) error {
	return saveList(ctx, s, domain.CollectionAlerts, items)
}

func (s *RecordStore) AppendAlert(ctx context.Context, item domain.AlertItem) error {
	return updateList(ctx, s, domain.CollectionAlerts, prepend(item))
}

func (s *RecordStore) UpdateAlerts(ctx context.Context, fn func([]domain.AlertItem) ([]domain.AlertItem, error)) error {
	return updateList(ctx, s, domain.CollectionAlerts, fn)
}

// ============================================================================
// Settings
// ============================================================================

// Settings возвращает настройки. Пустое или битое хранилище - настройки по умолчанию,
// значения вне диапазона приводятся к границам.
func (s *RecordStore) Settings(ctx context.Context) domain.AppSettings {
	mu := s.locks[domain.CollectionSettings]
	mu.RLock()
	defer mu.RUnlock()

	data, _ := s.readBlob(ctx, domain.CollectionSettings)
	return s.decodeSettings(data)
}

func (s *RecordStore) decodeSettings(data []byte) domain.AppSettings {
	settings := domain.DefaultSettings()
	if len(data) == 0 {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn("Corrupt settings, using defaults", zap.Error(err))
		return domain.DefaultSettings()
	}
	return settings.Normalize()
}

func (s *RecordStore) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	mu := s.locks[domain.CollectionSettings]
	mu.Lock()
	defer mu.Unlock()

	return s.writeBlob(ctx, domain.CollectionSettings, settings)
}

// UpdateSettings - read-modify-write настроек под блокировкой на запись
func (s *RecordStore) UpdateSettings(ctx context.Context, fn func(domain.AppSettings) (domain.AppSettings, error)) (domain.AppSettings, error) {
	mu := s.locks[domain.CollectionSettings]
	mu.Lock()
	defer mu.Unlock()

	data, err := s.blobs.Get(ctx, s.Key(domain.CollectionSettings))
	if err != nil {
		return domain.AppSettings{}, errors.ErrStorage.Wrap(err)
	}

	next, err := fn(s.decodeSettings(data))
	if err != nil {
		return domain.AppSettings{}, err
	}

	if err := s.writeBlob(ctx, domain.CollectionSettings, next); err != nil {
		return domain.AppSettings{}, err
	}
	return next, nil
}

// ============================================================================
// Forecast
// ============================================================================

// Forecast возвращает сохранённый прогноз как есть или nil
func (s *RecordStore) Forecast(ctx context.Context) json.RawMessage {
	mu := s.locks[domain.CollectionForecast]
	mu.RLock()
	defer mu.RUnlock()

	data, _ := s.readBlob(ctx, domain.CollectionForecast)
	if len(data) == 0 || !json.Valid(data) || string(data) == "null" {
		return nil
	}
	return json.RawMessage(data)
}

func (s *RecordStore) SaveForecast(ctx context.Context, forecast json.RawMessage) error {
	mu := s.locks[domain.CollectionForecast]
	mu.Lock()
	defer mu.Unlock()

	if len(forecast) == 0 {
		forecast = json.RawMessage("null")
	}
	return s.writeBlob(ctx, domain.CollectionForecast, forecast)
}

// ============================================================================
// Clear
// ============================================================================

// Clear удаляет документы коллекций. Повторный вызов ничего не меняет.
// Блокировки берутся в порядке domain.AllCollections.
func (s *RecordStore) Clear(ctx context.Context, collections ...domain.Collection) error {
	want := make(map[domain.Collection]bool, len(collections))
	for _, c := range collections {
		if !c.Valid() {
			return errors.ErrInvalidCollection.WithDetails(map[string]interface{}{"collection": string(c)})
		}
		want[c] = true
	}

	keys := make([]string, 0, len(want))
	for _, c := range domain.AllCollections {
		if !want[c] {
			continue
		}
		mu := s.locks[c]
		mu.Lock()
		defer mu.Unlock()
		keys = append(keys, s.Key(c))
	}

	if len(keys) == 0 {
		return nil
	}

	if err := s.blobs.Delete(ctx, keys...); err != nil {
		s.logger.Error("Failed to clear collections", zap.Strings("keys", keys), zap.Error(err))
		return errors.ErrStorage.Wrap(err)
	}

	s.logger.Info("Collections cleared", zap.Strings("keys", keys))
	return nil
}
