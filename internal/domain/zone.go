package domain

// ZoneKind - регуляторный тип зоны
type ZoneKind string

const (
	ZoneKindOpen       ZoneKind = "open"
	ZoneKindRestricted ZoneKind = "restricted"
)

// Valid проверяет, что значение входит в перечисление
func (k ZoneKind) Valid() bool {
	switch k {
	case ZoneKindOpen, ZoneKindRestricted:
		return true
	}
	return false
}

// Season - сезонный статус зоны
type Season string

const (
	SeasonOpen   Season = "open"
	SeasonBanned Season = "banned"
)

func (s Season) Valid() bool {
	switch s {
	case SeasonOpen, SeasonBanned:
		return true
	}
	return false
}

// Zone - регуляторный полигон. Кольцо замыкается неявно, повтор первой вершины допустим.
type Zone struct {
	ID          string     `json:"id" db:"id" validate:"required"`
	Name        string     `json:"name,omitempty" db:"name"`
	Kind        ZoneKind   `json:"kind" db:"kind" validate:"required,oneof=open restricted"`
	Season      Season     `json:"season" db:"season" validate:"required,oneof=open banned"`
	Coordinates []Position `json:"coordinates" db:"-" validate:"min=3"`
}

// IsFishingAllowed - статический предикат зоны: false, если зона закрыта или действует сезонный запрет
func (z Zone) IsFishingAllowed() bool {
	return z.Kind != ZoneKindRestricted && z.Season != SeasonBanned
}

// Classification - результат классификации позиции по каталогу зон
type Classification string

const (
	ClassificationRestricted  Classification = "restricted"
	ClassificationSeasonalBan Classification = "seasonal_ban"
	ClassificationCaution     Classification = "caution"
	ClassificationOpen        Classification = "open"
)

// ZoneClassification - классификация с зоной, которая её определила
type ZoneClassification struct {
	Classification Classification `json:"classification"`
	ZoneID         string         `json:"zone_id,omitempty"`
	ZoneName       string         `json:"zone_name,omitempty"`
}
