package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZone_IsFishingAllowed(t *testing.T) {
	tests := []struct {
		name     string
		zone     Zone
		expected bool
	}{
		{"open and open season", Zone{Kind: ZoneKindOpen, Season: SeasonOpen}, true},
		{"open kind with seasonal ban", Zone{Kind: ZoneKindOpen, Season: SeasonBanned}, false},
		{"restricted in open season", Zone{Kind: ZoneKindRestricted, Season: SeasonOpen}, false},
		{"restricted and banned", Zone{Kind: ZoneKindRestricted, Season: SeasonBanned}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.zone.IsFishingAllowed())
		})
	}
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, ZoneKindOpen.Valid())
	assert.False(t, ZoneKind("limited").Valid())
	assert.True(t, SeasonBanned.Valid())
	assert.False(t, Season("").Valid())
	assert.True(t, SeverityDanger.Valid())
	assert.False(t, Severity("critical").Valid())
}

func TestBoundingBox_Contains(t *testing.T) {
	box := BoundingBox{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1}
	assert.True(t, box.Contains(Position{Lat: 0.5, Lon: 0.5}))
	assert.True(t, box.Contains(Position{Lat: 1, Lon: 0}))
	assert.False(t, box.Contains(Position{Lat: 1.1, Lon: 0.5}))
}
