package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripPlan_HasValidOrder(t *testing.T) {
	wps := []Waypoint{{Lat: 1}, {Lat: 2}, {Lat: 3}}

	assert.True(t, TripPlan{Waypoints: wps, OptimizedOrder: []int{2, 0, 1}}.HasValidOrder())
	assert.True(t, TripPlan{}.HasValidOrder())
	assert.False(t, TripPlan{Waypoints: wps, OptimizedOrder: []int{0, 1}}.HasValidOrder())
	assert.False(t, TripPlan{Waypoints: wps, OptimizedOrder: []int{0, 1, 1}}.HasValidOrder())
	assert.False(t, TripPlan{Waypoints: wps, OptimizedOrder: []int{0, 1, 3}}.HasValidOrder())
	assert.False(t, TripPlan{Waypoints: wps, OptimizedOrder: []int{-1, 1, 2}}.HasValidOrder())
}

func TestAppSettings_Normalize(t *testing.T) {
	assert.Equal(t, AppSettings{LowPowerMode: true, GPSPollSeconds: 60}, DefaultSettings())
	assert.Equal(t, 30, AppSettings{GPSPollSeconds: 5}.Normalize().GPSPollSeconds)
	assert.Equal(t, 300, AppSettings{GPSPollSeconds: 900}.Normalize().GPSPollSeconds)
	assert.Equal(t, 120, AppSettings{GPSPollSeconds: 120}.Normalize().GPSPollSeconds)
}
