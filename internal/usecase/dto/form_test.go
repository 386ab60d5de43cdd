package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sea-companion/internal/usecase/dto"
)

func TestFormNumber_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  dto.FormNumber
	}{
		{"number", `12.5`, dto.Num(12.5)},
		{"negative number", `-3`, dto.Num(-3)},
		{"numeric string", `"7.25"`, dto.Num(7.25)},
		{"padded string", `"  4 "`, dto.Num(4)},
		{"empty string", `""`, dto.FormNumber{}},
		{"garbage string", `"abc"`, dto.FormNumber{}},
		{"NaN string", `"NaN"`, dto.FormNumber{}},
		{"infinite string", `"Inf"`, dto.FormNumber{}},
		{"null", `null`, dto.FormNumber{}},
		{"bool", `true`, dto.FormNumber{}},
		{"object", `{"v":1}`, dto.FormNumber{}},
		{"overflow", `1e400`, dto.FormNumber{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dto.FormNumber
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormNumber_InRequest(t *testing.T) {
	var req dto.CreateCatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"species":"Pomfret","weightKg":"2.5"}`), &req))

	assert.Equal(t, "Pomfret", req.Species)
	assert.Equal(t, dto.Num(2.5), req.WeightKg)
	assert.False(t, req.Quantity.Set)
}

func TestFormNumber_Marshal(t *testing.T) {
	data, err := json.Marshal(dto.PointInput{Lat: dto.Num(19.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":19.5,"lon":null}`, string(data))
}

func TestPointInput_Usable(t *testing.T) {
	assert.True(t, dto.PointInput{Lat: dto.Num(0), Lon: dto.Num(0)}.Usable())
	assert.False(t, dto.PointInput{Lat: dto.Num(91), Lon: dto.Num(0)}.Usable())
	assert.False(t, dto.PointInput{Lat: dto.Num(10)}.Usable())
}
