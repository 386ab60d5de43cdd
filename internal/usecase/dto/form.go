package dto

import (
	"bytes"
	"encoding/json"

	"github.com/sea-companion/internal/pkg/utils"
)

// FormNumber - числовое поле формы. Принимает JSON число, строку с числом или null.
// Всё, что не разбирается в конечное число, считается отсутствующим значением, а не ошибкой.
type FormNumber struct {
	Value float64
	Set   bool
}

// Num - заданное значение, удобно в тестах и при сборке запросов в коде
func Num(v float64) FormNumber {
	return FormNumber{Value: v, Set: true}
}

func (n *FormNumber) UnmarshalJSON(b []byte) error {
	*n = FormNumber{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if v, ok := utils.ParseNumber(s); ok {
			*n = Num(v)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var v float64
		if err := json.Unmarshal(b, &v); err == nil {
			*n = Num(v)
		}
	}

	return nil
}

func (n FormNumber) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// PointInput - координаты из формы
type PointInput struct {
	Lat FormNumber `json:"lat"`
	Lon FormNumber `json:"lon"`
}

// Usable - обе координаты заданы и в допустимом диапазоне
func (p PointInput) Usable() bool {
	return p.Lat.Set && p.Lon.Set && utils.ValidateCoordinates(p.Lat.Value, p.Lon.Value)
}
