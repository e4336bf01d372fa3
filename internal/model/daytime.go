package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DayTime — время начала слота в минутах от полуночи.
// По проводу сериализуется как строка "HH:MM" (так же, как в мини-аппе).
type DayTime int

const MinutesPerDay = 24 * 60

// ParseDayTime парсит строку вида "09:30" в DayTime
func ParseDayTime(s string) (DayTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}

	return DayTime(hours*60 + minutes), nil
}

// Add возвращает время, сдвинутое на minutes минут вперёд.
// Выход за границу суток не нормализуется: конец брони в 23:30 + 60 минут
// остаётся "за полночь" для корректного сравнения интервалов.
func (t DayTime) Add(minutes int) DayTime {
	return t + DayTime(minutes)
}

// Minutes возвращает значение в минутах от полуночи
func (t DayTime) Minutes() int {
	return int(t)
}

func (t DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t DayTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DayTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseDayTime(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
