package schedule

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zapis-app/backend/internal/model"
)

// BookedWindow — занятое окно чужой брони, из-за которого отклонена заявка
type BookedWindow struct {
	SlotID uuid.UUID
	Start  model.DayTime
	End    model.DayTime
}

// CheckBooking решает, можно ли забронировать anchor-слот на totalDuration минут.
// Чистая функция: читает список слотов дня и ничего не меняет.
//
// Окна сравниваются как полуинтервалы [start, start+duration): бронь,
// заканчивающаяся ровно в момент начала другой, конфликтом не считается.
// Проверка идёт только против забронированных слотов — свободные слоты внутри
// запрошенного окна не мешают брони (их накрытие обрабатывает State Machine).
func CheckBooking(anchorID uuid.UUID, totalDuration int, slots []*model.TimeSlot, defaultDuration int, durations map[uuid.UUID]int) error {
	var anchor *model.TimeSlot
	for _, slot := range slots {
		if slot.ID == anchorID {
			anchor = slot
			break
		}
	}

	if anchor == nil {
		return fmt.Errorf("anchor slot %s: %w", anchorID, ErrNotFound)
	}

	if !anchor.IsFree() {
		return fmt.Errorf("anchor slot %s: %w", anchorID, ErrSlotUnavailable)
	}

	desiredStart := anchor.StartTime
	desiredEnd := desiredStart.Add(totalDuration)

	for _, slot := range slots {
		if slot.ID == anchorID || slot.Status != model.SlotStatusBooked {
			continue
		}

		duration, ok := durations[slot.ID]
		if !ok || duration <= 0 {
			// У брони нет сохранённой длительности — берём настроенный дефолт.
			// Координатор логирует такие записи как проблему качества данных.
			duration = defaultDuration
		}

		slotStart := slot.StartTime
		slotEnd := slotStart.Add(duration)

		if desiredStart < slotEnd && desiredEnd > slotStart {
			return fmt.Errorf("%w: busy %s-%s", ErrOverlap, slotStart, slotEnd)
		}
	}

	return nil
}

// BookedWindows возвращает занятые окна дня, отсортированные вместе со слотами.
// Используется для отображения занятости без раскрытия чужих записей.
func BookedWindows(slots []*model.TimeSlot, defaultDuration int, durations map[uuid.UUID]int) []BookedWindow {
	var out []BookedWindow
	for _, slot := range slots {
		if slot.Status != model.SlotStatusBooked {
			continue
		}

		duration, ok := durations[slot.ID]
		if !ok || duration <= 0 {
			duration = defaultDuration
		}

		out = append(out, BookedWindow{
			SlotID: slot.ID,
			Start:  slot.StartTime,
			End:    slot.StartTime.Add(duration),
		})
	}
	return out
}
