package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zapis-app/backend/internal/model"
)

// DayRegistry — слоты одного специалиста на одну дату. Наполняется из
// хранилища внутри транзакции, все изменения применяются к нему, а затем
// записываются обратно одним коммитом.
type DayRegistry struct {
	specialistID int64
	date         time.Time

	slots   []*model.TimeSlot
	byID    map[uuid.UUID]*model.TimeSlot
	byStart map[model.DayTime]*model.TimeSlot
}

// NewDayRegistry строит реестр из списка слотов дня.
// Дубликат времени начала в исходных данных — повреждённое состояние.
func NewDayRegistry(specialistID int64, date time.Time, slots []*model.TimeSlot) (*DayRegistry, error) {
	r := &DayRegistry{
		specialistID: specialistID,
		date:         date,
		byID:         make(map[uuid.UUID]*model.TimeSlot, len(slots)),
		byStart:      make(map[model.DayTime]*model.TimeSlot, len(slots)),
	}

	for _, slot := range slots {
		if _, ok := r.byStart[slot.StartTime]; ok {
			return nil, fmt.Errorf("duplicate start time %s in stored slots", slot.StartTime)
		}
		r.slots = append(r.slots, slot)
		r.byID[slot.ID] = slot
		r.byStart[slot.StartTime] = slot
	}

	r.sortSlots()
	return r, nil
}

// Create добавляет свободный слот
func (r *DayRegistry) Create(startTime model.DayTime, description string) (*model.TimeSlot, error) {
	if _, ok := r.byStart[startTime]; ok {
		return nil, fmt.Errorf("start time %s: %w", startTime, ErrDuplicateStartTime)
	}

	slot := &model.TimeSlot{
		ID:           uuid.New(),
		SpecialistID: r.specialistID,
		Date:         r.date,
		StartTime:    startTime,
		Status:       model.SlotStatusFree,
		Description:  description,
	}

	r.slots = append(r.slots, slot)
	r.byID[slot.ID] = slot
	r.byStart[slot.StartTime] = slot
	r.sortSlots()

	return slot, nil
}

// UpdateDescription меняет описание слота. Разрешено только для свободного.
func (r *DayRegistry) UpdateDescription(slotID uuid.UUID, description string) (*model.TimeSlot, error) {
	slot, ok := r.byID[slotID]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", slotID, ErrNotFound)
	}

	if !slot.IsFree() {
		return nil, fmt.Errorf("slot %s: %w", slotID, ErrNotFree)
	}

	slot.Description = description
	return slot, nil
}

// Delete удаляет слот. Забронированный или занятый слот удалить нельзя.
func (r *DayRegistry) Delete(slotID uuid.UUID) error {
	slot, ok := r.byID[slotID]
	if !ok {
		return fmt.Errorf("slot %s: %w", slotID, ErrNotFound)
	}

	if !slot.IsFree() {
		return fmt.Errorf("slot %s: %w", slotID, ErrNotFree)
	}

	delete(r.byID, slot.ID)
	delete(r.byStart, slot.StartTime)
	for i, s := range r.slots {
		if s.ID == slotID {
			r.slots = append(r.slots[:i], r.slots[i+1:]...)
			break
		}
	}

	return nil
}

// Get возвращает слот по ID
func (r *DayRegistry) Get(slotID uuid.UUID) (*model.TimeSlot, error) {
	slot, ok := r.byID[slotID]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", slotID, ErrNotFound)
	}
	return slot, nil
}

// List возвращает слоты дня по возрастанию времени начала
func (r *DayRegistry) List() []*model.TimeSlot {
	out := make([]*model.TimeSlot, len(r.slots))
	copy(out, r.slots)
	return out
}

// FreeSlotsWithin возвращает свободные слоты, чьё время начала попадает
// в полуинтервал [from, to). Это слоты, которые длинная бронь накрывает.
func (r *DayRegistry) FreeSlotsWithin(from, to model.DayTime) []*model.TimeSlot {
	var out []*model.TimeSlot
	for _, slot := range r.slots {
		if slot.IsFree() && slot.StartTime >= from && slot.StartTime < to {
			out = append(out, slot)
		}
	}
	return out
}

func (r *DayRegistry) sortSlots() {
	sort.Slice(r.slots, func(i, j int) bool {
		return r.slots[i].StartTime < r.slots[j].StartTime
	})
}
