package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-app/backend/internal/model"
)

const defaultDuration = 60

func freeSlot(t *testing.T, start string) *model.TimeSlot {
	t.Helper()
	return &model.TimeSlot{
		ID:        uuid.New(),
		Date:      testDay,
		StartTime: mustTime(t, start),
		Status:    model.SlotStatusFree,
	}
}

func bookedSlot(t *testing.T, start string) *model.TimeSlot {
	t.Helper()
	slot := freeSlot(t, start)
	slot.Status = model.SlotStatusBooked
	slot.ParentSlotID = &slot.ID
	return slot
}

// День: 09:00 свободен, 10:00 занят на 60 минут (10:00-11:00).
// Бронь 09:00 на 90 минут заканчивается в 10:30 — пересечение.
func TestCheckBookingOverlap(t *testing.T) {
	anchor := freeSlot(t, "09:00")
	busy := bookedSlot(t, "10:00")
	slots := []*model.TimeSlot{anchor, busy}
	durations := map[uuid.UUID]int{busy.ID: 60}

	err := CheckBooking(anchor.ID, 90, slots, defaultDuration, durations)
	assert.ErrorIs(t, err, ErrOverlap)
}

// Та же раскладка, бронь 09:00 на 45 минут (до 09:45) — проходит
func TestCheckBookingFits(t *testing.T) {
	anchor := freeSlot(t, "09:00")
	busy := bookedSlot(t, "10:00")
	slots := []*model.TimeSlot{anchor, busy}
	durations := map[uuid.UUID]int{busy.ID: 60}

	assert.NoError(t, CheckBooking(anchor.ID, 45, slots, defaultDuration, durations))
}

// Полуинтервалы: бронь, заканчивающаяся ровно в 10:00, не конфликтует
// с бронью, начинающейся в 10:00
func TestCheckBookingTouchingBoundaries(t *testing.T) {
	anchor := freeSlot(t, "09:00")
	busy := bookedSlot(t, "10:00")
	slots := []*model.TimeSlot{anchor, busy}
	durations := map[uuid.UUID]int{busy.ID: 60}

	assert.NoError(t, CheckBooking(anchor.ID, 60, slots, defaultDuration, durations))
}

// И наоборот: бронь сразу после чужого окна
func TestCheckBookingStartsAtBusyEnd(t *testing.T) {
	busy := bookedSlot(t, "09:00")
	anchor := freeSlot(t, "10:00")
	slots := []*model.TimeSlot{busy, anchor}
	durations := map[uuid.UUID]int{busy.ID: 60}

	assert.NoError(t, CheckBooking(anchor.ID, 120, slots, defaultDuration, durations))
}

// Повторная бронь уже занятого слота
func TestCheckBookingAnchorBooked(t *testing.T) {
	anchor := bookedSlot(t, "10:00")
	slots := []*model.TimeSlot{anchor}

	err := CheckBooking(anchor.ID, 60, slots, defaultDuration, nil)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCheckBookingAnchorOccupied(t *testing.T) {
	anchor := freeSlot(t, "10:30")
	anchor.Status = model.SlotStatusOccupied
	slots := []*model.TimeSlot{anchor}

	err := CheckBooking(anchor.ID, 60, slots, defaultDuration, nil)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCheckBookingAnchorMissing(t *testing.T) {
	err := CheckBooking(uuid.New(), 60, nil, defaultDuration, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Бронь без сохранённой длительности занимает окно дефолтной длины
func TestCheckBookingDefaultDurationFallback(t *testing.T) {
	anchor := freeSlot(t, "09:00")
	busy := bookedSlot(t, "09:30")
	slots := []*model.TimeSlot{anchor, busy}

	// 09:30 + дефолтные 60 минут = 10:30; бронь 09:00-09:45 пересекается
	err := CheckBooking(anchor.ID, 45, slots, defaultDuration, nil)
	assert.ErrorIs(t, err, ErrOverlap)

	// Бронь 09:00-09:30 заканчивается ровно на границе окна — проходит
	assert.NoError(t, CheckBooking(anchor.ID, 30, slots, defaultDuration, nil))
}

// Свободные слоты внутри запрошенного окна брони не мешают
func TestCheckBookingIgnoresFreeSlots(t *testing.T) {
	anchor := freeSlot(t, "09:00")
	inside := freeSlot(t, "09:30")
	slots := []*model.TimeSlot{anchor, inside}

	assert.NoError(t, CheckBooking(anchor.ID, 120, slots, defaultDuration, nil))
}

// Бронь из нескольких услуг не может пересечь ни одно из занятых окон
func TestCheckBookingMultipleBusyWindows(t *testing.T) {
	anchor := freeSlot(t, "12:00")
	morning := bookedSlot(t, "09:00")
	evening := bookedSlot(t, "14:00")
	slots := []*model.TimeSlot{morning, anchor, evening}
	durations := map[uuid.UUID]int{morning.ID: 60, evening.ID: 90}

	assert.NoError(t, CheckBooking(anchor.ID, 120, slots, defaultDuration, durations))
	assert.ErrorIs(t, CheckBooking(anchor.ID, 121, slots, defaultDuration, durations), ErrOverlap)
}

func TestBookedWindows(t *testing.T) {
	free := freeSlot(t, "09:00")
	busy := bookedSlot(t, "10:00")
	slots := []*model.TimeSlot{free, busy}
	durations := map[uuid.UUID]int{busy.ID: 90}

	windows := BookedWindows(slots, defaultDuration, durations)
	require.Len(t, windows, 1)
	assert.Equal(t, busy.ID, windows[0].SlotID)
	assert.Equal(t, "10:00", windows[0].Start.String())
	assert.Equal(t, "11:30", windows[0].End.String())
}
