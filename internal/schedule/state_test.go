package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-app/backend/internal/model"
)

func testAppointment() *model.Appointment {
	return &model.Appointment{
		ID:            uuid.New(),
		SpecialistID:  1,
		ClientID:      2,
		Date:          testDay,
		Services:      []string{"стрижка"},
		TotalPrice:    150000,
		TotalDuration: 90,
	}
}

func TestBook(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	covered := []*model.TimeSlot{freeSlot(t, "10:00")}

	require.NoError(t, Book(appt, primary, covered))

	assert.Equal(t, model.SlotStatusBooked, primary.Status)
	assert.True(t, primary.IsPrimary())
	assert.Equal(t, appt.ID, *primary.AppointmentID)

	assert.Equal(t, model.SlotStatusOccupied, covered[0].Status)
	assert.Equal(t, primary.ID, *covered[0].ParentSlotID)
	assert.False(t, covered[0].IsPrimary())

	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	assert.Equal(t, primary.ID, appt.PrimarySlotID)
	assert.Equal(t, primary.StartTime, appt.StartTime)
}

func TestBookNonFreePrimary(t *testing.T) {
	appt := testAppointment()
	primary := bookedSlot(t, "09:00")

	assert.ErrorIs(t, Book(appt, primary, nil), ErrSlotUnavailable)
}

func TestBookNonFreeCovered(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	covered := []*model.TimeSlot{bookedSlot(t, "10:00")}

	assert.ErrorIs(t, Book(appt, primary, covered), ErrSlotUnavailable)
}

func TestConfirm(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	require.NoError(t, Book(appt, primary, nil))

	require.NoError(t, Confirm(appt, primary))
	assert.Equal(t, model.AppointmentStatusConfirmed, appt.Status)
}

// Двойная отправка формы подтверждения — no-op, не ошибка
func TestConfirmIdempotent(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	require.NoError(t, Book(appt, primary, nil))

	require.NoError(t, Confirm(appt, primary))
	require.NoError(t, Confirm(appt, primary))
	assert.Equal(t, model.AppointmentStatusConfirmed, appt.Status)
}

func TestConfirmOnContinuationSlot(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	covered := []*model.TimeSlot{freeSlot(t, "10:00")}
	require.NoError(t, Book(appt, primary, covered))

	assert.ErrorIs(t, Confirm(appt, covered[0]), ErrNotPrimary)
}

func TestConfirmCanceled(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	require.NoError(t, Book(appt, primary, nil))

	// Статус меняем напрямую: Cancel заодно чистит признак первичности,
	// а здесь нужен именно переход confirm на отменённой записи
	appt.Status = model.AppointmentStatusCanceled
	assert.ErrorIs(t, Confirm(appt, primary), ErrNotPending)
}

func TestCancelPending(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	covered := []*model.TimeSlot{freeSlot(t, "10:00")}
	require.NoError(t, Book(appt, primary, covered))

	all := append([]*model.TimeSlot{primary}, covered...)
	require.NoError(t, Cancel(appt, primary, all))

	for _, slot := range all {
		assert.Equal(t, model.SlotStatusFree, slot.Status)
		assert.Nil(t, slot.ParentSlotID)
		assert.Nil(t, slot.AppointmentID)
	}
	assert.Equal(t, model.AppointmentStatusCanceled, appt.Status)
}

func TestCancelConfirmed(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	require.NoError(t, Book(appt, primary, nil))
	require.NoError(t, Confirm(appt, primary))

	require.NoError(t, Cancel(appt, primary, []*model.TimeSlot{primary}))
	assert.Equal(t, model.SlotStatusFree, primary.Status)

	// Отменённый слот снова бронируется
	other := testAppointment()
	assert.NoError(t, Book(other, primary, nil))
}

func TestCancelOnContinuationSlot(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	covered := []*model.TimeSlot{freeSlot(t, "10:00")}
	require.NoError(t, Book(appt, primary, covered))

	assert.ErrorIs(t, Cancel(appt, covered[0], nil), ErrNotPrimary)
}

func TestCancelAlreadyCanceled(t *testing.T) {
	appt := testAppointment()
	primary := freeSlot(t, "09:00")
	require.NoError(t, Book(appt, primary, nil))

	all := []*model.TimeSlot{primary}
	require.NoError(t, Cancel(appt, primary, all))

	// Слот освобождён, повторная отмена не находит активную запись.
	// Первичность слота уже потеряна, поэтому приходит ErrNotPrimary.
	err := Cancel(appt, primary, all)
	assert.Error(t, err)
}
