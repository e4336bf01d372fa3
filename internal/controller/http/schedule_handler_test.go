package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
)

func TestGetDayHandler(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	stub := &stubScheduleAPI{
		getDay: func(specialistID int64, date time.Time) ([]*model.TimeSlot, error) {
			assert.Equal(t, int64(7), specialistID)
			assert.True(t, day.Equal(date))
			return []*model.TimeSlot{
				{ID: uuid.New(), SpecialistID: 7, Date: day, StartTime: 9 * 60, Status: model.SlotStatusFree},
			}, nil
		},
	}
	h := NewScheduleHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/v1/schedule?specialistId=7&date=2026-09-10", "")

	require.NoError(t, h.GetDay(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var slots []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0]["startTime"])
}

func TestGetDayHandlerEmptyDay(t *testing.T) {
	stub := &stubScheduleAPI{
		getDay: func(int64, time.Time) ([]*model.TimeSlot, error) { return nil, nil },
	}
	h := NewScheduleHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/v1/schedule?specialistId=7&date=2026-09-10", "")

	require.NoError(t, h.GetDay(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestGetDayHandlerBadQuery(t *testing.T) {
	h := NewScheduleHandler(&stubScheduleAPI{})

	c, rec := newContext(http.MethodGet, "/api/v1/schedule?specialistId=abc&date=2026-09-10", "")

	require.NoError(t, h.GetDay(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSlotHandler(t *testing.T) {
	stub := &stubScheduleAPI{
		createSlot: func(sess model.SessionContext, date time.Time, startTime model.DayTime, description string) (*model.TimeSlot, error) {
			assert.Equal(t, testSession, sess)
			assert.Equal(t, model.DayTime(14*60+30), startTime)
			assert.Equal(t, "после обеда", description)
			return &model.TimeSlot{ID: uuid.New(), Date: date, StartTime: startTime, Status: model.SlotStatusFree}, nil
		},
	}
	h := NewScheduleHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/v1/schedule/slots",
		`{"date":"2026-09-10","startTime":"14:30","description":"после обеда"}`)

	require.NoError(t, h.CreateSlot(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateSlotHandlerBadTime(t *testing.T) {
	h := NewScheduleHandler(&stubScheduleAPI{})

	c, rec := newContext(http.MethodPost, "/api/v1/schedule/slots",
		`{"date":"2026-09-10","startTime":"25:99"}`)

	require.NoError(t, h.CreateSlot(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSlotHandlerDuplicate(t *testing.T) {
	stub := &stubScheduleAPI{
		createSlot: func(model.SessionContext, time.Time, model.DayTime, string) (*model.TimeSlot, error) {
			return nil, schedule.ErrDuplicateStartTime
		},
	}
	h := NewScheduleHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/v1/schedule/slots",
		`{"date":"2026-09-10","startTime":"14:30"}`)

	require.NoError(t, h.CreateSlot(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_start_time", decodeError(t, rec).Error)
}
