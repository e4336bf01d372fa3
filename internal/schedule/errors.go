package schedule

import "errors"

// Ошибки движка расписания. Координатор и HTTP-слой различают их через errors.Is.
var (
	ErrDuplicateStartTime = errors.New("slot with this start time already exists")
	ErrNotFree            = errors.New("slot is not free")
	ErrNotFound           = errors.New("slot not found")
	ErrSlotUnavailable    = errors.New("slot is not available for booking")
	ErrOverlap            = errors.New("booking overlaps an existing booking")
	ErrNotPending         = errors.New("appointment is not pending")
	ErrNotPrimary         = errors.New("slot is not the primary slot of its booking")
	ErrPermission         = errors.New("operation is not permitted for this user")
	ErrValidation         = errors.New("invalid request")
	ErrUpstream           = errors.New("storage unavailable")
)
