package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zapis-app/backend/internal/app"
	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
)

// Хранилища, нужные координатору. Интерфейсы объявлены на стороне
// потребителя, pgx-репозитории реализуют их как есть.

type SlotStore interface {
	GetDay(ctx context.Context, specialistID int64, date time.Time) ([]*model.TimeSlot, error)
	GetDayForUpdate(ctx context.Context, specialistID int64, date time.Time) ([]*model.TimeSlot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
	Insert(ctx context.Context, slot *model.TimeSlot) error
	Update(ctx context.Context, slot *model.TimeSlot) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]*model.TimeSlot, error)
}

type AppointmentStore interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	GetByPrimarySlotID(ctx context.Context, slotID uuid.UUID) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
	GetPendingBySpecialist(ctx context.Context, specialistID int64) ([]*model.Appointment, error)
	GetActiveByDay(ctx context.Context, userID int64, forSpecialist bool, date time.Time) ([]*model.Appointment, error)
	GetUpcoming(ctx context.Context, userID int64, forSpecialist bool, today time.Time) ([]*model.Appointment, error)
	GetArchivePage(ctx context.Context, userID int64, forSpecialist bool, today time.Time, cursorDate *time.Time, cursorID *uuid.UUID, pageSize int) ([]*model.Appointment, error)
}

type CatalogStore interface {
	GetByNames(ctx context.Context, specialistID int64, names []string) ([]*model.Service, error)
}

type UserStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

// TxRunner выполняет fn как одну транзакцию чтения-изменения-записи
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ScheduleService — единственная точка входа для операций над расписанием.
// Каждая мутация выполняется в одной транзакции с блокировкой слотов дня,
// так что проигравший гонку за слот получает ErrSlotUnavailable.
type ScheduleService struct {
	tx      TxRunner
	slots   SlotStore
	appts   AppointmentStore
	catalog CatalogStore
	users   UserStore
	metrics *app.Metrics
	logger  *zap.Logger

	// Длительность для старых броней без сохранённой длительности
	defaultDuration int

	now func() time.Time
}

func NewScheduleService(
	tx TxRunner,
	slots SlotStore,
	appts AppointmentStore,
	catalog CatalogStore,
	users UserStore,
	metrics *app.Metrics,
	logger *zap.Logger,
	defaultDuration int,
) *ScheduleService {
	return &ScheduleService{
		tx:              tx,
		slots:           slots,
		appts:           appts,
		catalog:         catalog,
		users:           users,
		metrics:         metrics,
		logger:          logger,
		defaultDuration: defaultDuration,
		now:             time.Now,
	}
}

// BookRequest — заявка клиента на бронирование anchor-слота
type BookRequest struct {
	SlotID   uuid.UUID
	Services []string
	Comment  string
}

// GetDay возвращает слоты специалиста на дату
func (s *ScheduleService) GetDay(ctx context.Context, specialistID int64, date time.Time) ([]*model.TimeSlot, error) {
	return s.slots.GetDay(ctx, specialistID, dateOnly(date))
}

// CreateSlot создаёт свободный слот в расписании специалиста
func (s *ScheduleService) CreateSlot(ctx context.Context, sess model.SessionContext, date time.Time, startTime model.DayTime, description string) (*model.TimeSlot, error) {
	if sess.Role != model.RoleSpecialist {
		return nil, fmt.Errorf("create slot: %w", schedule.ErrPermission)
	}

	day := dateOnly(date)
	if day.Before(dateOnly(s.now())) {
		return nil, fmt.Errorf("create slot: date %s is in the past: %w", day.Format("2006-01-02"), schedule.ErrValidation)
	}

	var created *model.TimeSlot
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := s.slots.GetDayForUpdate(ctx, sess.UserID, day)
		if err != nil {
			return err
		}

		registry, err := schedule.NewDayRegistry(sess.UserID, day, stored)
		if err != nil {
			return err
		}

		created, err = registry.Create(startTime, description)
		if err != nil {
			return err
		}

		return s.slots.Insert(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.SlotsCreated.Inc()
	s.logger.Info("Slot created",
		zap.Int64("specialist_id", sess.UserID),
		zap.String("date", day.Format("2006-01-02")),
		zap.String("start_time", startTime.String()),
	)

	return created, nil
}

// UpdateSlotDescription меняет описание свободного слота
func (s *ScheduleService) UpdateSlotDescription(ctx context.Context, sess model.SessionContext, slotID uuid.UUID, description string) (*model.TimeSlot, error) {
	if sess.Role != model.RoleSpecialist {
		return nil, fmt.Errorf("update slot: %w", schedule.ErrPermission)
	}

	var updated *model.TimeSlot
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		registry, err := s.lockDayBySlot(ctx, sess.UserID, slotID)
		if err != nil {
			return err
		}

		updated, err = registry.UpdateDescription(slotID, description)
		if err != nil {
			return err
		}

		return s.slots.Update(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteSlot удаляет свободный слот
func (s *ScheduleService) DeleteSlot(ctx context.Context, sess model.SessionContext, slotID uuid.UUID) error {
	if sess.Role != model.RoleSpecialist {
		return fmt.Errorf("delete slot: %w", schedule.ErrPermission)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		registry, err := s.lockDayBySlot(ctx, sess.UserID, slotID)
		if err != nil {
			return err
		}

		if err := registry.Delete(slotID); err != nil {
			return err
		}

		return s.slots.Delete(ctx, slotID)
	})
}

// Book бронирует anchor-слот под выбранные услуги. Стоимость и длительность
// пересчитываются по текущему каталогу специалиста: итогам из заявки
// клиента сервер не доверяет.
func (s *ScheduleService) Book(ctx context.Context, sess model.SessionContext, req BookRequest) (*model.Appointment, error) {
	if sess.Role != model.RoleClient {
		return nil, fmt.Errorf("book: %w", schedule.ErrPermission)
	}

	if len(req.Services) == 0 {
		return nil, fmt.Errorf("book: empty service selection: %w", schedule.ErrValidation)
	}

	var appt *model.Appointment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		anchor, err := s.slots.GetByID(ctx, req.SlotID)
		if err != nil {
			return err
		}
		if anchor == nil {
			return fmt.Errorf("book: slot %s: %w", req.SlotID, schedule.ErrNotFound)
		}

		if anchor.Date.Before(dateOnly(s.now())) {
			return fmt.Errorf("book: date %s is in the past: %w", anchor.Date.Format("2006-01-02"), schedule.ErrValidation)
		}

		totalPrice, totalDuration, err := s.priceServices(ctx, anchor.SpecialistID, req.Services)
		if err != nil {
			return err
		}

		stored, err := s.slots.GetDayForUpdate(ctx, anchor.SpecialistID, anchor.Date)
		if err != nil {
			return err
		}

		registry, err := schedule.NewDayRegistry(anchor.SpecialistID, anchor.Date, stored)
		if err != nil {
			return err
		}

		// Перечитываем якорь под блокировкой: версия из GetByID могла устареть
		anchor, err = registry.Get(req.SlotID)
		if err != nil {
			return err
		}

		durations, err := s.bookedDurations(ctx, anchor.SpecialistID, anchor.Date, stored)
		if err != nil {
			return err
		}

		if err := schedule.CheckBooking(req.SlotID, totalDuration, registry.List(), s.defaultDuration, durations); err != nil {
			return err
		}

		user, err := s.users.GetByTelegramID(ctx, sess.UserID)
		if err != nil {
			return err
		}

		username := ""
		if user != nil {
			username = user.Username
		}

		appt = &model.Appointment{
			ID:             uuid.New(),
			SpecialistID:   anchor.SpecialistID,
			ClientID:       sess.UserID,
			ClientUsername: username,
			Date:           anchor.Date,
			Services:       req.Services,
			TotalPrice:     totalPrice,
			TotalDuration:  totalDuration,
			Comment:        req.Comment,
		}

		covered := registry.FreeSlotsWithin(anchor.StartTime, anchor.StartTime.Add(totalDuration))
		covered = excludeSlot(covered, anchor.ID)

		if err := schedule.Book(appt, anchor, covered); err != nil {
			return err
		}

		if err := s.appts.Create(ctx, appt); err != nil {
			return err
		}

		if err := s.slots.Update(ctx, anchor); err != nil {
			return err
		}
		for _, slot := range covered {
			if err := s.slots.Update(ctx, slot); err != nil {
				return err
			}
		}

		appt.SlotIDs = slotIDs(anchor, covered)
		return nil
	})
	if err != nil {
		s.metrics.BookingAttempts.WithLabelValues(bookingOutcome(err)).Inc()
		return nil, err
	}

	s.metrics.BookingAttempts.WithLabelValues("booked").Inc()
	s.logger.Info("Slot booked",
		zap.String("appointment_id", appt.ID.String()),
		zap.Int64("client_id", sess.UserID),
		zap.Int64("specialist_id", appt.SpecialistID),
		zap.String("date", appt.Date.Format("2006-01-02")),
		zap.String("start_time", appt.StartTime.String()),
		zap.Int("total_duration", appt.TotalDuration),
		zap.Int("total_price", appt.TotalPrice),
	)

	return appt, nil
}

// Confirm подтверждает запись. Повторное подтверждение — успешный no-op.
func (s *ScheduleService) Confirm(ctx context.Context, sess model.SessionContext, primarySlotID uuid.UUID) (*model.Appointment, error) {
	if sess.Role != model.RoleSpecialist {
		return nil, fmt.Errorf("confirm: %w", schedule.ErrPermission)
	}

	var appt *model.Appointment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		slot, err := s.lockedSlot(ctx, primarySlotID)
		if err != nil {
			return err
		}

		if slot.SpecialistID != sess.UserID {
			return fmt.Errorf("confirm: slot %s: %w", primarySlotID, schedule.ErrPermission)
		}

		appt, err = s.activeAppointment(ctx, slot)
		if err != nil {
			return err
		}

		if err := schedule.Confirm(appt, slot); err != nil {
			return err
		}

		return s.appts.UpdateStatus(ctx, appt.ID, appt.Status)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Appointment confirmed",
		zap.String("appointment_id", appt.ID.String()),
		zap.Int64("specialist_id", sess.UserID),
	)

	return appt, nil
}

// Cancel отменяет запись и освобождает её слоты. Доступна обеим сторонам
// записи: клиенту и специалисту.
func (s *ScheduleService) Cancel(ctx context.Context, sess model.SessionContext, primarySlotID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		slot, err := s.lockedSlot(ctx, primarySlotID)
		if err != nil {
			return err
		}

		appt, err := s.activeAppointment(ctx, slot)
		if err != nil {
			return err
		}

		if sess.UserID != appt.ClientID && sess.UserID != appt.SpecialistID {
			return fmt.Errorf("cancel: appointment %s: %w", appt.ID, schedule.ErrPermission)
		}

		occupied, err := s.slots.GetByAppointmentID(ctx, appt.ID)
		if err != nil {
			return err
		}

		if err := schedule.Cancel(appt, slot, occupied); err != nil {
			return err
		}

		for _, sl := range occupied {
			if err := s.slots.Update(ctx, sl); err != nil {
				return err
			}
		}

		return s.appts.UpdateStatus(ctx, appt.ID, appt.Status)
	})
	if err != nil {
		return err
	}

	s.metrics.Cancellations.Inc()
	s.logger.Info("Appointment canceled",
		zap.String("primary_slot_id", primarySlotID.String()),
		zap.Int64("user_id", sess.UserID),
	)

	return nil
}

// GetPending возвращает неподтверждённые записи специалиста
func (s *ScheduleService) GetPending(ctx context.Context, sess model.SessionContext) ([]*model.Appointment, error) {
	if sess.Role != model.RoleSpecialist {
		return nil, fmt.Errorf("get pending: %w", schedule.ErrPermission)
	}
	return s.appts.GetPendingBySpecialist(ctx, sess.UserID)
}

// GetDayAppointments возвращает активные записи пользователя на дату
func (s *ScheduleService) GetDayAppointments(ctx context.Context, sess model.SessionContext, date time.Time) ([]*model.Appointment, error) {
	return s.appts.GetActiveByDay(ctx, sess.UserID, sess.Role == model.RoleSpecialist, dateOnly(date))
}

// GetUpcoming возвращает активные записи с сегодняшнего дня
func (s *ScheduleService) GetUpcoming(ctx context.Context, sess model.SessionContext) ([]*model.Appointment, error) {
	return s.appts.GetUpcoming(ctx, sess.UserID, sess.Role == model.RoleSpecialist, dateOnly(s.now()))
}

// ArchivePage — страница архива с курсором следующей страницы
type ArchivePage struct {
	Items      []*model.Appointment
	NextCursor string
}

// GetArchive возвращает страницу прошедших записей. Архивность — свойство
// даты (date < сегодня), отдельного статуса для неё нет.
func (s *ScheduleService) GetArchive(ctx context.Context, sess model.SessionContext, cursor string, pageSize int) (*ArchivePage, error) {
	if pageSize <= 0 || pageSize > 100 {
		return nil, fmt.Errorf("get archive: page size %d out of range: %w", pageSize, schedule.ErrValidation)
	}

	var cursorDate *time.Time
	var cursorID *uuid.UUID
	if cursor != "" {
		decoded, err := decodeCursor(cursor)
		if err != nil {
			return nil, fmt.Errorf("get archive: %w: %w", schedule.ErrValidation, err)
		}
		cursorDate = &decoded.Date
		cursorID = &decoded.ID
	}

	items, err := s.appts.GetArchivePage(ctx, sess.UserID, sess.Role == model.RoleSpecialist, dateOnly(s.now()), cursorDate, cursorID, pageSize)
	if err != nil {
		return nil, err
	}

	page := &ArchivePage{Items: items}
	if len(items) == pageSize {
		last := items[len(items)-1]
		page.NextCursor = encodeCursor(archiveCursor{Date: last.Date, ID: last.ID})
	}

	return page, nil
}

// lockDayBySlot находит слот, блокирует его день и возвращает реестр дня.
// Проверяет, что слот принадлежит специалисту из сессии.
func (s *ScheduleService) lockDayBySlot(ctx context.Context, specialistID int64, slotID uuid.UUID) (*schedule.DayRegistry, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s: %w", slotID, schedule.ErrNotFound)
	}

	if slot.SpecialistID != specialistID {
		return nil, fmt.Errorf("slot %s: %w", slotID, schedule.ErrPermission)
	}

	stored, err := s.slots.GetDayForUpdate(ctx, slot.SpecialistID, slot.Date)
	if err != nil {
		return nil, err
	}

	return schedule.NewDayRegistry(slot.SpecialistID, slot.Date, stored)
}

// lockedSlot получает слот под блокировкой его дня
func (s *ScheduleService) lockedSlot(ctx context.Context, slotID uuid.UUID) (*model.TimeSlot, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s: %w", slotID, schedule.ErrNotFound)
	}

	stored, err := s.slots.GetDayForUpdate(ctx, slot.SpecialistID, slot.Date)
	if err != nil {
		return nil, err
	}

	for _, locked := range stored {
		if locked.ID == slotID {
			return locked, nil
		}
	}

	return nil, fmt.Errorf("slot %s: %w", slotID, schedule.ErrNotFound)
}

// activeAppointment находит активную запись первичного слота
func (s *ScheduleService) activeAppointment(ctx context.Context, slot *model.TimeSlot) (*model.Appointment, error) {
	appt, err := s.appts.GetByPrimarySlotID(ctx, slot.ID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment for slot %s: %w", slot.ID, schedule.ErrNotFound)
	}
	return appt, nil
}

// priceServices считает стоимость и длительность по каталогу специалиста
func (s *ScheduleService) priceServices(ctx context.Context, specialistID int64, names []string) (price, duration int, err error) {
	services, err := s.catalog.GetByNames(ctx, specialistID, names)
	if err != nil {
		return 0, 0, err
	}

	byName := make(map[string]*model.Service, len(services))
	for _, svc := range services {
		byName[svc.Name] = svc
	}

	for _, name := range names {
		svc, ok := byName[name]
		if !ok {
			return 0, 0, fmt.Errorf("service %q not in catalog: %w", name, schedule.ErrValidation)
		}
		price += svc.Price
		duration += svc.Duration
	}

	if duration <= 0 {
		return 0, 0, fmt.Errorf("non-positive total duration: %w", schedule.ErrValidation)
	}

	return price, duration, nil
}

// bookedDurations строит длительности занятых окон дня по активным записям.
// Забронированный слот без записи — проблема качества данных: для него
// резолвер возьмёт дефолтную длительность.
func (s *ScheduleService) bookedDurations(ctx context.Context, specialistID int64, date time.Time, slots []*model.TimeSlot) (map[uuid.UUID]int, error) {
	appts, err := s.appts.GetActiveByDay(ctx, specialistID, true, date)
	if err != nil {
		return nil, err
	}

	byPrimary := make(map[uuid.UUID]int, len(appts))
	for _, appt := range appts {
		byPrimary[appt.PrimarySlotID] = appt.TotalDuration
	}

	for _, slot := range slots {
		if slot.Status == model.SlotStatusBooked {
			if _, ok := byPrimary[slot.ID]; !ok {
				s.logger.Warn("Booked slot without stored duration, using default",
					zap.String("slot_id", slot.ID.String()),
					zap.Int64("specialist_id", specialistID),
					zap.Int("default_duration", s.defaultDuration),
				)
			}
		}
	}

	return byPrimary, nil
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return "booked"
	case errors.Is(err, schedule.ErrOverlap):
		return "overlap"
	case errors.Is(err, schedule.ErrSlotUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func excludeSlot(slots []*model.TimeSlot, id uuid.UUID) []*model.TimeSlot {
	out := slots[:0]
	for _, slot := range slots {
		if slot.ID != id {
			out = append(out, slot)
		}
	}
	return out
}

func slotIDs(primary *model.TimeSlot, covered []*model.TimeSlot) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(covered)+1)
	ids = append(ids, primary.ID)
	for _, slot := range covered {
		ids = append(ids, slot.ID)
	}
	return ids
}

// dateOnly обнуляет время, оставляя календарную дату в UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
