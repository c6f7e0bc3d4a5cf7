package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingEngine/internal/validation"
)

// Service сервис для работы с бронированиями.
// Решения принимает движок, сервис только загружает и сохраняет состояние.
type Service struct {
	engine       Engine
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	engine Engine,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		engine:       engine,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create проверяет payload и сохраняет новое бронирование в начальном статусе
func (s *Service) Create(ctx context.Context, caller string, payload map[string]any) (*models.BookingResponse, error) {
	s.logger.Info("Create: creating booking for caller=%s", caller)

	decision, err := s.engine.Process(ctx, &engine.Request{
		Operation: domain.OpCreate,
		Caller:    caller,
		Payload:   payload,
	})
	if err != nil {
		return nil, err
	}

	booking := newBooking(uuid.NewString(), decision)

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created booking id=%s status=%s", created.ID, created.Status)
	return models.FromDomainBooking(created), nil
}

// Get получает бронирование по ID
func (s *Service) Get(ctx context.Context, caller, id string) (*models.BookingResponse, error) {
	s.logger.Info("Get: fetching booking id=%s for caller=%s", id, caller)

	decision, err := s.engine.Process(ctx, &engine.Request{
		Operation: domain.OpGet,
		Caller:    caller,
		Payload:   map[string]any{validation.FieldBookingID: id},
	})
	if err != nil {
		return nil, err
	}

	var booking *domain.Booking
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		booking, err = s.load(ctx, "Get", decision.BookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает страницу бронирований по фильтрам из query
func (s *Service) List(ctx context.Context, caller string, query map[string]any) (*models.BookingListResponse, error) {
	decision, err := s.engine.Process(ctx, &engine.Request{
		Operation: domain.OpList,
		Caller:    caller,
		Payload:   query,
	})
	if err != nil {
		return nil, err
	}

	filter := filterOf(decision.Values)
	s.logger.Info("List: fetching bookings page=%d limit=%d sort=%s %s", filter.Page, filter.Limit, filter.SortBy, filter.SortOrder)

	// Счётчик и страница читаются в одной транзакции
	var (
		items []*domain.Booking
		total int
	)
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		items, total, err = s.bookingRepo.List(ctx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d of %d bookings", len(items), total)
	return models.FromDomainBookingPage(domain.BookingPage{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}), nil
}

// Apply выполняет операцию над существующим бронированием
// (updateStatus, cancel, confirm, start, complete, refund, reschedule).
// Лимит проверяется до чтения из БД, запись защищена проверкой версии.
func (s *Service) Apply(ctx context.Context, op domain.Operation, caller, bookingID string, payload map[string]any) (*models.BookingResponse, error) {
	s.logger.Info("Apply: %s booking id=%s by caller=%s", op, bookingID, caller)

	if err := s.engine.Admit(ctx, op, caller); err != nil {
		return nil, err
	}

	raw := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		raw[k] = v
	}
	raw[validation.FieldBookingID] = bookingID

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Загружаем текущее состояние (для некорректного ID цепочка вернёт ошибку валидации)
		var current *domain.Booking
		if id, ok := canonicalID(bookingID); ok {
			booking, err := s.load(ctx, "Apply", id)
			if err != nil {
				return err
			}
			current = booking
		}

		// 2. Решение движка
		decision, err := s.engine.Decide(&engine.Request{
			Operation: op,
			Caller:    caller,
			Booking:   current,
			Payload:   raw,
		})
		if err != nil {
			return err
		}
		if current == nil {
			return engine.ErrBookingRequired
		}

		// 3. Применяем и сохраняем с проверкой версии
		updated := applyDecision(current, decision, s.timeProvider.Now())
		if err := s.bookingRepo.Update(ctx, updated, current.Version); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrVersionConflict):
				s.logger.Warn("Apply: booking id=%s modified concurrently, version=%d", current.ID, current.Version)
				return ErrConcurrentUpdate
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			}
			s.logger.Error("Apply: repository error for booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: Apply - repository error: %v", ErrInternal, err)
		}

		if op == domain.OpReschedule {
			reason, _ := decision.Values.String(validation.FieldReason)
			s.logger.Info("Apply: booking id=%s rescheduled to %s, reason=%q", updated.ID, updated.ScheduledAt, reason)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Apply: %s succeeded for booking id=%s status=%s", op, result.ID, result.Status)
	return models.FromDomainBooking(result), nil
}

func (s *Service) load(ctx context.Context, method, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

// canonicalID возвращает ID в каноничной записи, если он имеет форму UUID
func canonicalID(id string) (string, bool) {
	if len(id) != 36 {
		return "", false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
