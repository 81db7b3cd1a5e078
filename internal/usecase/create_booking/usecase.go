package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

// UseCase use case для создания бронирования клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	slots        SlotStore
	catalog      domain.Catalog
	metrics      Metrics
	txManager    TransactionManager
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slots SlotStore,
	catalog domain.Catalog,
	metrics Metrics,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		slots:        slots,
		catalog:      catalog,
		metrics:      metrics,
		txManager:    txManager,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%s, date=%s, time=%s",
		req.ServiceID, domain.FormatDate(req.Date), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга должна быть в каталоге
	service, ok := uc.catalog.Lookup(req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Проверяем дату и время относительно текущего дня салона
	localNow := uc.timeProvider.Now().In(uc.opts.Location)
	today := domain.Today(localNow, uc.opts.Location)

	if err := validateDate(req.Date, today, uc.opts.HorizonMonths); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	if err := validateBookingTime(req.Date, today, req.Time, localNow, uc.opts.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	if err := validateSchedule(req.Date, req.Time, uc.opts.TimeLabels, uc.opts.ExcludedWeekdays); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 4. Проверка слота и создание в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Слот должен быть свободен
		if err := uc.checkSlot(txCtx, req); err != nil {
			return err
		}

		// 4.2. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			ServiceID: service.ID,
			Date:      domain.DateOf(req.Date),
			Time:      req.Time,
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.TrimSpace(req.Email),
			Phone:     strings.TrimSpace(req.Phone),
			Address:   strings.TrimSpace(req.Address),
			Message:   req.Message,
			Status:    domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	uc.metrics.IncBookingCreated(result.ServiceID)
	uc.logger.Info("CreateBooking: successfully created booking id=%s for slot %s", result.ID, result.SlotID())

	return &Response{
		ID:          result.ID,
		ServiceID:   result.ServiceID,
		ServiceName: service.Name,
		Date:        result.Date,
		Time:        result.Time,
		Name:        result.Name,
		Email:       result.Email,
		Phone:       result.Phone,
		Address:     result.Address,
		Message:     result.Message,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// checkSlot проверяет доступность слота
// В режиме удержания слот атомарно занимается, иначе только читается флаг
func (uc *UseCase) checkSlot(ctx context.Context, req *Request) error {
	slotID := domain.SlotID(req.Date, req.Time)

	if uc.opts.HoldSlotOnCreate {
		claimed, err := uc.slots.Claim(ctx, req.Date, req.Time, req.ServiceID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to claim slot %s: %v", slotID, err)
			return fmt.Errorf("%w: failed to claim slot: %v", ErrStoreUnavailable, err)
		}
		if !claimed {
			uc.logger.Warn("CreateBooking: slot %s already taken", slotID)
			return ErrSlotNotAvailable
		}
		return nil
	}

	available, err := uc.slots.IsSlotAvailable(ctx, req.Date, req.Time)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check slot %s: %v", slotID, err)
		return fmt.Errorf("%w: failed to check slot: %v", ErrStoreUnavailable, err)
	}
	if !available {
		uc.logger.Warn("CreateBooking: slot %s is not available", slotID)
		return ErrSlotNotAvailable
	}
	return nil
}
