package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeHair-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HomeHair-BookingService/internal/service/bookings/models"
	"github.com/m04kA/HomeHair-BookingService/pkg/ptr"
)

const (
	notificationConfirmation = "confirmation"
	notificationCancellation = "cancellation"

	warningNotificationFailed = "Le statut a été mis à jour, mais l'e-mail n'a pas pu être envoyé au client."
)

// Service сервис для работы с бронированиями (консоль администратора)
type Service struct {
	bookingRepo BookingRepository
	slotSync    SlotSync
	notifier    Notifier
	catalog     domain.Catalog
	metrics     Metrics
	logger      Logger

	notifyTimeout time.Duration
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotSync SlotSync,
	notifier Notifier,
	catalog domain.Catalog,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotSync:    slotSync,
		notifier:    notifier,
		catalog:     catalog,
		metrics:     metrics,
		logger:      logger,
	}
}

// WithNotifyTimeout ограничивает время отправки письма, включая повторы
// Должен быть меньше write timeout HTTP-сервера
func (s *Service) WithNotifyTimeout(d time.Duration) *Service {
	s.notifyTimeout = d
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.load(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking, s.catalog), nil
}

// GetBookingsForDate получает все бронирования календарного дня
func (s *Service) GetBookingsForDate(ctx context.Context, date time.Time) (*models.BookingListResponse, error) {
	day := domain.DateOf(date)
	return s.GetBookingsInRange(ctx, &models.ListBookingsRequest{StartDate: day, EndDate: day})
}

// GetBookingsInRange получает бронирования за период (например, месяц в консоли)
func (s *Service) GetBookingsInRange(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBookingsInRange: fetching bookings %s..%s, status=%v",
		domain.FormatDate(req.StartDate), domain.FormatDate(req.EndDate), ptr.Value(req.Status))

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBookingsInRange: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBookingsInRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBookingsInRange - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("GetBookingsInRange: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.catalog), nil
}

// UpdateStatus меняет статус бронирования и синхронизирует слот
// Оператор может перевести бронирование в любой статус.
// Ошибка отправки письма не прерывает операцию и возвращается в ответе как предупреждение.
func (s *Service) UpdateStatus(ctx context.Context, id string, rawStatus string) (*models.StatusUpdateResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", id, rawStatus)

	newStatus, err := domain.ParseBookingStatus(rawStatus)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", rawStatus, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	// 1. Получаем бронирование
	booking, err := s.load(ctx, id, "UpdateStatus")
	if err != nil {
		return nil, err
	}
	previous := booking.Status

	// 2. Сохраняем новый статус
	if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s disappeared during update", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrStoreUnavailable, err)
	}
	booking.Status = newStatus
	booking.UpdatedAt = time.Now().UTC()
	s.metrics.IncStatusChange(string(newStatus))

	// 3. Синхронизируем слот
	if err := s.slotSync.ApplyTransition(ctx, booking, newStatus); err != nil {
		s.logger.Error("UpdateStatus: status of booking id=%s saved but slot sync failed: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - slot sync: %v", ErrStoreUnavailable, err)
	}

	resp := &models.StatusUpdateResponse{
		Booking:        models.FromDomainBooking(booking, s.catalog),
		PreviousStatus: string(previous),
	}

	// 4. Уведомляем клиента (best-effort)
	if notifyErr := s.notify(ctx, booking); notifyErr != nil {
		resp.NotificationError = notifyErr
		resp.Warning = ptr.Ptr(warningNotificationFailed)
	} else if newStatus == domain.StatusConfirmed || newStatus == domain.StatusCancelled {
		resp.NotificationSent = true
	}

	s.logger.Info("UpdateStatus: booking id=%s moved %s -> %s", id, previous, newStatus)
	return resp, nil
}

// Cancel отменяет бронирование и явно открывает его слот
func (s *Service) Cancel(ctx context.Context, id string) (*models.StatusUpdateResponse, error) {
	resp, err := s.UpdateStatus(ctx, id, string(domain.StatusCancelled))
	if err != nil {
		return nil, err
	}
	s.logger.Info("Cancel: booking id=%s cancelled", id)
	return resp, nil
}

// Delete удаляет бронирование и открывает его слот независимо от статуса
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	booking, err := s.load(ctx, id, "Delete")
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrStoreUnavailable, err)
	}

	if err := s.slotSync.ReleaseBookingSlot(ctx, booking); err != nil {
		s.logger.Error("Delete: booking id=%s deleted but slot %s was not reopened: %v", id, booking.SlotID(), err)
		return fmt.Errorf("%w: Delete - slot sync: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Delete: booking id=%s deleted, slot %s reopened", id, booking.SlotID())
	return nil
}

// notify отправляет письмо для confirmed/cancelled
// Возвращает ErrNotificationFailed, но не прерывает вызывающую операцию
func (s *Service) notify(ctx context.Context, booking *domain.Booking) error {
	var (
		kind string
		err  error
	)

	if s.notifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.notifyTimeout)
		defer cancel()
	}

	switch booking.Status {
	case domain.StatusConfirmed:
		kind = notificationConfirmation
		err = s.notifier.SendConfirmation(ctx, booking)
	case domain.StatusCancelled:
		kind = notificationCancellation
		err = s.notifier.SendCancellation(ctx, booking)
	default:
		return nil
	}

	s.metrics.IncNotification(kind, err)
	if err != nil {
		s.logger.Warn("notify: %s e-mail for booking id=%s to %s failed: %v", kind, booking.ID, booking.Email, err)
		return fmt.Errorf("%w: %s: %v", ErrNotificationFailed, kind, err)
	}

	s.logger.Info("notify: %s e-mail sent for booking id=%s", kind, booking.ID)
	return nil
}

func (s *Service) load(ctx context.Context, id, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}
	return booking, nil
}
