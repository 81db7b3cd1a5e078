package models

import (
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос списка бронирований за период
type ListBookingsRequest struct {
	StartDate time.Time // Начало периода включительно
	EndDate   time.Time // Конец периода включительно
	Status    *string   // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	start, end := r.StartDate, r.EndDate
	filter := domain.BookingsFilter{
		StartDate: &start,
		EndDate:   &end,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string  `json:"id"`
	ServiceID   string  `json:"service"`
	ServiceName string  `json:"serviceName"`
	Date        string  `json:"date"` // "2025-10-15"
	Time        string  `json:"time"` // "10:00"
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	Message     *string `json:"message,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// StatusUpdateResponse результат смены статуса
// Warning заполняется, если статус сохранён, но письмо клиенту не отправлено
type StatusUpdateResponse struct {
	Booking          *BookingResponse `json:"booking"`
	PreviousStatus   string           `json:"previousStatus"`
	NotificationSent bool             `json:"notificationSent"`
	Warning          *string          `json:"warning,omitempty"`

	// NotificationError исходная ошибка уведомления (не сериализуется)
	NotificationError error `json:"-"`
}

// Конвертеры

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.Booking, catalog domain.Catalog) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		ServiceID:   b.ServiceID,
		ServiceName: catalog.DisplayName(b.ServiceID),
		Date:        domain.FormatDate(b.Date),
		Time:        b.Time.String(),
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Address:     b.Address,
		Message:     b.Message,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking, catalog domain.Catalog) *BookingListResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainBooking(b, catalog))
	}
	return &BookingListResponse{
		Bookings: out,
		Total:    len(out),
	}
}
