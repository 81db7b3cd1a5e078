package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("bookings: invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrNotificationFailed статус сохранён, но письмо не отправлено (не прерывает операцию)
	ErrNotificationFailed = errors.New("bookings: notification failed")

	// ErrStoreUnavailable возвращается, когда хранилище не ответило
	ErrStoreUnavailable = errors.New("bookings: store unavailable")
)
