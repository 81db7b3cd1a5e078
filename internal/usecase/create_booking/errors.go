package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами горизонта бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStoreUnavailable возвращается, когда хранилище не ответило
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")
)
