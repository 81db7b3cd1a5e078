package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами горизонта бронирования
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrStoreUnavailable возвращается, когда хранилище слотов не ответило
	ErrStoreUnavailable = errors.New("get_available_slots: store unavailable")
)
