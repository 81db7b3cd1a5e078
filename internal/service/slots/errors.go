package slots

import "errors"

var (
	// ErrStoreUnavailable возвращается, когда хранилище слотов не ответило
	ErrStoreUnavailable = errors.New("slots: store unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrRangeTooLarge возвращается, когда диапазон генерации слишком велик
	ErrRangeTooLarge = errors.New("slots: date range is too large")
)
