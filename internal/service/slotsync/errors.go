package slotsync

import "errors"

var (
	// ErrStoreUnavailable возвращается, когда хранилище не ответило во время синхронизации
	ErrStoreUnavailable = errors.New("slotsync: store unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slotsync: invalid input data")
)
