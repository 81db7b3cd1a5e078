// Package memory хранилище в памяти процесса с той же семантикой, что и postgres-репозитории
// Используется при database.driver = "memory" и в тестах
package memory

import (
	"sync"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

// Store общие данные слотов и бронирований
type Store struct {
	mu       sync.RWMutex
	slots    map[string]domain.Slot
	bookings map[string]domain.Booking
	now      func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:    make(map[string]domain.Slot),
		bookings: make(map[string]domain.Booking),
		now:      time.Now,
	}
}

// Slots репозиторий слотов поверх хранилища
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Bookings репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}
