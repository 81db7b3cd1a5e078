package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	slotRepo "github.com/m04kA/HomeHair-BookingService/internal/infra/storage/slot"
)

// SlotRepository in-memory реализация репозитория слотов
type SlotRepository struct {
	store *Store
}

func (r *SlotRepository) Upsert(ctx context.Context, slot *domain.Slot) error {
	return r.UpsertMany(ctx, []*domain.Slot{slot})
}

func (r *SlotRepository) UpsertMany(_ context.Context, slots []*domain.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now().UTC()
	for _, s := range slots {
		r.upsertLocked(s, now)
	}
	return nil
}

// InsertMissing добавляет только слоты с новыми ID
func (r *SlotRepository) InsertMissing(_ context.Context, slots []*domain.Slot) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now().UTC()
	inserted := 0
	for _, s := range slots {
		if _, ok := r.store.slots[s.ID]; ok {
			continue
		}
		r.upsertLocked(s, now)
		inserted++
	}
	return inserted, nil
}

func (r *SlotRepository) upsertLocked(s *domain.Slot, now time.Time) {
	stored := domain.Slot{
		ID:          s.ID,
		Date:        domain.DateOf(s.Date),
		Time:        s.Time,
		IsAvailable: s.IsAvailable,
		ServiceID:   copyString(s.ServiceID),
		LastUpdated: now,
	}
	if existing, ok := r.store.slots[s.ID]; ok && stored.ServiceID == nil {
		stored.ServiceID = existing.ServiceID
	}
	r.store.slots[s.ID] = stored
	s.LastUpdated = now
}

func (r *SlotRepository) Claim(_ context.Context, slot *domain.Slot) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.slots[slot.ID]; ok && !existing.IsAvailable {
		return false, nil
	}

	slot.IsAvailable = false
	r.upsertLocked(slot, r.store.now().UTC())
	return true, nil
}

func (r *SlotRepository) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return cloneSlot(s), nil
}

func (r *SlotRepository) GetByDate(_ context.Context, date time.Time, onlyAvailable bool) ([]*domain.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := domain.DateOf(date)
	out := make([]*domain.Slot, 0)
	for _, s := range r.store.slots {
		if !s.Date.Equal(day) {
			continue
		}
		if onlyAvailable && !s.IsAvailable {
			continue
		}
		out = append(out, cloneSlot(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.IsBefore(out[j].Time) })
	return out, nil
}

func (r *SlotRepository) DeleteBefore(_ context.Context, date time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cutoff := domain.DateOf(date)
	removed := 0
	for id, s := range r.store.slots {
		if s.Date.Before(cutoff) {
			delete(r.store.slots, id)
			removed++
		}
	}
	return removed, nil
}

func cloneSlot(s domain.Slot) *domain.Slot {
	s.ServiceID = copyString(s.ServiceID)
	return &s
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
