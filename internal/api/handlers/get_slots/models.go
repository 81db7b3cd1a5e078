package get_slots

import (
	"sort"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	IsAvailable bool    `json:"isAvailable"`
	ServiceID   *string `json:"serviceId,omitempty"`
	LastUpdated string  `json:"lastUpdated"`
}

// SlotListResponse HTTP response model
type SlotListResponse struct {
	Date  string          `json:"date"`
	Slots []*SlotResponse `json:"slots"`
}

// FromDomainSlots конвертирует записи слотов в HTTP response, по возрастанию времени
func FromDomainSlots(date time.Time, slots []*domain.Slot) *SlotListResponse {
	out := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, &SlotResponse{
			ID:          s.ID,
			Date:        domain.FormatDate(s.Date),
			Time:        s.Time.String(),
			IsAvailable: s.IsAvailable,
			ServiceID:   s.ServiceID,
			LastUpdated: s.LastUpdated.Format(time.RFC3339),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })

	return &SlotListResponse{
		Date:  domain.FormatDate(date),
		Slots: out,
	}
}
