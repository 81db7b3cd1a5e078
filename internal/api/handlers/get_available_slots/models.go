package get_available_slots

import (
	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/HomeHair-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	times := make([]string, 0, len(resp.Times))
	for _, t := range resp.Times {
		times = append(times, t.String())
	}
	return &AvailableSlotsResponse{
		Date:  domain.FormatDate(resp.Date),
		Times: times,
	}
}
