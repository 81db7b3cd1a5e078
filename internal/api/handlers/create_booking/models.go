package create_booking

import (
	"strings"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	createBooking "github.com/m04kA/HomeHair-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Service string  `json:"service" validate:"required"`
	Date    string  `json:"date" validate:"required,date"`  // "2025-10-15"
	Time    string  `json:"time" validate:"required,clock"` // "10:00"
	Name    string  `json:"name" validate:"required,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,phone"`
	Address string  `json:"address" validate:"required,max=300"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=1000"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string  `json:"id"`
	Service     string  `json:"service"`
	ServiceName string  `json:"serviceName"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	Message     *string `json:"message,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	var message *string
	if r.Message != nil && strings.TrimSpace(*r.Message) != "" {
		trimmed := strings.TrimSpace(*r.Message)
		message = &trimmed
	}

	return &createBooking.Request{
		ServiceID: r.Service,
		Date:      date,
		Time:      t,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     handlers.NormalizePhone(r.Phone),
		Address:   r.Address,
		Message:   message,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		Service:     resp.ServiceID,
		ServiceName: resp.ServiceName,
		Date:        domain.FormatDate(resp.Date),
		Time:        resp.Time.String(),
		Name:        resp.Name,
		Email:       resp.Email,
		Phone:       resp.Phone,
		Address:     resp.Address,
		Message:     resp.Message,
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
