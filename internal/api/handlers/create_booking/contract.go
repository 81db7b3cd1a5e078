package create_booking

import (
	"context"

	createBooking "github.com/m04kA/HomeHair-BookingService/internal/usecase/create_booking"
)

// BookingCreator use case создания бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// RequestValidator проверка тела запроса по тегам validate
type RequestValidator interface {
	Struct(s interface{}) error
	FirstInvalidField(err error) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
