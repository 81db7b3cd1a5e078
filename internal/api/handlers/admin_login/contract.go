package admin_login

import "github.com/m04kA/HomeHair-BookingService/internal/auth"

type Authenticator interface {
	Login(email, password string) (*auth.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
