package run_cleanup

import (
	"context"

	"github.com/m04kA/HomeHair-BookingService/internal/usecase/run_maintenance"
)

type MaintenanceUseCase interface {
	Execute(ctx context.Context, req *run_maintenance.Request) *run_maintenance.Response
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
