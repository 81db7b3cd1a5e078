package run_maintenance

import (
	"context"
)

// UseCase use case обслуживания: очистка устаревших данных и инициализация горизонта
// Используется и консолью администратора, и ночным воркером
type UseCase struct {
	sweeper     Sweeper
	initializer HorizonInitializer
	opts        Options
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sweeper Sweeper, initializer HorizonInitializer, opts Options, logger Logger) *UseCase {
	return &UseCase{
		sweeper:     sweeper,
		initializer: initializer,
		opts:        opts,
		logger:      logger,
	}
}

// Execute выполняет три процедуры очистки по очереди
// Ошибка одной процедуры попадает в отчёт и не прерывает остальные.
// Слоты отменённых бронирований открываются до удаления самих бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) *Response {
	uc.logger.Info("RunMaintenance: starting (initializeHorizon=%t)", req.InitializeHorizon)

	resp := &Response{}
	run := func(name string, fn func(ctx context.Context) (int, error)) {
		count, err := fn(ctx)
		if err != nil {
			uc.logger.Error("RunMaintenance: step %s failed after %d items: %v", name, count, err)
		}
		resp.Steps = append(resp.Steps, StepResult{Name: name, Count: count, Err: err})
	}

	run(StepObsoleteSlots, uc.sweeper.CleanupObsoleteSlots)
	run(StepCancelledBookings, uc.sweeper.CleanupCancelledBookingSlots)
	run(StepObsoleteBookings, uc.sweeper.CleanupObsoleteBookings)

	if req.InitializeHorizon {
		run(StepInitializeHorizon, func(ctx context.Context) (int, error) {
			return uc.initializer.SeedUpcomingSlots(ctx, uc.opts.TimeLabels, uc.opts.ExcludedWeekdays, uc.opts.HorizonMonths)
		})
	}

	if resp.Failed() {
		uc.logger.Warn("RunMaintenance: finished with errors")
	} else {
		uc.logger.Info("RunMaintenance: finished")
	}
	return resp
}
