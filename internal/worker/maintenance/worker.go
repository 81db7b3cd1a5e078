// Package maintenance runs the maintenance use case on a cron schedule.
package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

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

// Options параметры воркера
type Options struct {
	Schedule          string // стандартное cron-выражение из пяти полей
	Location          *time.Location
	InitializeHorizon bool
	RunTimeout        time.Duration
}

// Worker запускает обслуживание по расписанию
// Запуски не перекрываются: пока идёт предыдущий, следующий пропускается
type Worker struct {
	useCase MaintenanceUseCase
	opts    Options
	cron    *cron.Cron
	logger  Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	entryID cron.EntryID
}

// NewWorker проверяет расписание и создает воркер
func NewWorker(useCase MaintenanceUseCase, opts Options, logger Logger) (*Worker, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.RunTimeout <= 0 {
		opts.RunTimeout = 10 * time.Minute
	}

	w := &Worker{
		useCase: useCase,
		opts:    opts,
		logger:  logger,
		cron: cron.New(
			cron.WithLocation(opts.Location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}

	id, err := w.cron.AddFunc(opts.Schedule, w.RunOnce)
	if err != nil {
		return nil, fmt.Errorf("maintenance: invalid schedule %q: %w", opts.Schedule, err)
	}
	w.entryID = id
	return w, nil
}

// Start запускает планировщик; ctx ограничивает время жизни запусков
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	w.cron.Start()
	w.logger.Info("Maintenance worker started (schedule=%q, next=%s)",
		w.opts.Schedule, w.NextRun().Format(time.RFC3339))
}

// Stop останавливает планировщик и ждёт завершения текущего запуска
func (w *Worker) Stop() {
	stopCtx := w.cron.Stop()

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	<-stopCtx.Done()
	w.logger.Info("Maintenance worker stopped")
}

// NextRun время следующего запуска (нулевое, если планировщик не запущен)
func (w *Worker) NextRun() time.Time {
	return w.cron.Entry(w.entryID).Next
}

// RunOnce выполняет одно обслуживание
func (w *Worker) RunOnce() {
	w.mu.Lock()
	parent := w.ctx
	w.mu.Unlock()
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithTimeout(parent, w.opts.RunTimeout)
	defer cancel()

	start := time.Now()
	resp := w.useCase.Execute(ctx, &run_maintenance.Request{InitializeHorizon: w.opts.InitializeHorizon})

	for _, step := range resp.Steps {
		if step.Err != nil {
			w.logger.Warn("Maintenance: step %s failed: %v", step.Name, step.Err)
			continue
		}
		w.logger.Info("Maintenance: step %s done, count=%d", step.Name, step.Count)
	}
	if resp.Failed() {
		w.logger.Error("Maintenance: run finished with errors in %s", time.Since(start))
		return
	}
	w.logger.Info("Maintenance: run finished in %s", time.Since(start))
}
