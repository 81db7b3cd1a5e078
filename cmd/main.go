package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	adminLoginHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/admin_login"
	cancelBookingHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/delete_booking"
	generateSlotsHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/get_bookings"
	getServicesHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/get_services"
	getSlotsHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/get_slots"
	runCleanupHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/run_cleanup"
	setSlotAvailabilityHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/set_slot_availability"
	syncSlotsHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/sync_slots"
	updateBookingStatusHandler "github.com/m04kA/HomeHair-BookingService/internal/api/handlers/update_booking_status"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/api/middleware"
	"github.com/m04kA/HomeHair-BookingService/internal/auth"
	"github.com/m04kA/HomeHair-BookingService/internal/config"
	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeHair-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HomeHair-BookingService/internal/infra/storage/memory"
	slotRepo "github.com/m04kA/HomeHair-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/HomeHair-BookingService/internal/integrations/brevo"
	bookingsService "github.com/m04kA/HomeHair-BookingService/internal/service/bookings"
	slotsService "github.com/m04kA/HomeHair-BookingService/internal/service/slots"
	slotSyncService "github.com/m04kA/HomeHair-BookingService/internal/service/slotsync"
	createBookingUC "github.com/m04kA/HomeHair-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/HomeHair-BookingService/internal/usecase/get_available_slots"
	runMaintenanceUC "github.com/m04kA/HomeHair-BookingService/internal/usecase/run_maintenance"
	maintenanceWorker "github.com/m04kA/HomeHair-BookingService/internal/worker/maintenance"
	"github.com/m04kA/HomeHair-BookingService/migrations"
	"github.com/m04kA/HomeHair-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HomeHair-BookingService/pkg/logger"
	"github.com/m04kA/HomeHair-BookingService/pkg/metrics"
	"github.com/m04kA/HomeHair-BookingService/pkg/txmanager"
)

// bookingStore общий набор методов postgres и memory репозиториев бронирований
type bookingStore interface {
	createBookingUC.BookingRepository
	bookingsService.BookingRepository
	DeleteObsolete(ctx context.Context, today time.Time) (int, error)
}

// txManager интерфейс для transaction manager (используется в usecases)
type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting HomeHair-BookingService...")
	log.Info("Configuration loaded from %s (timezone=%s, driver=%s)", *configPath, cfg.App.Timezone, cfg.Database.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		slotRepository    slotsService.SlotRepository
		bookingRepository bookingStore
		txMgr             txManager
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		slotRepository = store.Slots()
		bookingRepository = store.Bookings()
		txMgr = txmanager.NewLocalManager()
		log.Warn("Using in-memory storage, data is lost on restart")
	default:
		db, err := openDatabase(cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// При выключенных метриках обёртка работает как обычный *sql.DB
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	catalog := cfg.Catalog()
	loc := cfg.App.Location()
	excluded := cfg.Booking.Weekdays()

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		metricsCollector,
		loc,
		cfg.Sync.Workers,
		log,
	)
	slotSync := slotSyncService.NewService(
		slotSvc,
		bookingRepository,
		metricsCollector,
		cfg.Sync.RebuildOnTransition,
		cfg.Sync.Workers,
		log,
	)

	// Инициализируем интеграционных клиентов
	mailer := brevo.NewClient(brevo.Config{
		Enabled:     cfg.Brevo.Enabled,
		APIKey:      cfg.Brevo.APIKey,
		Endpoint:    cfg.Brevo.Endpoint,
		SenderEmail: cfg.Brevo.SenderEmail,
		SenderName:  cfg.Brevo.SenderName,
		Sandbox:     cfg.Brevo.Sandbox,
		Timeout:     time.Duration(cfg.Brevo.Timeout) * time.Second,
		MaxRetries:  cfg.Brevo.MaxRetries,
	}, catalog, log)
	if mailer.Enabled() {
		log.Info("Brevo client initialized (sender=%s, sandbox=%t)", cfg.Brevo.SenderEmail, cfg.Brevo.Sandbox)
	} else {
		log.Warn("Brevo client disabled, status changes will be saved without e-mails")
	}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotSync,
		mailer,
		catalog,
		metricsCollector,
		log,
	).WithNotifyTimeout(time.Duration(cfg.Brevo.NotifyTimeout) * time.Second)

	// Аутентификация администратора
	tokens := auth.NewManager(
		cfg.Admin.JWTSecret,
		time.Duration(cfg.Admin.TokenTTLMinutes)*time.Minute,
		cfg.Admin.Issuer,
	)
	authenticator := auth.NewAdminAuthenticator(cfg.Admin.Email, cfg.Admin.PasswordHash, tokens)
	if cfg.Admin.Email == "" || cfg.Admin.PasswordHash == "" || cfg.Admin.JWTSecret == "" {
		log.Warn("Admin credentials are not configured, admin console login is disabled")
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotSvc,
		catalog,
		metricsCollector,
		txMgr,
		createBookingUC.Options{
			Location:                loc,
			HorizonMonths:           cfg.Booking.HorizonMonths,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
			HoldSlotOnCreate:        cfg.Booking.HoldSlotOnCreate,
			TimeLabels:              cfg.Booking.TimeLabels,
			ExcludedWeekdays:        excluded,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotSvc,
		slotSync,
		getAvailableSlotsUC.Options{
			Location:                loc,
			TimeLabels:              cfg.Booking.TimeLabels,
			ExcludedWeekdays:        excluded,
			HorizonMonths:           cfg.Booking.HorizonMonths,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
			AutoSeedEmptyDates:      cfg.Booking.AutoSeedEmptyDates,
		},
		log,
	)

	runMaintenanceUseCase := runMaintenanceUC.NewUseCase(
		slotSvc,
		slotSync,
		runMaintenanceUC.Options{
			TimeLabels:       cfg.Booking.TimeLabels,
			ExcludedWeekdays: excluded,
			HorizonMonths:    cfg.Booking.HorizonMonths,
		},
		log,
	)

	// Инициализируем handlers
	validator := handlers.NewValidator()

	getServices := getServicesHandler.NewHandler(catalog, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, validator, log)
	adminLogin := adminLoginHandler.NewHandler(authenticator, validator, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, validator, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getSlots := getSlotsHandler.NewHandler(slotSvc, log)
	setSlotAvailability := setSlotAvailabilityHandler.NewHandler(slotSvc, catalog, validator, log)
	generateSlots := generateSlotsHandler.NewHandler(slotSvc, slotSync, generateSlotsHandler.Defaults{
		TimeLabels:       cfg.Booking.TimeLabels,
		ExcludedWeekdays: excluded,
		HorizonMonths:    cfg.Booking.HorizonMonths,
	}, validator, log)
	syncSlots := syncSlotsHandler.NewHandler(slotSync, syncSlotsHandler.Defaults{
		TimeLabels:       cfg.Booking.TimeLabels,
		ExcludedWeekdays: excluded,
		HorizonMonths:    cfg.Booking.HorizonMonths,
	}, validator, log)
	runCleanup := runCleanupHandler.NewHandler(runMaintenanceUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.TrustedProxies, log)
		if err != nil {
			log.Fatal("Failed to create rate limiter: %v", err)
		}
		public.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (%d req/min, burst=%d)", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// Каталог услуг
	public.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Свободное время на дату
	public.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Вход администратора
	public.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(authenticator, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	admin.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slots", setSlotAvailability.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/sync", syncSlots.Handle).Methods(http.MethodPost)

	// --- Обслуживание ---
	admin.HandleFunc("/maintenance/cleanup", runCleanup.Handle).Methods(http.MethodPost)

	// Фоновое обслуживание по расписанию
	rootCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var worker *maintenanceWorker.Worker
	if cfg.Maintenance.Enabled {
		worker, err = maintenanceWorker.NewWorker(runMaintenanceUseCase, maintenanceWorker.Options{
			Schedule:          cfg.Maintenance.Schedule,
			Location:          loc,
			InitializeHorizon: true,
		}, log)
		if err != nil {
			log.Fatal("Failed to create maintenance worker: %v", err)
		}
		worker.Start(rootCtx)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (today=%s)", addr, domain.FormatDate(slotSvc.Today()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if worker != nil {
		worker.Stop()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// openDatabase подключается к postgres, настраивает пул и применяет миграции
func openDatabase(cfg config.DatabaseConfig, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	if cfg.AutoMigrate {
		if err := migrations.Up(db, log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}
