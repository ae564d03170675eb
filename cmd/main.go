package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	addScheduleHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/add_schedule"
	createBookingHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/delete_service"
	getBookingHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_booking"
	getFreeSlotsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_free_slots"
	getServiceHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_service"
	getUserBookingsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_user_bookings"
	getUserServicesHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_user_services"
	updateScheduleHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/update_schedule"
	updateServiceHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/config"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage"
	bookingRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	bookingsService "github.com/m04kA/SMC-SlotService/internal/service/bookings"
	servicesService "github.com/m04kA/SMC-SlotService/internal/service/services"
	listFreeSlotsUC "github.com/m04kA/SMC-SlotService/internal/usecase/list_free_slots"
	requestBookingUC "github.com/m04kA/SMC-SlotService/internal/usecase/request_booking"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
	"github.com/m04kA/SMC-SlotService/pkg/metrics"
	"github.com/m04kA/SMC-SlotService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-SlotService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции схемы
	if err := storage.Migrate(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database schema is up to date")

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		serviceRepository  *serviceRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		serviceRepository,
		log,
	)
	serviceSvc := servicesService.NewService(
		serviceRepository,
		scheduleRepository,
		bookingRepository,
		txMgr,
		cfg.Booking.SlotGranularityMinutes,
		log,
	)

	// Инициализируем use cases
	var admissionMetrics requestBookingUC.AdmissionMetrics
	if cfg.Metrics.Enabled {
		admissionMetrics = metricsCollector
	}

	requestBookingUseCase := requestBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		scheduleRepository,
		txMgr,
		admissionMetrics,
		log,
	)

	listFreeSlotsUseCase := listFreeSlotsUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		scheduleRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(requestBookingUseCase, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(listFreeSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	createService := createServiceHandler.NewHandler(serviceSvc, log)
	getService := getServiceHandler.NewHandler(serviceSvc, log)
	getUserServices := getUserServicesHandler.NewHandler(serviceSvc, log)
	updateService := updateServiceHandler.NewHandler(serviceSvc, log)
	deleteService := deleteServiceHandler.NewHandler(serviceSvc, log)
	addSchedule := addScheduleHandler.NewHandler(serviceSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(serviceSvc, log)

	// Запускаем периодический перевод pending -> passed
	sweeper := cron.New()
	_, err = sweeper.AddFunc(cfg.Booking.StatusSweepSpec, func() {
		if err := bookingSvc.SweepPassed(context.Background(), time.Now()); err != nil {
			log.Error("Status sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Fatal("Failed to schedule status sweep (%q): %v", cfg.Booking.StatusSweepSpec, err)
	}
	sweeper.Start()
	log.Info("Booking status sweep scheduled (%s)", cfg.Booking.StatusSweepSpec)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Карточка услуги с расписанием
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// Свободные слоты услуги на день недели
	api.HandleFunc("/services/{serviceId}/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Запрос на бронирование слота
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление услугами (для владельцев) ---
	// Создание услуги вместе с расписанием
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)

	// Услуги владельца
	protected.HandleFunc("/users/{userId}/services", getUserServices.Handle).Methods(http.MethodGet)

	// Обновление услуги
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)

	// Мягкое удаление услуги
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// Добавление окна расписания
	protected.HandleFunc("/services/{serviceId}/schedule", addSchedule.Handle).Methods(http.MethodPost)

	// Изменение окна расписания
	protected.HandleFunc("/services/{serviceId}/schedule/{weekday}", updateSchedule.Handle).Methods(http.MethodPut)

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
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем sweeper и дожидаемся активного прогона
	<-sweeper.Stop().Done()
	log.Info("Status sweep stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
