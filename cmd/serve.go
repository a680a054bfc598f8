package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	createParkingLotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_parking_lot"
	deleteParkingLotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_parking_lot"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getCitiesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_cities"
	getDashboardHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_dashboard"
	getLocationsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_locations"
	getParkingLotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_parking_lot"
	getPaymentQuoteHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_payment_quote"
	getReceiptHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_receipt"
	getRecentReportsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_recent_reports"
	getReportHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_report"
	getSlotNotificationsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_slot_notifications"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	getUserNotificationsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_notifications"
	getUserPaymentsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_payments"
	listVehiclesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_vehicles"
	logEntryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/log_entry"
	logExitHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/log_exit"
	loginAdminHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/login_admin"
	loginUserHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/login_user"
	processPaymentHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/process_payment"
	registerUserHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/register_user"
	registerVehicleHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/register_vehicle"
	reserveSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/reserve_slot"
	searchParkingLotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/search_parking_lots"
	sendSlotNotificationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/send_slot_notification"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/infra/auth"
	adminRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/admin"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/notification"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkingslot"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	reportRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/report"
	statsRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/stats"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	vehicleLogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehiclelog"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	accountsService "github.com/m04kA/SMC-ParkingService/internal/service/accounts"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	notificationsService "github.com/m04kA/SMC-ParkingService/internal/service/notifications"
	parkingService "github.com/m04kA/SMC-ParkingService/internal/service/parking"
	reportsService "github.com/m04kA/SMC-ParkingService/internal/service/reports"
	logEntryUC "github.com/m04kA/SMC-ParkingService/internal/usecase/log_entry"
	logExitUC "github.com/m04kA/SMC-ParkingService/internal/usecase/log_exit"
	processPaymentUC "github.com/m04kA/SMC-ParkingService/internal/usecase/process_payment"
	reserveSlotUC "github.com/m04kA/SMC-ParkingService/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// sender отправитель уведомлений во внешний канал
type sender interface {
	Publish(ctx context.Context, msg notifier.Message) error
	Close() error
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServer,
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting SMC-ParkingService...")

	db, err := openDB(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	// Метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		if err := metricsCollector.RegisterDBStats(db, cfg.Database.DBName); err != nil {
			log.Warn("Failed to register connection pool metrics: %v", err)
		}
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	wrappedDB := dbmetrics.Wrap(db, dbCollector)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	users := userRepo.NewRepository(wrappedDB)
	admins := adminRepo.NewRepository(wrappedDB)
	vehicles := vehicleRepo.NewRepository(wrappedDB)
	lots := lotRepo.NewRepository(wrappedDB)
	slots := slotRepo.NewRepository(wrappedDB)
	bookings := bookingRepo.NewRepository(wrappedDB)
	vehicleLogs := vehicleLogRepo.NewRepository(wrappedDB)
	payments := paymentRepo.NewRepository(wrappedDB)
	notifications := notificationRepo.NewRepository(wrappedDB)
	reports := reportRepo.NewRepository(wrappedDB)
	stats := statsRepo.NewRepository(wrappedDB)

	// Аутентификация
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenDuration())

	// Канал уведомлений
	notificationSender, err := newSender(cfg.Broker, log)
	if err != nil {
		return err
	}
	defer notificationSender.Close()

	// Сервисы
	accountSvc := accountsService.NewService(users, admins, vehicles, hasher, tokens, log)
	parkingSvc := parkingService.NewService(lots, slots, txMgr, log)
	bookingSvc := bookingsService.NewService(bookings, slots, lots, vehicleLogs, payments, vehicles, users, txMgr, log)
	reportSvc := reportsService.NewService(stats, reports, txMgr, log)
	notificationSvc := notificationsService.NewService(notifications, slots, bookings, notificationSender, log)

	// Use cases
	reserveSlotUseCase := reserveSlotUC.NewUseCase(slots, vehicles, bookings, txMgr, log)
	logEntryUseCase := logEntryUC.NewUseCase(bookings, slots, vehicleLogs, txMgr, log)
	logExitUseCase := logExitUC.NewUseCase(bookings, slots, vehicleLogs, txMgr, log)
	processPaymentUseCase := processPaymentUC.NewUseCase(
		bookings,
		slots,
		lots,
		vehicleLogs,
		payments,
		notificationSvc,
		txMgr,
		log,
	)

	router := newRouter(cfg, log, metricsCollector, tokens, routeHandlers{
		registerUser:         registerUserHandler.NewHandler(accountSvc, log),
		loginUser:            loginUserHandler.NewHandler(accountSvc, log),
		loginAdmin:           loginAdminHandler.NewHandler(accountSvc, log),
		searchParkingLots:    searchParkingLotsHandler.NewHandler(parkingSvc, log),
		getParkingLot:        getParkingLotHandler.NewHandler(parkingSvc, log),
		getCities:            getCitiesHandler.NewHandler(parkingSvc, log),
		getLocations:         getLocationsHandler.NewHandler(parkingSvc, log),
		registerVehicle:      registerVehicleHandler.NewHandler(accountSvc, log),
		listVehicles:         listVehiclesHandler.NewHandler(accountSvc, log),
		reserveSlot:          reserveSlotHandler.NewHandler(reserveSlotUseCase, log),
		getUserBookings:      getUserBookingsHandler.NewHandler(bookingSvc, log),
		getBooking:           getBookingHandler.NewHandler(bookingSvc, log),
		logEntry:             logEntryHandler.NewHandler(logEntryUseCase, log),
		logExit:              logExitHandler.NewHandler(logExitUseCase, log),
		getPaymentQuote:      getPaymentQuoteHandler.NewHandler(bookingSvc, log),
		processPayment:       processPaymentHandler.NewHandler(processPaymentUseCase, log),
		getUserPayments:      getUserPaymentsHandler.NewHandler(bookingSvc, log),
		getReceipt:           getReceiptHandler.NewHandler(bookingSvc, log),
		getUserNotifications: getUserNotificationsHandler.NewHandler(notificationSvc, log),
		getDashboard:         getDashboardHandler.NewHandler(reportSvc, log),
		getReport:            getReportHandler.NewHandler(reportSvc, log),
		getRecentReports:     getRecentReportsHandler.NewHandler(reportSvc, log),
		createParkingLot:     createParkingLotHandler.NewHandler(parkingSvc, log),
		deleteParkingLot:     deleteParkingLotHandler.NewHandler(parkingSvc, log),
		sendSlotNotification: sendSlotNotificationHandler.NewHandler(notificationSvc, log),
		getSlotNotifications: getSlotNotificationsHandler.NewHandler(notificationSvc, log),
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// newSender подключается к брокеру или пишет уведомления в журнал
func newSender(cfg config.BrokerConfig, log *logger.Logger) (sender, error) {
	if !cfg.Enabled {
		log.Info("Broker disabled, notifications are written to the log")
		return notifier.NewLogSender(log), nil
	}

	publisher, err := notifier.Dial(cfg.URL, cfg.Exchange, time.Duration(cfg.Timeout)*time.Second, log)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return publisher, nil
}

type routeHandlers struct {
	registerUser         *registerUserHandler.Handler
	loginUser            *loginUserHandler.Handler
	loginAdmin           *loginAdminHandler.Handler
	searchParkingLots    *searchParkingLotsHandler.Handler
	getParkingLot        *getParkingLotHandler.Handler
	getCities            *getCitiesHandler.Handler
	getLocations         *getLocationsHandler.Handler
	registerVehicle      *registerVehicleHandler.Handler
	listVehicles         *listVehiclesHandler.Handler
	reserveSlot          *reserveSlotHandler.Handler
	getUserBookings      *getUserBookingsHandler.Handler
	getBooking           *getBookingHandler.Handler
	logEntry             *logEntryHandler.Handler
	logExit              *logExitHandler.Handler
	getPaymentQuote      *getPaymentQuoteHandler.Handler
	processPayment       *processPaymentHandler.Handler
	getUserPayments      *getUserPaymentsHandler.Handler
	getReceipt           *getReceiptHandler.Handler
	getUserNotifications *getUserNotificationsHandler.Handler
	getDashboard         *getDashboardHandler.Handler
	getReport            *getReportHandler.Handler
	getRecentReports     *getRecentReportsHandler.Handler
	createParkingLot     *createParkingLotHandler.Handler
	deleteParkingLot     *deleteParkingLotHandler.Handler
	sendSlotNotification *sendSlotNotificationHandler.Handler
	getSlotNotifications *getSlotNotificationsHandler.Handler
}

func newRouter(
	cfg *config.Config,
	log *logger.Logger,
	metricsCollector *metrics.Metrics,
	tokens middleware.TokenParser,
	h routeHandlers,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	authMiddleware := middleware.NewAuth(tokens, log)
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/users/register", h.registerUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/users/login", h.loginUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admins/login", h.loginAdmin.Handle).Methods(http.MethodPost)

	api.HandleFunc("/parking-lots", h.searchParkingLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parking-lots/{lotId:[0-9]+}", h.getParkingLot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cities", h.getCities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cities/{city}/locations", h.getLocations.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (токен администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware.RequireAdmin)

	admin.HandleFunc("/dashboard", h.getDashboard.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports", h.getRecentReports.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/{type}", h.getReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/parking-lots", h.createParkingLot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/parking-lots/{lotId:[0-9]+}", h.deleteParkingLot.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/slots/{slotId:[0-9]+}/notifications", h.sendSlotNotification.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId:[0-9]+}/notifications", h.getSlotNotifications.Handle).Methods(http.MethodGet)

	// ============================================================
	// USER ROUTES (токен пользователя)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware.RequireUser)

	// --- Автомобили ---
	protected.HandleFunc("/vehicles", h.registerVehicle.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/vehicles", h.listVehicles.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", h.reserveSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", h.getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", h.getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/entry", h.logEntry.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/exit", h.logExit.Handle).Methods(http.MethodPost)

	// --- Оплата ---
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/payment-quote", h.getPaymentQuote.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/payment", h.processPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments", h.getUserPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId:[0-9]+}/receipt", h.getReceipt.Handle).Methods(http.MethodGet)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", h.getUserNotifications.Handle).Methods(http.MethodGet)

	return r
}
