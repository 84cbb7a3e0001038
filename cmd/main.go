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

	assignRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/assign_room"
	bulkAutoAssignHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/bulk_auto_assign"
	cancelBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/check_out"
	confirmPaymentHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_booking"
	generateInvoiceHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/generate_invoice"
	getAvailableRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_available_rooms"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	getBookingAssignmentsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking_assignments"
	getBookingInvoiceHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking_invoice"
	getInvoiceHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_invoice"
	listBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_bookings"
	listCategoryRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_category_rooms"
	listRoomCategoriesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_room_categories"
	recordInvoicePaymentHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/record_invoice_payment"
	unassignRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/unassign_room"
	updateRoomStatusHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_room_status"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/events"
	assignmentRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/assignment"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	chargeRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/charge"
	guestRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/guest"
	invoiceRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/invoice"
	paymentRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/payment"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-RoomBookingService/internal/service/catalog"
	invoicesService "github.com/m04kA/SMC-RoomBookingService/internal/service/invoices"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notify"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/roomscoring"
	assignRoomUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
	cancelBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/cancel_booking"
	confirmPaymentUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	generateInvoiceUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/generate_invoice"
	recordInvoicePaymentUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/record_invoice_payment"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const poolStatsInterval = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Metrics (optional)
	var metricsCollector *metrics.Metrics
	var dbCollector dbmetrics.Collector
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithPoolStats(db, dbCollector, poolStatsInterval, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Database.MaxTxRetries))

	// Repositories
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)
	guestRepository := guestRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	assignmentRepository := assignmentRepo.NewRepository(wrappedDB)
	chargeRepository := chargeRepo.NewRepository(wrappedDB)
	invoiceRepository := invoiceRepo.NewRepository(wrappedDB)

	// Event sinks (optional), delivered after commit
	var sinks []notify.Sink

	if cfg.Events.Enabled {
		redisClient := events.NewClient(cfg.Events.RedisAddr, cfg.Events.RedisPassword, cfg.Events.RedisDB)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Events.PublishTimeout)*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, events will be retried per publish: %v", cfg.Events.RedisAddr, err)
		}
		cancel()

		sinks = append(sinks, events.NewPublisher(redisClient, cfg.Events.ChannelPrefix))
		log.Info("Redis event publisher enabled (addr=%s, prefix=%s)", cfg.Events.RedisAddr, cfg.Events.ChannelPrefix)
	}

	if cfg.NotificationService.Enabled {
		sinks = append(sinks, notificationservice.NewClient(
			cfg.NotificationService.URL,
			time.Duration(cfg.NotificationService.Timeout)*time.Second,
			log,
		))
		log.Info("Notification service client enabled (url=%s, timeout=%ds)",
			cfg.NotificationService.URL, cfg.NotificationService.Timeout)
	}

	dispatcher := notify.NewDispatcher(
		time.Duration(cfg.Events.PublishTimeout)*time.Second,
		metricsCollector,
		log,
		sinks...,
	)

	// Domain services
	calculator := pricing.Calculator{
		TaxRate:          domain.RateFromPercent(cfg.Pricing.TaxRatePercent),
		ServiceRate:      domain.RateFromPercent(cfg.Pricing.ServiceRatePercent),
		EarlyCheckInRate: domain.RateFromPercent(cfg.Pricing.EarlyCheckInRatePercent),
		LateCheckOutRate: domain.RateFromPercent(cfg.Pricing.LateCheckOutRatePercent),
		ExtraBedRate:     domain.Money(cfg.Pricing.ExtraBedRate),
	}
	scorer := roomscoring.WeightedScorer{
		FloorMatch:        cfg.Scoring.FloorMatch,
		ElevatorProximity: cfg.Scoring.ElevatorProximity,
		CleanFreshness:    cfg.Scoring.CleanFreshness,
		FreshnessWindow:   cfg.Scoring.FreshnessWindow(),
	}
	availabilityChecker := availability.NewChecker(roomRepository, bookingRepository, log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		paymentRepository,
		assignmentRepository,
		roomRepository,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(roomRepository, txMgr, log)
	invoiceSvc := invoicesService.NewService(invoiceRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		guestRepository,
		paymentRepository,
		availabilityChecker,
		calculator,
		txMgr,
		dispatcher,
		metricsCollector,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		txMgr,
		dispatcher,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		assignmentRepository,
		txMgr,
		dispatcher,
		log,
	)
	assignRoomUseCase := assignRoomUC.NewUseCase(
		bookingRepository,
		roomRepository,
		assignmentRepository,
		availabilityChecker,
		scorer,
		txMgr,
		dispatcher,
		metricsCollector,
		log,
	)
	generateInvoiceUseCase := generateInvoiceUC.NewUseCase(
		bookingRepository,
		chargeRepository,
		invoiceRepository,
		txMgr,
		dispatcher,
		metricsCollector,
		generateInvoiceUC.Rates{TaxRate: calculator.TaxRate, ServiceRate: calculator.ServiceRate},
		log,
	)
	recordInvoicePaymentUseCase := recordInvoicePaymentUC.NewUseCase(
		invoiceRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Handlers
	debug := cfg.Server.Debug
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log, debug)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log, debug)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log, debug)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log, debug)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log, debug)
	checkIn := checkInHandler.NewHandler(bookingSvc, log, debug)
	checkOut := checkOutHandler.NewHandler(bookingSvc, log, debug)
	getBookingAssignments := getBookingAssignmentsHandler.NewHandler(bookingSvc, log, debug)
	getBookingInvoice := getBookingInvoiceHandler.NewHandler(invoiceSvc, log, debug)
	assignRoom := assignRoomHandler.NewHandler(assignRoomUseCase, log, debug)
	autoAssignRoom := assignRoomHandler.NewAutoHandler(assignRoomUseCase, log, debug)
	bulkAutoAssign := bulkAutoAssignHandler.NewHandler(assignRoomUseCase, log, debug)
	unassignRoom := unassignRoomHandler.NewHandler(assignRoomUseCase, log, debug)
	getAvailableRooms := getAvailableRoomsHandler.NewHandler(assignRoomUseCase, log, debug)
	generateInvoice := generateInvoiceHandler.NewHandler(generateInvoiceUseCase, log, debug)
	recordInvoicePayment := recordInvoicePaymentHandler.NewHandler(recordInvoicePaymentUseCase, log, debug)
	getInvoice := getInvoiceHandler.NewHandler(invoiceSvc, log, debug)
	listRoomCategories := listRoomCategoriesHandler.NewHandler(catalogSvc, log, debug)
	listCategoryRooms := listCategoryRoomsHandler.NewHandler(catalogSvc, log, debug)
	updateRoomStatus := updateRoomStatusHandler.NewHandler(catalogSvc, log, debug)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.StaffID)

	// --- Bookings ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/payment", confirmPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/check-out", checkOut.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/assignments", getBookingAssignments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/invoice", getBookingInvoice.Handle).Methods(http.MethodGet)

	// --- Room assignment ---
	api.HandleFunc("/assignments/assign", assignRoom.Handle).Methods(http.MethodPost)
	api.HandleFunc("/assignments/auto-assign", autoAssignRoom.Handle).Methods(http.MethodPost)
	api.HandleFunc("/assignments/bulk-auto-assign", bulkAutoAssign.Handle).Methods(http.MethodPost)
	api.HandleFunc("/assignments/unassign", unassignRoom.Handle).Methods(http.MethodPost)
	api.HandleFunc("/assignments/available-rooms", getAvailableRooms.Handle).Methods(http.MethodGet)

	// --- Invoices ---
	api.HandleFunc("/invoices/generate/{bookingId}", generateInvoice.Handle).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{invoiceId}/payment", recordInvoicePayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{invoiceId}", getInvoice.Handle).Methods(http.MethodGet)

	// --- Room catalog ---
	api.HandleFunc("/room-categories", listRoomCategories.Handle).Methods(http.MethodGet)
	api.HandleFunc("/room-categories/{categoryId}/rooms", listCategoryRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/status", updateRoomStatus.Handle).Methods(http.MethodPatch)

	// HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// wait for in-flight event deliveries before closing their clients
	dispatcher.Close()
	log.Info("Event dispatcher drained")

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
