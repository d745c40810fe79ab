package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/alx-travel/travelbook/internal"
	bookingpkg "github.com/alx-travel/travelbook/internal/booking"
	bookingPostgres "github.com/alx-travel/travelbook/internal/booking/postgres"
	"github.com/alx-travel/travelbook/internal/core/events"
	listingpkg "github.com/alx-travel/travelbook/internal/listing"
	listingPostgres "github.com/alx-travel/travelbook/internal/listing/postgres"
	"github.com/alx-travel/travelbook/internal/notification"
	paymentpkg "github.com/alx-travel/travelbook/internal/payment"
	paymentPostgres "github.com/alx-travel/travelbook/internal/payment/postgres"
	"github.com/alx-travel/travelbook/internal/paymentgateway"
	"github.com/alx-travel/travelbook/internal/transport/rest"
	"github.com/alx-travel/travelbook/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config     *internal.Config
	DB         *sqlx.DB
	Router     *chi.Mux
	Logger     *slog.Logger
	Dispatcher *notification.Dispatcher

	ListingHandler *listingpkg.Handler
	BookingHandler *bookingpkg.Handler
	PaymentHandler *paymentpkg.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.ListingHandler, deps.BookingHandler, deps.PaymentHandler, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.Dispatcher.Shutdown()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	// repositories
	listingRepo := listingPostgres.NewListingRepository(gormDB)
	bookingRepo := bookingPostgres.NewBookingRepository(gormDB)
	paymentRepo := paymentPostgres.NewPaymentRepository(gormDB)

	// event bus plus the notification side of it
	eventBus := events.NewEventBus(log)

	mailer := notification.NewSMTPMailer(config.Mail, log)
	sender := notification.NewConfirmationSender(bookingRepo, mailer, log)
	dispatcher := notification.NewDispatcher(notification.Config{
		MaxWorkers:   config.Notifications.MaxWorkers,
		JobQueueSize: config.Notifications.JobQueueSize,
	}, sender, log)
	notification.NewEventHandler(dispatcher, log).RegisterEventHandlers(eventBus)

	// gateway client and services
	gatewayClient := paymentgateway.NewClient(paymentgateway.Config{
		BaseURL:   config.Chapa.BaseURL,
		SecretKey: config.Chapa.SecretKey,
		Timeout:   config.Chapa.GetTimeout(),
	}, log)

	listingService := listingpkg.NewService(listingRepo, log)
	bookingService := bookingpkg.NewService(bookingRepo, listingRepo, log)
	paymentService := paymentpkg.NewService(
		paymentRepo,
		bookingRepo,
		gatewayClient,
		eventBus,
		config.Chapa.GetCurrency(),
		config.Chapa.ReturnURL,
		log,
	)

	return &Dependencies{
		Config:         config,
		DB:             db,
		Router:         chi.NewRouter(),
		Logger:         log,
		Dispatcher:     dispatcher,
		ListingHandler: listingpkg.NewHandler(listingService, log),
		BookingHandler: bookingpkg.NewHandler(bookingService, log),
		PaymentHandler: paymentpkg.NewHandler(paymentService, log),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
