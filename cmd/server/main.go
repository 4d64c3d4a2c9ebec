// Package main initializes and starts the teamlog HTTP server, setting
// up configuration, logging, the selected storage backend, services,
// handlers and routing.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/tkhr-dev/teamlog/internal/config"
	"github.com/tkhr-dev/teamlog/internal/db"
	"github.com/tkhr-dev/teamlog/internal/docstore"
	"github.com/tkhr-dev/teamlog/internal/logger"
	"github.com/tkhr-dev/teamlog/internal/repository"
	"github.com/tkhr-dev/teamlog/internal/server/handler/http"
	"github.com/tkhr-dev/teamlog/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// backends bundles one complete set of repository implementations.
type backends struct {
	users      service.UserRepository
	attendance service.AttendanceRepository
	events     service.EventRepository
	readingLog service.ReadingLogRepository
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Select the storage backend once at startup; request handling
	// never branches on backend identity.
	var store backends
	switch options.StoreBackend {
	case "document":
		docs, err := docstore.Open(options.DataDir)
		if err != nil {
			zapLogger.Fatal("cannot open document store", zap.Error(err))
		}
		store = backends{users: docs, attendance: docs, events: docs, readingLog: docs}
	case "postgres":
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		store = backends{
			users:      repository.NewPostgresUserRepository(postgresDB),
			attendance: repository.NewPostgresAttendanceRepository(postgresDB),
			events:     repository.NewPostgresEventRepository(postgresDB),
			readingLog: repository.NewPostgresReadingLogRepository(postgresDB),
		}
	default:
		zapLogger.Fatal("unknown store backend", zap.String("backend", options.StoreBackend))
	}

	// Initialize business-logic services.
	authService := service.NewAuthService(store.users)
	attendanceService := service.NewAttendanceService(store.attendance)
	eventService := service.NewEventService(store.events)
	readingLogService := service.NewReadingLogService(store.readingLog)
	booksService := service.NewBooksService(options.BooksAPIURL)

	// Create HTTP handlers.
	handlers := http.Handlers{
		Auth:       &http.AuthHandler{AuthService: authService, SecureCookies: options.SecureCookies, Log: zapLogger},
		Members:    &http.MembersHandler{MemberService: authService, Log: zapLogger},
		Attendance: &http.AttendanceHandler{AttendanceService: attendanceService, Log: zapLogger},
		Events:     &http.EventsHandler{EventService: eventService, Log: zapLogger},
		ReadingLog: &http.ReadingLogHandler{ReadingLogService: readingLogService, Log: zapLogger},
		Books:      &http.BooksHandler{BookSearcher: booksService, Log: zapLogger},
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(handlers, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Port),
		zap.String("backend", options.StoreBackend),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
