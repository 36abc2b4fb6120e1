package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"eventhub/internal/auth"
	"eventhub/internal/booking"
	booking_api "eventhub/internal/booking/api"
	booking_db "eventhub/internal/booking/db"
	"eventhub/internal/booking/qr"
	booking_redis "eventhub/internal/booking/redis"
	"eventhub/internal/config"
	"eventhub/internal/dashboard"
	dashboard_api "eventhub/internal/dashboard/api"
	"eventhub/internal/database/migrations"
	"eventhub/internal/event"
	event_api "eventhub/internal/event/api"
	event_db "eventhub/internal/event/db"
	"eventhub/internal/kafka"
	"eventhub/internal/logger"
	"eventhub/internal/profile"
	profile_api "eventhub/internal/profile/api"
	profile_db "eventhub/internal/profile/db"
	"eventhub/internal/volunteer"
	volunteer_api "eventhub/internal/volunteer/api"
	volunteer_db "eventhub/internal/volunteer/db"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.NewLogger("eventhub")
	defer log.Close()

	// --- PostgreSQL Setup ---
	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Database.DSN()))
	sqldb := sql.OpenDB(connector)
	defer sqldb.Close()

	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", "Failed to connect to Postgres: "+err.Error())
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
			MigrationsDir: cfg.Database.MigrationsDir,
			AutoMigrate:   true,
		})
		if err := runner.RunMigrations(); err != nil {
			log.Fatal("DATABASE", "Migrations failed: "+err.Error())
		}
	}

	// --- Redis Setup ---
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("REDIS", "Failed to connect to Redis: "+err.Error())
	}

	// --- Kafka Setup ---
	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		topics := []string{
			cfg.Kafka.Topics.ApplicationDecided,
			cfg.Kafka.Topics.BookingConfirmed,
			cfg.Kafka.Topics.BookingCheckedIn,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics); err != nil {
			log.Warn("KAFKA", "Failed to ensure topics: "+err.Error())
		}
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics)
		defer producer.Close()
	} else {
		log.Warn("KAFKA", "Kafka disabled, notifications will not be dispatched")
		producer = &kafka.Producer{Topics: cfg.Kafka.Topics}
	}

	// --- Initialize Dependencies ---
	profileDB := &profile_db.DB{Bun: bunDB}
	eventDB := &event_db.DB{Bun: bunDB}
	bookingDB := &booking_db.DB{Bun: bunDB}
	volunteerDB := &volunteer_db.DB{Bun: bunDB}

	guard := booking_redis.NewGuard(redisClient, cfg.Booking.GuardTTL)
	codec := qr.NewGenerator(cfg.Booking.QRSecret)
	roleCache := auth.NewRoleCache(redisClient, profileDB, cfg.Auth.RoleCacheTTL)

	profileHandler := &profile_api.Handler{Service: profile.NewService(profileDB, log)}
	eventHandler := &event_api.Handler{Service: event.NewService(eventDB, log)}
	bookingHandler := &booking_api.Handler{Service: booking.NewService(bookingDB, guard, producer, codec, log)}
	volunteerHandler := &volunteer_api.Handler{Service: volunteer.NewService(volunteerDB, producer, log)}
	dashboardHandler := &dashboard_api.Handler{Service: dashboard.NewService(eventDB, log)}

	// --- Setup Router ---
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware([]byte(cfg.Auth.JWTSecret), roleCache))

		r.Post("/profiles", profileHandler.Register)
		r.Get("/profile", profileHandler.Get)
		r.Put("/profile", profileHandler.Update)

		r.Get("/events", eventHandler.ListPublished)
		r.Post("/events", eventHandler.Create)
		r.Get("/events/{eventId}", eventHandler.Get)
		r.Put("/events/{eventId}", eventHandler.Update)
		r.Get("/organizer/events", eventHandler.ListMine)

		r.Post("/events/{eventId}/bookings", bookingHandler.Create)
		r.Get("/bookings", bookingHandler.ListMine)
		r.Delete("/bookings/{bookingId}", bookingHandler.Cancel)
		r.Get("/bookings/{bookingId}/qr", bookingHandler.TicketQR)
		r.Post("/checkin", bookingHandler.CheckIn)

		r.Post("/events/{eventId}/applications", volunteerHandler.Apply)
		r.Get("/events/{eventId}/applications", volunteerHandler.ListForEvent)
		r.Get("/events/{eventId}/application", volunteerHandler.Status)
		r.Post("/applications/{applicationId}/decision", volunteerHandler.Decide)

		r.Get("/dashboard/stats", dashboardHandler.Stats)
		r.Get("/dashboard/analysis", dashboardHandler.Analysis)
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "EventHub API running on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "HTTP server error: "+err.Error())
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("SERVER", "Shutdown signal received. Cleaning up...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("SERVER", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SERVER", "Server exited gracefully")
}
