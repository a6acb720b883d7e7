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

	"ms-storefront/internal/catalog"
	catalogapi "ms-storefront/internal/catalog/api"
	catalogdb "ms-storefront/internal/catalog/db"
	"ms-storefront/internal/checkout"
	checkoutapi "ms-storefront/internal/checkout/api"
	checkoutdb "ms-storefront/internal/checkout/db"
	checkoutkafka "ms-storefront/internal/checkout/kafka"
	checkoutredis "ms-storefront/internal/checkout/redis"
	"ms-storefront/internal/config"
	"ms-storefront/internal/confirmation"
	"ms-storefront/internal/database/migrations"
	"ms-storefront/internal/inventory"
	inventoryapi "ms-storefront/internal/inventory/api"
	inventorydb "ms-storefront/internal/inventory/db"
	"ms-storefront/internal/kafka"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/tickets/pdf"
	"ms-storefront/internal/tickets/qr"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func connectDatabase(cfg *config.Config, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))
	return client
}

func main() {
	log := logger.NewLogger("storefront-service")
	defer log.Close()

	log.Info("APP", "Starting Storefront Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectDatabase(cfg, log)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg, log)
	defer redisClient.Close()

	runner := migrations.NewRunner(bunDB, migrations.Options{
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		SeedData:      os.Getenv("SEED_DATA") == "true",
	})
	if err := runner.RunMigrations(); err != nil {
		log.Warn("DATABASE", fmt.Sprintf("Migrations did not complete: %v", err))
	}

	var publisher checkout.EventPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()

		requiredTopics := []string{cfg.Kafka.Topics.OrderCreated}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
		publisher = checkoutkafka.NewPublisher(producer, cfg.Kafka.Topics.OrderCreated)
	} else {
		log.Warn("KAFKA", "Kafka disabled, order events will not be published")
	}

	inventoryStore := &inventorydb.DB{Bun: bunDB}
	inventoryService := inventory.NewService(inventoryStore, cfg.Checkout.SoldOutEventID, log)

	catalogStore := &catalogdb.DB{Bun: bunDB}
	catalogService := catalog.NewService(catalogStore, log)

	checkoutStore := &checkoutdb.DB{Bun: bunDB}
	guard := checkoutredis.NewGuard(redisClient, cfg.Checkout.OrderGuardTTL, log)

	qrGen := qr.NewGenerator(cfg.Checkout.QRSecretKey)
	pdfGen := pdf.NewGenerator(qrGen, cfg.Checkout.TicketFontPath)
	sender := confirmation.NewSender(cfg.Mailer, pdfGen, log)

	checkoutService := &checkout.Service{
		Customers: checkoutStore,
		Orders:    checkoutStore,
		Inventory: inventoryService,
		Events:    catalogService,
		Merch:     catalogService,
		Sender:    sender,
		Guard:     guard,
		Publisher: publisher,
		Cfg:       cfg.Checkout,
		Logger:    log,
	}

	inventoryHandler := inventoryapi.NewHandler(inventoryService, inventoryStore, log)
	catalogHandler := catalogapi.NewHandler(catalogService, log)
	checkoutHandler := checkoutapi.NewHandler(checkoutService, log)

	log.Info("HTTP", "Setting up router")
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", catalogHandler.ListEvents)
		r.Get("/events/{eventId}", catalogHandler.GetEvent)
		r.Get("/events/{eventId}/tiers", inventoryHandler.ListTiers)
		r.Get("/availability", inventoryHandler.CheckAvailability)

		r.Get("/merch", catalogHandler.ListMerchItems)
		r.Get("/merch/{itemId}", catalogHandler.GetMerchItem)

		r.Get("/content/testimonials", catalogHandler.ListTestimonials)
		r.Get("/content/faqs", catalogHandler.ListFAQs)
		r.Get("/content/gallery", catalogHandler.ListGalleryImages)

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/tickets", checkoutHandler.FinalizeTicketOrder)
			r.Post("/merch", checkoutHandler.FinalizeMerchOrder)
			r.Get("/confirmation", checkoutHandler.GetConfirmation)
		})
	})
	log.Info("ROUTER", "Storefront routes registered under /api")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", "Storefront Service running on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	}
	log.Info("APP", "Storefront Service stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
