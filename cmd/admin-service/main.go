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

	"ms-storefront/internal/auth"
	"ms-storefront/internal/catalog"
	catalogapi "ms-storefront/internal/catalog/api"
	catalogdb "ms-storefront/internal/catalog/db"
	checkoutdb "ms-storefront/internal/checkout/db"
	"ms-storefront/internal/config"
	"ms-storefront/internal/logger"

	"github.com/gin-gonic/gin"
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
		if err == nil {
			err = sqldb.Ping()
		}
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

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func main() {
	log := logger.NewLogger("admin-service")
	defer log.Close()

	log.Info("APP", "Starting Admin Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}

	cfg := config.Load()

	bunDB := connectDatabase(cfg, log)
	defer bunDB.Close()

	catalogStore := &catalogdb.DB{Bun: bunDB}
	catalogService := catalog.NewService(catalogStore, log)
	orderStore := &checkoutdb.DB{Bun: bunDB}

	handler := catalogapi.NewAdminHandler(catalogService, orderStore, log)

	router := gin.Default()

	protected := router.Group("/admin/api")
	protected.Use(auth.GinMiddleware())
	log.Info("AUTH", "OIDC middleware applied to admin API routes")
	{
		events := protected.Group("/events")
		{
			events.POST("", handler.CreateEvent)
			events.PUT("/:eventId", handler.UpdateEvent)
			events.DELETE("/:eventId", handler.DeleteEvent)
			events.GET("/:eventId/sales", handler.GetSalesSummary)
		}

		tiers := protected.Group("/tiers")
		{
			tiers.POST("", handler.CreateTier)
			tiers.PUT("/:tierId", handler.UpdateTier)
			tiers.DELETE("/:tierId", handler.DeleteTier)
		}

		merch := protected.Group("/merch")
		{
			merch.POST("", handler.CreateMerchItem)
			merch.PUT("/:itemId", handler.UpdateMerchItem)
			merch.DELETE("/:itemId", handler.DeleteMerchItem)
		}

		content := protected.Group("/content")
		{
			content.GET("/testimonials", handler.ListTestimonials)
			content.POST("/testimonials", handler.CreateTestimonial)
			content.PUT("/testimonials/:testimonialId", handler.UpdateTestimonial)
			content.DELETE("/testimonials/:testimonialId", handler.DeleteTestimonial)
			content.POST("/faqs", handler.CreateFAQ)
			content.PUT("/faqs/:faqId", handler.UpdateFAQ)
			content.DELETE("/faqs/:faqId", handler.DeleteFAQ)
			content.POST("/gallery", handler.CreateGalleryImage)
			content.DELETE("/gallery/:imageId", handler.DeleteGalleryImage)
		}

		protected.GET("/orders/:orderId", handler.GetOrder)
		protected.GET("/customers/orders", handler.LookupCustomerOrders)
	}
	log.Info("ROUTER", "Admin routes registered under /admin/api")

	port := os.Getenv("ADMIN_PORT")
	if port == "" {
		port = ":8081"
	}

	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", "Admin Service running on "+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	}
	log.Info("APP", "Admin Service stopped")
}
