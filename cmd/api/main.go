package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"github.com/devstore/sales-api/internal/application/service"
	"github.com/devstore/sales-api/internal/config"
	"github.com/devstore/sales-api/internal/domain/event"
	domainservice "github.com/devstore/sales-api/internal/domain/service"
	"github.com/devstore/sales-api/internal/infrastructure/database"
	"github.com/devstore/sales-api/internal/infrastructure/messaging/kafka"
	"github.com/devstore/sales-api/internal/infrastructure/repository"
	"github.com/devstore/sales-api/internal/presentation/http/handler"
	"github.com/devstore/sales-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	saleRepo := repository.NewSaleRepository(db)
	ruleRepo := repository.NewDiscountRuleRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize event publisher; fall back to log-only when Kafka is off
	var publisher event.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Printf("Warning: Failed to connect to Kafka, events will be logged only: %v", err)
			publisher = kafka.NewLogPublisher()
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	} else {
		publisher = kafka.NewLogPublisher()
	}

	// Initialize services
	discountService := domainservice.NewSaleDiscountService(ruleRepo)
	saleService := service.NewSaleService(saleRepo, discountService, publisher)
	ruleService := service.NewDiscountRuleService(ruleRepo)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Sale:         handler.NewSaleHandler(saleService),
		DiscountRule: handler.NewDiscountRuleHandler(ruleService),
		Product:      handler.NewProductHandler(productService),
		Cart:         handler.NewCartHandler(cartService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
