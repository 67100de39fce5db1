package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gogo-delivery/config"
	"gogo-delivery/delivery"
	"gogo-delivery/handlers"
	"gogo-delivery/middleware"
	"gogo-delivery/notify"
	"gogo-delivery/routes"
	"gogo-delivery/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logrus.Fatalf("Failed to load config: %s", err)
	}
	log := config.NewLogger(cfg.Log)

	// Set Gin mode
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Initialize database
	db, err := config.OpenDB(cfg.Database, log)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}

	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		amqpPublisher, err := notify.DialAMQP(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %s", err)
		}
		publisher = amqpPublisher
		log.WithField("exchange", notify.Exchange).Info("publishing notification events")
	}
	defer publisher.Close()

	client, err := delivery.New(store.New(db), delivery.Options{
		Publisher:        publisher,
		Logger:           log,
		PreviewCacheSize: cfg.Preview.CacheSize,
		MaxPreviewBytes:  cfg.Preview.MaxBytes,
	})
	if err != nil {
		_ = publisher.Close()
		log.Fatalf("Failed to create client: %s", err)
	}

	// Create Gin router with recovery and request logging
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the GoGo Delivery API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "manager", "rider"},
		})
	})

	// Register all routes
	secret := []byte(cfg.JWT.Secret)
	routes.SetupRoutes(r, handlers.New(client, secret, cfg.JWT.TTL), secret)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
