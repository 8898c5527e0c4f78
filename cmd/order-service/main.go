package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/forevershop/orders-ecom/docs"
	"github.com/forevershop/orders-ecom/internal/auth"
	"github.com/forevershop/orders-ecom/internal/catalog"
	"github.com/forevershop/orders-ecom/internal/config"
	"github.com/forevershop/orders-ecom/internal/events"
	"github.com/forevershop/orders-ecom/internal/httpx"
	"github.com/forevershop/orders-ecom/internal/metrics"
	ord "github.com/forevershop/orders-ecom/internal/order"
)

// @title           Orders API
// @version         1.0
// @description     Order lifecycle service: placement, fulfillment tracking, payment state and owner/admin authorization.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to postgres: ", err)
	}
	defer pool.Close()

	repo := ord.NewPGRepo(pool)
	resolver := auth.NewHTTPResolver(cfg.IdentityBaseURL)
	cat := catalog.NewClient(cfg.CatalogBaseURL)

	var pub ord.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		pub = producer
	}

	svc := ord.NewService(repo, cat, pub)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), metrics.PrometheusMiddleware("order-service"))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/orders", auth.Middleware(resolver))
	{
		api.POST("", createOrderHandler(svc))
		api.GET("/all", listAllOrdersHandler(svc))
		api.GET("/user", listMyOrdersHandler(svc))
		api.GET("/check", checkOrdersHandler(svc))
		api.GET("/:id", getOrderHandler(svc))
		api.PUT("/:id/status", updateOrderStatusHandler(svc))
		api.PUT("/:id/payment", updatePaymentStatusHandler(svc))
		api.POST("/:id/cancel", cancelOrderHandler(svc))
	}

	log.WithFields(log.Fields{"addr": cfg.HTTPAddr}).Info("order-service listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
