package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/velura/storefront/internal/account"
	"github.com/velura/storefront/internal/catalog"
	"github.com/velura/storefront/internal/config"
	"github.com/velura/storefront/internal/httpx"
	"github.com/velura/storefront/internal/order"
)

func main() {
	cfg := config.Load()

	db, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	sessions := account.NewRedisSessions(rdb)
	products := catalog.NewPGRepo(db)
	orders := order.NewPGRepo(db)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	// credential issuance lives with the storefront auth endpoints; this
	// service only validates the bearer token
	admin := r.Group("/admin", httpx.Auth(sessions))
	admin.GET("/products", listProductsHandler(products))
	admin.POST("/products", createProductHandler(products))
	admin.PUT("/products/:id", updateProductHandler(products))
	admin.DELETE("/products/:id", deleteProductHandler(products))

	admin.GET("/orders", listOrdersHandler(orders))
	admin.PUT("/orders/:id/status", updateOrderStatusHandler(orders))

	admin.GET("/stats", statsHandler(orders, products))

	log.Printf("admin listening on %s", cfg.AdminAddr)
	log.Fatal(r.Run(cfg.AdminAddr))
}
