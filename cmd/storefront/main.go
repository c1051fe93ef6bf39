package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/velura/storefront/docs"
	"github.com/velura/storefront/internal/account"
	"github.com/velura/storefront/internal/address"
	"github.com/velura/storefront/internal/cart"
	"github.com/velura/storefront/internal/catalog"
	"github.com/velura/storefront/internal/checkout"
	"github.com/velura/storefront/internal/config"
	"github.com/velura/storefront/internal/httpx"
	"github.com/velura/storefront/internal/order"
)

// @title       Velura Storefront API
// @version     1.0
// @description Retail storefront commerce pipeline: catalog, cart, checkout and orders.
func main() {
	cfg := config.Load()

	db, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	users := account.NewPGRepo(db)
	sessions := account.NewRedisSessions(rdb)
	products := catalog.NewPGRepo(db)
	carts := cart.NewRedisStore(rdb)
	addrs := address.NewPGRepo(db)
	orders := order.NewPGRepo(db)
	composer := &checkout.Composer{Catalog: products, Addresses: addrs, Orders: orders}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/register", registerHandler(users, sessions))
	r.POST("/auth/login", loginHandler(users, sessions))

	r.GET("/products", listProductsHandler(products))
	r.GET("/products/:id", getProductHandler(products))

	auth := r.Group("/", httpx.Auth(sessions))
	auth.GET("/auth/me", meHandler(users))
	auth.POST("/auth/logout", logoutHandler(sessions))

	auth.GET("/cart", getCartHandler(carts))
	auth.POST("/cart", addToCartHandler(carts))
	auth.PUT("/cart/:product_id", updateCartLineHandler(carts))
	auth.DELETE("/cart/:product_id", removeCartLineHandler(carts))
	auth.POST("/cart/quote", quoteCartHandler(carts, products))

	auth.GET("/addresses", listAddressesHandler(addrs))
	auth.POST("/addresses", createAddressHandler(addrs))
	auth.DELETE("/addresses/:id", deleteAddressHandler(addrs))

	auth.POST("/checkout", checkoutHandler(composer, carts))
	auth.GET("/orders", listOrdersHandler(orders))
	auth.GET("/orders/:id", getOrderHandler(orders))

	log.Printf("storefront listening on %s", cfg.StorefrontAddr)
	log.Fatal(r.Run(cfg.StorefrontAddr))
}
