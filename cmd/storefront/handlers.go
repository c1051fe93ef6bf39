package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velura/storefront/internal/account"
	"github.com/velura/storefront/internal/address"
	"github.com/velura/storefront/internal/cart"
	"github.com/velura/storefront/internal/catalog"
	"github.com/velura/storefront/internal/checkout"
	"github.com/velura/storefront/internal/httpx"
	"github.com/velura/storefront/internal/order"
	"github.com/velura/storefront/internal/pricing"
)

// ---------- auth ----------

func registerHandler(users account.Repository, sessions account.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req account.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email, password and name are required"})
			return
		}
		hash, err := account.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
			return
		}
		u := &account.User{
			ID:           uuid.NewString(),
			Email:        strings.TrimSpace(req.Email),
			Name:         strings.TrimSpace(req.Name),
			Phone:        strings.TrimSpace(req.Phone),
			PasswordHash: hash,
		}
		if err := users.Create(c.Request.Context(), u); err != nil {
			if errors.Is(err, account.ErrAlreadyExist) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "registration failed"})
			return
		}
		token, err := sessions.Issue(c.Request.Context(), u.ID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "session error"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
	}
}

func loginHandler(users account.Repository, sessions account.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req account.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
		if err != nil || !account.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		token, err := sessions.Issue(c.Request.Context(), u.ID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "session error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}

func meHandler(users account.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.GetByID(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func logoutHandler(sessions account.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = sessions.Revoke(c.Request.Context(), c.GetString("token"))
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// ---------- catalog ----------

// listProductsHandler godoc
// @Summary List products
// @Tags    catalog
// @Param   category query string false "category filter"
// @Param   concern  query string false "concern filter"
// @Param   search   query string false "name/description search"
// @Success 200 {object} catalog.ListResponse
// @Router  /products [get]
func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		f := catalog.Filter{
			Category: c.Query("category"),
			Concern:  c.Query("concern"),
			Search:   c.Query("search"),
			Limit:    limit,
			Offset:   offset,
		}
		items, err := repo.List(c.Request.Context(), f)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		if items == nil {
			items = []catalog.Product{}
		}
		c.JSON(http.StatusOK, catalog.ListResponse{
			Q: f.Search, Category: f.Category, Concern: f.Concern,
			Limit: f.Limit, Offset: f.Offset, Items: items,
		})
	}
}

// getProductHandler godoc
// @Summary Get product by id
// @Tags    catalog
// @Param   id path string true "product id"
// @Success 200 {object} catalog.Product
// @Failure 404 {object} catalog.HTTPError
// @Router  /products/{id} [get]
func getProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, catalog.HTTPError{Error: "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// ---------- cart ----------

type cartLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func getCartHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		crt, err := store.Get(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "cart unavailable"})
			return
		}
		if crt.Lines == nil {
			crt.Lines = []cart.Line{}
		}
		c.JSON(http.StatusOK, crt)
	}
}

func addToCartHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		if err := store.AddLine(c.Request.Context(), httpx.UserID(c), req.ProductID, req.Quantity); err != nil {
			if errors.Is(err, cart.ErrQuantityRequired) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "cart unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item added to cart"})
	}
}

func updateCartLineHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		qty, err := strconv.Atoi(c.Query("quantity"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be an integer"})
			return
		}
		// quantity <= 0 removes the line instead of storing it
		if err := store.SetLineQuantity(c.Request.Context(), httpx.UserID(c), c.Param("product_id"), qty); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "cart unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
	}
}

func removeCartLineHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.RemoveLine(c.Request.Context(), httpx.UserID(c), c.Param("product_id")); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "cart unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item removed"})
	}
}

type quoteRequest struct {
	CouponCode string `json:"coupon_code"`
}

// quoteCartHandler prices the live cart. Lines whose product is gone are
// skipped, never an error.
func quoteCartHandler(store cart.Store, products checkout.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quoteRequest
		_ = c.ShouldBindJSON(&req)

		crt, err := store.Get(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "cart unavailable"})
			return
		}
		var lines []pricing.Line
		for _, l := range crt.Lines {
			p, err := products.GetByID(c.Request.Context(), l.ProductID)
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
				return
			}
			lines = append(lines, pricing.Line{Product: *p, Quantity: l.Quantity})
		}
		summary, err := pricing.Quote(lines, req.CouponCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon code"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// ---------- addresses ----------

func listAddressesHandler(addrs address.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := addrs.ListByUser(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "addresses unavailable"})
			return
		}
		if out == nil {
			out = []address.Address{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func createAddressHandler(addrs address.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in address.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := in.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		a, err := addrs.Create(c.Request.Context(), httpx.UserID(c), in)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save address"})
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func deleteAddressHandler(addrs address.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := addrs.Delete(c.Request.Context(), httpx.UserID(c), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete address"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
	}
}

// ---------- checkout & orders ----------

// checkoutHandler godoc
// @Summary Place an order from the current cart
// @Tags    checkout
// @Accept  json
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 400 {object} catalog.HTTPError
// @Router  /checkout [post]
func checkoutHandler(composer *checkout.Composer, store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		userID := httpx.UserID(c)
		crt, err := store.Get(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "cart unavailable"})
			return
		}
		if crt.Empty() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}
		o, err := composer.PlaceOrder(c.Request.Context(), userID, crt, in)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrValidation),
				errors.Is(err, pricing.ErrInvalidCoupon):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "failed to place order"})
			}
			return
		}
		// a Clear failure leaves the placed order intact and a stale
		// cart the user can empty themselves
		_ = store.Clear(c.Request.Context(), userID)
		c.JSON(http.StatusCreated, gin.H{"order_id": o.ID, "message": "order placed successfully"})
	}
}

func listOrdersHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		out, err := orders.ListByUser(c.Request.Context(), httpx.UserID(c), limit, offset)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "orders unavailable"})
			return
		}
		if out == nil {
			out = []order.Order{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func getOrderHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil || o.UserID != httpx.UserID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
