package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shynora-backend/internal/auth"
	"shynora-backend/internal/config"
	"shynora-backend/internal/store"
)

type Handler struct {
	cfg        *config.Config
	auth       *auth.Service
	oauth      *auth.GoogleOAuth
	products   *store.Products
	categories *store.Categories
	carts      *store.Carts
	wishlists  *store.Wishlists
}

func New(cfg *config.Config, authSvc *auth.Service, oauth *auth.GoogleOAuth,
	products *store.Products, categories *store.Categories,
	carts *store.Carts, wishlists *store.Wishlists) *Handler {
	return &Handler{
		cfg:        cfg,
		auth:       authSvc,
		oauth:      oauth,
		products:   products,
		categories: categories,
		carts:      carts,
		wishlists:  wishlists,
	}
}

// Router wires the REST surface.
func (h *Handler) Router() *gin.Engine {
	if h.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "Accept"},
		ExposeHeaders:    []string{"Content-Range", "X-Content-Range"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/verify-otp", h.verifyOTP)
		authGroup.POST("/resend-otp", h.resendOTP)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/current_user", h.requireAuth, h.currentUser)
		authGroup.PUT("/profile", h.requireAuth, h.updateProfile)
		authGroup.GET("/google", h.googleAuth)
		authGroup.GET("/callback/google", h.googleCallback)
	}

	products := api.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.POST("", h.createProduct)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.GET("/:id", h.getCategory)
		categories.POST("", h.createCategory)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}

	cart := api.Group("/cart", h.requireAuth)
	{
		cart.GET("", h.getCart)
		cart.POST("", h.addToCart)
		cart.PUT("/:productId", h.updateCartItem)
		cart.DELETE("/:productId", h.removeFromCart)
		cart.DELETE("", h.clearCart)
	}

	wishlist := api.Group("/wishlist", h.requireAuth)
	{
		wishlist.GET("", h.getWishlist)
		wishlist.POST("", h.addToWishlist)
		wishlist.DELETE("/:productId", h.removeFromWishlist)
	}

	return r
}
