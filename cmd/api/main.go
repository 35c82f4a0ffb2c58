package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/auth"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/cart"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/categories"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/config"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/db"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/mail"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/newsletter"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/orders"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/products"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/reports"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/wishlist"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.AppEnv == "dev" {
		log.SetFormatter(&logrus.TextFormatter{})
		log.SetLevel(logrus.DebugLevel)
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	pool, err := db.NewPostgres(cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	defer pool.Close()

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
	} else {
		log.Warn("SMTP not configured, outgoing mail is disabled")
		mailer = mail.NewNoop()
	}

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:         cfg.JWTIssuer,
		AccessSecret:   cfg.JWTAccessSecret,
		RefreshSecret:  cfg.JWTRefreshSecret,
		AccessTTLMin:   cfg.AccessTokenTTLMin,
		RefreshTTLDays: cfg.RefreshTokenTTLDays,
	})

	// Repos
	userRepo := auth.NewUserRepo(pool)
	refreshRepo := auth.NewRefreshRepo(pool)
	catRepo := categories.NewRepo(pool)
	prodRepo := products.NewRepo(pool)
	cartRepo := cart.NewRepo(pool)
	wishRepo := wishlist.NewRepo(pool)
	orderRepo := orders.NewRepo(pool, cfg.Pricing)
	subRepo := newsletter.NewRepo(pool)
	reportRepo := reports.NewRepo(pool)

	// Handlers
	authHandler := auth.NewHandler(auth.Dependencies{
		JWT:     jwtMgr,
		Users:   userRepo,
		Refresh: refreshRepo,
	})
	catHandler := categories.NewHandler(catRepo)
	prodHandler := products.NewHandler(prodRepo)
	cartHandler := cart.NewHandler(cartRepo)
	wishHandler := wishlist.NewHandler(wishRepo)
	orderHandler := orders.NewHandler(orders.Dependencies{
		Repo:   orderRepo,
		Mailer: mailer,
		Carts:  cartRepo,
		Log:    log,
	})
	subHandler := newsletter.NewHandler(subRepo, mailer, log)
	reportHandler := reports.NewHandler(reportRepo)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.RequestLogger(log), httpx.Recovery(log))

	api := r.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Public catalog
	api.GET("/categories", catHandler.ListPublic)
	api.GET("/products", prodHandler.ListPublic)
	api.GET("/products/:id", prodHandler.GetPublic)

	// Newsletter
	api.POST("/newsletter/subscribe", subHandler.Subscribe)
	api.POST("/newsletter/unsubscribe", subHandler.Unsubscribe)

	// Checkout works for guests too; a valid token attaches the order to
	// the account.
	api.POST("/orders", auth.OptionalAuth(jwtMgr), orderHandler.Create)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware(jwtMgr))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)
		protected.PUT("/auth/change-password", authHandler.ChangePassword)

		protected.GET("/cart", cartHandler.GetMyCart)
		protected.POST("/cart/items", cartHandler.AddItem)
		protected.PATCH("/cart/items", cartHandler.UpdateQty)
		protected.DELETE("/cart/items", cartHandler.RemoveItem)

		protected.GET("/wishlist", wishHandler.List)
		protected.POST("/wishlist", wishHandler.Add)
		protected.DELETE("/wishlist/:productId", wishHandler.Remove)

		protected.GET("/orders", orderHandler.ListMine)
		protected.GET("/orders/:id", orderHandler.Get)
		protected.PUT("/orders/:id/address", orderHandler.UpdateAddress)
		protected.GET("/orders/:id/invoice", orderHandler.Invoice)
		protected.GET("/orders/:id/shipping-label", orderHandler.ShippingLabel)

		protected.POST("/products/:id/reviews", prodHandler.AddReview)

		adminOnly := protected.Group("/admin")
		adminOnly.Use(auth.RequireRole("admin"))
		{
			adminOnly.GET("/stats", reportHandler.Stats)
			adminOnly.GET("/reports/monthly", reportHandler.Monthly)
			adminOnly.GET("/reports/yearly", reportHandler.Yearly)
			adminOnly.GET("/reports/export/orders", reportHandler.ExportOrders)

			adminOnly.GET("/categories", catHandler.AdminList)
			adminOnly.POST("/categories", catHandler.AdminCreate)
			adminOnly.PATCH("/categories/:id", catHandler.AdminUpdate)
			adminOnly.DELETE("/categories/:id", catHandler.AdminDelete)

			adminOnly.GET("/products", prodHandler.AdminList)
			adminOnly.GET("/products/:id", prodHandler.AdminGet)
			adminOnly.POST("/products", prodHandler.AdminCreate)
			adminOnly.PUT("/products/:id", prodHandler.AdminUpdate)
			adminOnly.POST("/products/:id/archive", prodHandler.AdminArchive)
			adminOnly.POST("/products/:id/restore", prodHandler.AdminRestore)
			adminOnly.DELETE("/products/:id/permanent", prodHandler.AdminPermanentDelete)

			adminOnly.GET("/orders", orderHandler.AdminList)
			adminOnly.PUT("/orders/:id/status", orderHandler.AdminUpdateStatus)
			adminOnly.PUT("/orders/:id/pay", orderHandler.AdminMarkPaid)
			adminOnly.PUT("/orders/:id/address", orderHandler.UpdateAddress)

			adminOnly.GET("/newsletter/subscribers", subHandler.AdminList)
			adminOnly.GET("/newsletter/stats", subHandler.AdminStats)
		}
	}

	log.WithField("addr", cfg.HTTPAddr).Info("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
