// Package server assembles the HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"time"

	"mentorhub/internal/config"
	"mentorhub/internal/middleware"
	"mentorhub/internal/modules/auth"
	"mentorhub/internal/modules/availability"
	"mentorhub/internal/modules/booking"
	"mentorhub/internal/modules/cart"
	"mentorhub/internal/modules/mentor"
	"mentorhub/internal/modules/onboarding"
	"mentorhub/internal/modules/payment"
	"mentorhub/internal/pkg/jwt"
	"mentorhub/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	// CartStorage defaults to in-memory storage.
	CartStorage cart.Storage
	// Gateway defaults to Stripe with Config.StripeSecretKey.
	Gateway payment.Gateway
}

type Server struct {
	Router *gin.Engine
	Hub    *cart.Hub
	cfg    *config.Config
	log    *zap.Logger
}

func New(d Deps) *Server {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	if d.CartStorage == nil {
		d.CartStorage = cart.NewMemoryStorage()
	}
	if d.Gateway == nil {
		d.Gateway = payment.NewStripeGateway(cfg.StripeSecretKey, nil)
	}

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	mentorRepo := repository.NewMentorRepository(d.DB)
	slotRepo := repository.NewAvailabilityRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	paymentRepo := repository.NewPaymentRepository(d.DB)
	onboardingRepo := repository.NewOnboardingRepository(d.DB)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := cart.NewHub(log.Named("cart_hub"))
	carts := cart.NewManager(d.CartStorage, hub, cfg.DiscountCode, log.Named("cart"))

	// Services
	availabilityService := availability.NewService(slotRepo, log.Named("availability"))
	bookingService := booking.NewService(bookingRepo, log.Named("booking"))
	paymentService := payment.NewService(paymentRepo, carts, bookingService, userRepo, d.Gateway, payment.Config{
		Currency:      cfg.Currency,
		WebhookSecret: cfg.StripeWebhookSecret,
	}, log.Named("payment"))

	// Handlers
	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens, log.Named("auth")))
	availabilityHandler := availability.NewHandler(availabilityService, log.Named("availability"))
	bookingHandler := booking.NewHandler(bookingService, booking.NewFlow(availabilityService), carts, cfg.SignInRedirect, log.Named("booking"))
	cartHandler := cart.NewHandler(carts, hub, originAllowed(cfg.CORSAllowedOrigins), log.Named("cart"))
	paymentHandler := payment.NewHandler(paymentService, log.Named("payment"))
	onboardingHandler := onboarding.NewHandler(onboarding.NewService(onboardingRepo, mentorRepo, userRepo, log.Named("onboarding")), log.Named("onboarding"))
	mentorHandler := mentor.NewHandler(mentor.NewService(mentorRepo), log.Named("mentor"))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(
		middleware.RateLimit(cfg.RateLimitPerMinute, log),
		middleware.CartSession(cfg.IsProduction(), int(cfg.CartTTL/time.Second)),
		middleware.OptionalJWTAuth(tokens),
	)
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		mentorHandler.RegisterPublicRoutes(v1)
		availabilityHandler.RegisterPublicRoutes(v1)
		cartHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.RequireUser(cfg.SignInRedirect))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
			onboardingHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
		}

		// mentor tools take a bearer token only
		mentors := v1.Group("")
		mentors.Use(middleware.JWTAuth(tokens), middleware.MentorOnly())
		{
			availabilityHandler.RegisterMentorRoutes(mentors)
			bookingHandler.RegisterMentorRoutes(mentors)
		}
	}

	return &Server{Router: r, Hub: hub, cfg: cfg, log: log}
}

// Run serves until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("http server shutdown error", zap.Error(err))
		return err
	}
	s.log.Info("http server stopped")
	return nil
}

// originAllowed accepts configured origins and local development hosts for
// the cart websocket.
func originAllowed(extra []string) func(string) bool {
	return func(origin string) bool {
		if slices.Contains(extra, origin) {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Hostname() == "localhost" || u.Hostname() == "127.0.0.1"
	}
}
