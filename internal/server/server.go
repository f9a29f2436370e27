package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boxoffice/boxoffice/config"
	"github.com/boxoffice/boxoffice/internal/handlers"
	"github.com/boxoffice/boxoffice/internal/inventory"
	"github.com/boxoffice/boxoffice/internal/log"
	"github.com/boxoffice/boxoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Init(cfg.LogLevel)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	engine := inventory.New(db, inventory.WithPurchaseTimeout(cfg.PurchaseTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, ":"+cfg.Port, NewRouter(db, engine, cfg))
}

// Run serves handler on addr until ctx is cancelled, then shuts the server
// down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.WithField("addr", addr).Info("Starting HTTP server...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logrus.Info("Shutting down HTTP server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logrus.Info("Shutdown complete.")
	return nil
}

func NewRouter(db *gorm.DB, engine *inventory.Engine, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	setupRoutes(r, db, engine, cfg)
	return r
}

func setupRoutes(r *gin.Engine, db *gorm.DB, engine *inventory.Engine, cfg *config.Config) {
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.InventoryMiddleware(engine, cfg.QRSecret))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/v1")
	{
		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
			eventPublic.POST("/:id/validate", handlers.ValidateCart)
			eventPublic.POST("/:id/purchase", handlers.PurchaseTickets)
		}
		public.GET("/tickets/:code/qr", handlers.GetTicketQR)
		public.GET("/categories", handlers.ListCategories)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)
			eventProtected.PUT("/:id/layout", handlers.UpdateLayout)
			eventProtected.GET("/:id/stats", handlers.GetEventStats)
			eventProtected.POST("/:id/tickets/:ticketId/cancel", handlers.CancelTicket)
			eventProtected.POST("/:id/checkin", handlers.CheckIn)
		}

		categoryProtected := protected.Group("/categories")
		{
			categoryProtected.POST("", handlers.CreateCategory)
			categoryProtected.PUT("/:id", handlers.UpdateCategory)
			categoryProtected.DELETE("/:id", handlers.DeleteCategory)
		}
	}
}
