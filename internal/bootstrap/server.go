package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airportops/api"
	"github.com/Domenick1991/airportops/config"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth       *api.AuthHandler
	Gates      *api.GateHandler
	Flights    *api.FlightHandler
	Passengers *api.PassengerHandler
	Reports    *api.ReportHandler
	Guard      *api.Guard
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, handlers Handlers) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(handlers),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	handlers.Auth.Register(router, handlers.Guard)
	handlers.Gates.Register(router, handlers.Guard)
	handlers.Flights.Register(router, handlers.Guard)
	handlers.Passengers.Register(router, handlers.Guard)
	handlers.Reports.Register(router, handlers.Guard)

	return router
}
