package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"rental-server/entities"
	"rental-server/handlers"
	httpHandler "rental-server/handlers/http"
	"rental-server/middleware"
	"rental-server/usecases"
	"rental-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Options struct {
	Properties   *usecases.PropertyUseCase
	Users        *usecases.UserUseCase
	Manager      *ws.Manager
	JWTSecret    []byte
	AllowOrigins []string
	Log          *slog.Logger
}

type Server struct {
	app *gin.Engine
	log *slog.Logger
}

func NewServer(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Manager == nil {
		opts.Manager = ws.NewManager()
	}

	s := &Server{
		app: gin.New(),
		log: opts.Log,
	}
	s.routes(opts)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

// routes wires the API. Updating or deleting a property only requires a
// signed-in caller: PropertyUseCase allows it for the listing's owner or an
// admin (usecases.CanModify) and answers 403 otherwise, so tenants are
// refused there rather than by a role gate here. Websocket subscribers may
// identify themselves to also receive their unavailable listings.
func (s *Server) routes(opts Options) {
	s.app.Use(gin.Recovery(), middleware.RequestLogger(opts.Log))

	config := cors.DefaultConfig()
	if len(opts.AllowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.AllowOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TraceIDHeader}
	config.ExposeHeaders = []string{middleware.TraceIDHeader}
	s.app.Use(cors.New(config))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	propertyHandler := httpHandler.NewPropertyHandler(opts.Properties)
	userHandler := httpHandler.NewUserHandler(opts.Users)
	wsHandler := handlers.NewWSHandler(opts.Manager)

	auth := middleware.RequireAuth(opts.JWTSecret)
	publishers := middleware.Authorize(entities.RoleAgent, entities.RoleAdmin)

	api := s.app.Group("/api")
	{
		properties := api.Group("/properties")
		{
			properties.GET("", propertyHandler.GetProperties)
			properties.POST("", auth, publishers, propertyHandler.CreateProperty)
			properties.GET("/agent/my-properties", auth, publishers, propertyHandler.GetMyProperties)
			properties.GET("/:id", propertyHandler.GetProperty)
			properties.PUT("/:id", auth, propertyHandler.UpdateProperty)
			properties.DELETE("/:id", auth, propertyHandler.DeleteProperty)
		}

		users := api.Group("/users")
		{
			users.GET("/agents", userHandler.GetAgents)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/properties", userHandler.GetUserProperties)
			users.PUT("/:id", auth, middleware.Authorize(entities.RoleAdmin), userHandler.UpdateUser)
		}
	}

	s.app.GET("/ws/listings", middleware.OptionalAuth(opts.JWTSecret), wsHandler.HandleListingsWS)
	s.app.GET("/ws/listings/subscribers", wsHandler.GetSubscribers)
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
