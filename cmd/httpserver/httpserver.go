// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/go-petr/payment-instructions/internal/instructiondelivery"
	"github.com/go-petr/payment-instructions/internal/instructionservice"
	"github.com/go-petr/payment-instructions/internal/middleware"
	"github.com/go-petr/payment-instructions/internal/transferresolver"
	"github.com/go-petr/payment-instructions/pkg/configpkg"
)

// Server holds handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	resolver := transferresolver.New(nil)
	instructionService := instructionservice.New(resolver)
	instructionHandler := instructiondelivery.NewHandler(instructionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(gin.Recovery())

	engine.POST("/payment-instructions", instructionHandler.Create)

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		instructiondelivery.RegisterValidators(v)
	}

	server := &Server{
		Engine: engine,
		Config: config,
	}

	return server, nil
}
