// Package gateway exposes the operation registry over HTTP.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dwikikusuma/storefront/internal/graph"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// Ready is polled by /readyz. Nil means always ready.
	Ready func(ctx context.Context) error
}

type request struct {
	OperationName string          `json:"operationName"`
	Query         string          `json:"query"`
	Variables     json.RawMessage `json:"variables"`
}

type responseError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type response struct {
	Data   map[string]any  `json:"data,omitempty"`
	Errors []responseError `json:"errors,omitempty"`
}

func NewEngine(reg *graph.Registry, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) {
		if opts.Ready != nil {
			if err := opts.Ready(c.Request.Context()); err != nil {
				log.Warn("not ready", slog.Any("err", err))
				c.Status(http.StatusServiceUnavailable)
				return
			}
		}
		c.Status(http.StatusOK)
	})

	api := r.Group("/api")
	api.POST("/graphql", graphqlHandler(reg, log))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func graphqlHandler(reg *graph.Registry, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, status.Errorf(codes.InvalidArgument, "invalid request body: %v", err))
			return
		}
		if req.OperationName == "" {
			writeError(c, log, status.Error(codes.InvalidArgument, "operationName is required"))
			return
		}
		c.Set(operationKey, req.OperationName)

		data, err := reg.Execute(c.Request.Context(), req.OperationName, req.Variables)
		if err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, response{Data: data})
	}
}

func writeError(c *gin.Context, log *slog.Logger, err error) {
	code, name, msg := httpStatusFromGRPC(err)
	if code >= http.StatusInternalServerError {
		log.Error("operation failed",
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("operation", c.GetString(operationKey)),
			slog.Any("err", err),
		)
	}

	var e responseError
	e.Message = msg
	e.Extensions.Code = name
	c.JSON(code, response{Errors: []responseError{e}})
}
