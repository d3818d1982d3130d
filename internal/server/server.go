package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-api/internal/docs"
	"github.com/snnyvrz/library-api/internal/handler"
	"github.com/snnyvrz/library-api/internal/middleware"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/validation"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const (
	// LinkedPrefix is where the URL-linked variant of the API is mounted.
	LinkedPrefix = "/api/linked"

	shutdownTimeout = 10 * time.Second
)

type Options struct {
	Version   string
	StartTime time.Time
}

// NewRouter wires every handler onto a fresh engine:
//
//	/api          writers by name, books create unknown writers
//	/api/linked   resources by URL, books need an existing writer
//	/library      read-only catalog
func NewRouter(db *gorm.DB, opts Options) *gin.Engine {
	validation.RegisterJSONFieldNames()

	e := gin.New()

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	e.Use(
		middleware.RequestID(),
		middleware.Logger(),
		metrics.Handler(),
		middleware.Recovery(),
	)

	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	healthHandler := handler.NewHealthHandler(db, opts.StartTime, opts.Version)
	healthHandler.RegisterRoutes(e)

	writers := repository.NewWriterRepository(db)
	books := repository.NewGormBookRepository(db)

	api := e.Group("/api")
	{
		plain := handler.PlainRepresentation{}
		handler.NewWriterHandler(writers, plain).RegisterRoutes(api)
		handler.NewBookHandler(books, handler.NewNameResolver(writers), plain).RegisterRoutes(api)
	}

	linked := e.Group(LinkedPrefix)
	{
		rep := handler.NewLinkedRepresentation(LinkedPrefix)
		handler.NewWriterHandler(writers, rep).RegisterRoutes(linked)
		handler.NewBookHandler(books, handler.NewReferenceResolver(writers, LinkedPrefix), rep).RegisterRoutes(linked)
	}

	handler.NewCatalogHandler(books, writers).RegisterRoutes(e.Group("/library"))

	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Version = opts.Version
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e
}

// Run serves h on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
