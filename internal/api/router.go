package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"baldr/internal/catalog"
	"baldr/internal/logging"
	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/services"
)

const requestIDHeader = "X-Request-ID"

// Store is the catalog view the handlers need. *catalog.SQLiteStore
// implements it.
type Store interface {
	FetchAssetByAuthority(ctx context.Context, uri mediauri.URI) (*media.Record, error)
	List(ctx context.Context) ([]catalog.Entry, error)
	Count(ctx context.Context) (int, error)
}

type handler struct {
	store  Store
	logger *slog.Logger
}

// NewRouter builds the gin engine serving store.
func NewRouter(store Store, logger *slog.Logger) *gin.Engine {
	h := &handler{store: store, logger: logging.NewComponentLogger(logger, "api")}

	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())

	router.GET("/healthcheck", h.health)
	assets := router.Group("/api/assets")
	{
		assets.GET("", h.listAssets)
		assets.GET("/:scheme/:authority", h.getAsset)
	}
	return router
}

// requestLogger tags each request with an id and logs it once finished.
func (h *handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), id))

		started := time.Now()
		c.Next()

		logging.WithContext(c.Request.Context(), h.logger).Debug("request served",
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration(logging.FieldElapsed, time.Since(started)))
	}
}

func (h *handler) health(c *gin.Context) {
	if c.Query("format") != "json" {
		c.String(http.StatusOK, "ok")
		return
	}
	count, err := h.store.Count(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Assets: count})
}

func (h *handler) listAssets(c *gin.Context) {
	entries, err := h.store.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	query := strings.TrimSpace(c.Query("q"))
	entries = catalog.Search(entries, query)
	c.JSON(http.StatusOK, AssetListResponse{
		Assets: FromEntries(entries),
		Total:  len(entries),
		Query:  query,
	})
}

func (h *handler) getAsset(c *gin.Context) {
	uri, err := mediauri.Parse(c.Param("scheme") + ":" + c.Param("authority"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	rec, err := h.store.FetchAssetByAuthority(c.Request.Context(), uri)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// respondError maps error markers to HTTP status codes.
func (h *handler) respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, services.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrMalformedInput), errors.Is(err, services.ErrValidation):
		status, code = http.StatusBadRequest, "bad_request"
	}
	if status == http.StatusInternalServerError {
		logging.ErrorWithContext(logging.WithContext(c.Request.Context(), h.logger), "request failed", "api_request_failed",
			logging.String("path", c.Request.URL.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the catalog database"))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}
