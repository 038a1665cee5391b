package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/acolin/asso-ledger/internal/blobstore"
)

// Standalone invoice file server for development. It shares the blob
// directory and signing secret with the API, verifies the HMAC signature on
// each download, and never touches the database.

type Handler struct {
	store *blobstore.Local
}

func NewHandler(store *blobstore.Local) *Handler {
	return &Handler{store: store}
}

// GetFile serves one blob if the signed-URL parameters check out.
func (h *Handler) GetFile(c *gin.Context) {
	key := c.Param("key")
	exp, err := strconv.ParseInt(c.Query("exp"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid exp"})
		return
	}

	if err := h.store.Verify(key, exp, c.Query("sig")); err != nil {
		log.Warn().
			Str("key", key).
			Err(err).
			Msg("rejected download")
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired link"})
		return
	}

	data, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	if name := c.Query("name"); name != "" {
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	c.Data(http.StatusOK, contentTypeFor(key), data)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
}

func contentTypeFor(key string) string {
	switch {
	case hasSuffix(key, ".pdf"):
		return "application/pdf"
	case hasSuffix(key, ".jpg"), hasSuffix(key, ".jpeg"):
		return "image/jpeg"
	case hasSuffix(key, ".png"):
		return "image/png"
	}
	return "application/octet-stream"
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	})

	router.GET("/files/:key", handler.GetFile)
	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8081")
	dir := getEnv("BLOB_DIR", "./data/invoices")
	secret := os.Getenv("BLOB_SECRET")
	ttl := getEnvDuration("BLOB_URL_TTL", 15*time.Minute)
	baseURL := getEnv("BLOB_BASE_URL", "http://localhost:"+port)

	store, err := blobstore.NewLocal(dir, secret, ttl, baseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open blob store")
	}

	log.Info().
		Str("port", port).
		Str("dir", dir).
		Msg("Starting invoice file server")

	handler := NewHandler(store)
	router := SetupRouter(handler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
