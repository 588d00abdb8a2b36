package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"mosaicbot/internal/adapters/file"
	"mosaicbot/internal/core/domain"
	"mosaicbot/internal/core/port"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	FormField       = "files"
	ArchiveName     = "mosaic.zip"
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	batch          port.BatchProcessor
	maxUploadBytes int64
	engine         *gin.Engine
}

func NewServer(batch port.BatchProcessor, maxUploadBytes int64) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{batch: batch, maxUploadBytes: maxUploadBytes, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestLogger())

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.POST("/mosaic", s.handleMosaic)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http server shutdown failed")
		}
	}()

	log.Info().Str("addr", addr).Msg("http server listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleMosaic(c *gin.Context) {
	if s.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form with files"})
		return
	}

	headers := form.File[FormField]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyBatch.Error()})
		return
	}

	uploads := make([]domain.Upload, len(headers))
	for i, fh := range headers {
		uploads[i] = readUpload(fh)
	}

	l := log.With().Str("remote", c.ClientIP()).Int("images", len(uploads)).Logger()

	results, err := s.batch.Process(c.Request.Context(), uploads, func(completed, total int) {
		l.Debug().Int("completed", completed).Int("total", total).Msg("batch progress")
	})
	if err != nil {
		if errors.Is(err, domain.ErrBatchTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}

		l.Error().Err(err).Msg("batch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	succeeded := 0
	for _, res := range results {
		if res.OK() {
			succeeded++
		}
	}

	buf := new(bytes.Buffer)
	if err := file.WriteArchive(buf, results); err != nil {
		l.Error().Err(err).Msg("packaging results failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "packaging failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ArchiveName+`"`)
	c.Header("X-Mosaic-Succeeded", strconv.Itoa(succeeded))
	c.Header("X-Mosaic-Failed", strconv.Itoa(len(results)-succeeded))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// readUpload reads one multipart file. Unreadable parts become empty uploads, which the runner
// reports as decode failures.
func readUpload(fh *multipart.FileHeader) domain.Upload {
	upload := domain.Upload{Name: fh.Filename}

	f, err := fh.Open()
	if err != nil {
		log.Warn().Err(err).Str("name", fh.Filename).Msg("could not open uploaded file")
		return upload
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.Warn().Err(err).Str("name", fh.Filename).Msg("could not read uploaded file")
		return upload
	}

	upload.Data = data

	return upload
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}
