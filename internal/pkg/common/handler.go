package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"blog_crud_jwt/internal/pkg/uploader"
	"blog_crud_jwt/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var startedAt = time.Now()

// StatusHandler probes the service's backing stores.
type StatusHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewStatusHandler(db *gorm.DB, redisClient *redis.Client) *StatusHandler {
	return &StatusHandler{db: db, redis: redisClient}
}

// Status reports service health, including database and redis reachability.
// @Summary Health check
// @Tags Common
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/status [get]
func (h *StatusHandler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if err := h.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
	}

	status := "ok"
	if dbStatus != "ok" || redisStatus != "ok" {
		status = "degraded"
	}

	response.Success(c, gin.H{
		"status":   status,
		"database": dbStatus,
		"redis":    redisStatus,
		"uptime":   time.Since(startedAt).String(),
	})
}

// UploadFile uploads one or more files to object storage.
// @Summary Upload files (batch supported)
// @Tags Common
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files"
// @Success 200 {object} response.Envelope
// @Router /api/upload [post]
func UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid form data.")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "No files uploaded.")
		return
	}

	if uploader.GlobalUploader == nil {
		response.Error(c, http.StatusInternalServerError, "Uploader not initialized.")
		return
	}

	// Results are index-assigned so the response order matches the request.
	urls := make([]string, len(files))

	var wg sync.WaitGroup
	var errOnce sync.Once
	var failed atomic.Bool
	var uploadErr error

	// Cap concurrent uploads.
	sem := make(chan struct{}, 5)

	for i, file := range files {
		wg.Add(1)
		go func(index int, f *multipart.FileHeader) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			// Skip remaining work once a sibling upload has failed.
			// uploadErr itself is only read after wg.Wait.
			if failed.Load() {
				return
			}

			url, err := uploader.GlobalUploader.UploadFile(f)
			if err != nil {
				errOnce.Do(func() {
					uploadErr = err
					failed.Store(true)
				})
				return
			}

			urls[index] = url
		}(i, file)
	}

	wg.Wait()

	if uploadErr != nil {
		response.Error(c, http.StatusInternalServerError, "Upload failed: "+uploadErr.Error())
		return
	}

	response.Success(c, urls)
}
