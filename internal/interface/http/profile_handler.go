package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/application"
	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
	"github.com/oksasatya/date-app-backend/pkg/response"
	"github.com/oksasatya/date-app-backend/pkg/validation"
)

const (
	maxImageBytes     = 5 << 20
	defaultSearchSize = 20
	maxSearchSize     = 50
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.Svc.GetProfile(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// UpdateProfile accepts a partial document; absent fields keep their value.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var in application.UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()
	email := middleware.UserEmail(c)
	if err := h.Svc.UpdateProfile(ctx, email, in); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.GetProfile(ctx, email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile updated", nil)
}

func (h *ProfileHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	url, err := h.Svc.UploadProfileImage(c.Request.Context(), middleware.UserEmail(c), f, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profileImageUrl": url}, "image uploaded", nil)
}

func (h *ProfileHandler) Search(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSearchSize)))
	if err != nil || size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}
	hits, err := h.Svc.SearchProfiles(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
