package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/application"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/pkg/response"
)

// writeError maps application errors to status codes. Anything unknown is
// logged and reported as 500 without internal detail.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Details)
	case errors.Is(err, application.ErrIdentityNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, repository.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, application.ErrImagesUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "image upload is not available", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
