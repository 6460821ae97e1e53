package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/application"
	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
	"github.com/oksasatya/date-app-backend/pkg/response"
)

type MatchHandler struct {
	Svc    *application.MatchService
	Logger *logrus.Logger
}

func NewMatchHandler(svc *application.MatchService, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{Svc: svc, Logger: logger}
}

func (h *MatchHandler) Recommendations(c *gin.Context) {
	recs, err := h.Svc.Recommendations(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, recs, "recommendations", gin.H{"count": len(recs)})
}
