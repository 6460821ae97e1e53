package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/application"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
	"github.com/oksasatya/date-app-backend/pkg/response"
	"github.com/oksasatya/date-app-backend/pkg/validation"
)

type AccountHandler struct {
	Svc      *application.AccountService
	Deletion *application.Orchestrator
	Logger   *logrus.Logger
	Cookies  *helpers.Manager
}

func NewAccountHandler(svc *application.AccountService, deletion *application.Orchestrator, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AccountHandler {
	return &AccountHandler{Svc: svc, Deletion: deletion, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// loginRequest carries either a provider ID token or email and password.
type loginRequest struct {
	IDToken  string `json:"idToken"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	application.LoginResult
	Token string `json:"token"`
}

func tokenMeta(pair application.TokenPair) map[string]any {
	return map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	}
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.IDToken == "" && (req.Email == "" || req.Password == "") {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{
			"idToken": "is required when email and password are not present",
		})
		return
	}

	res, pair, err := h.Svc.Login(c.Request.Context(), repository.Credentials{
		IDToken:  req.IDToken,
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, loginResponse{LoginResult: *res, Token: pair.AccessToken}, "login successful", tokenMeta(pair))
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, pair, err := h.Svc.Register(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusCreated, loginResponse{LoginResult: *res, Token: pair.AccessToken}, "registered", tokenMeta(pair))
}

func (h *AccountHandler) Refresh(c *gin.Context) {
	refresh, _ := c.Cookie(helpers.RefreshCookie)
	if refresh == "" {
		var req refreshRequest
		_ = c.ShouldBindJSON(&req)
		refresh = req.RefreshToken
	}
	if refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"token": pair.AccessToken}, "token refreshed", tokenMeta(pair))
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.UserID(c)); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", middleware.UserID(c)).Warn("session revoke failed")
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// DeleteAccount removes the caller's account and everything it owns. Steps
// that could not finish are listed with 202; the account is gone either way.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	report, err := h.Deletion.DeleteAccount(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)

	if failed := report.Failed(); len(failed) > 0 {
		pending := make([]string, 0, len(failed))
		for _, s := range failed {
			pending = append(pending, string(s.Step))
		}
		response.Success(c, http.StatusAccepted, report, "account deleted, some cleanup is pending", gin.H{"pending": pending})
		return
	}
	response.Success(c, http.StatusOK, report, "account deleted", nil)
}
