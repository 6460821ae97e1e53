package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
)

// AccountService signs users in and out and bootstraps their profile.
type AccountService struct {
	Auth       repository.AuthProvider
	Profiles   repository.ProfileRepository
	Sessions   repository.SessionStore
	Index      repository.ProfileIndex
	JWT        *helpers.JWTManager
	Mail       *Mail
	Logger     *logrus.Logger
	SessionTTL time.Duration
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type LoginResult struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	NewUser bool   `json:"newUser"`
}

// Login verifies the credentials with the provider, creates the default
// profile on first sign-in and issues a token pair.
func (s *AccountService) Login(ctx context.Context, cred repository.Credentials) (*LoginResult, TokenPair, error) {
	id, err := s.Auth.SignIn(ctx, cred)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	return s.start(ctx, id)
}

// Register creates a provider account and signs it in.
func (s *AccountService) Register(ctx context.Context, email, password string) (*LoginResult, TokenPair, error) {
	id, err := s.Auth.Register(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return s.start(ctx, id)
}

func (s *AccountService) start(ctx context.Context, id *repository.Identity) (*LoginResult, TokenPair, error) {
	newUser, err := s.EnsureProfile(ctx, id.UID, id.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, id.UID, id.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResult{UserID: id.UID, Email: id.Email, NewUser: newUser}, pair, nil
}

// EnsureProfile writes the default profile when none exists and reports
// whether it did.
func (s *AccountService) EnsureProfile(ctx context.Context, uid, email string) (bool, error) {
	if s.Profiles.Exists(ctx, uid) {
		return false, nil
	}
	if err := s.Profiles.CreateDefault(ctx, uid, email); err != nil {
		return false, err
	}
	if s.Index != nil {
		p := entity.Profile{Email: email}
		if err := s.Index.Index(ctx, entity.Summarize(uid, &p)); err != nil {
			loggerOr(s.Logger).WithError(err).WithField("user_id", uid).Warn("es index failed")
		}
	}
	s.Mail.Welcome(ctx, email)
	return true, nil
}

// IssueTokens generates access/refresh tokens and records the session.
func (s *AccountService) IssueTokens(ctx context.Context, uid, email string) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(uid, email, sid)
	if err != nil {
		loggerOr(s.Logger).WithError(err).WithField("user_id", uid).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(uid, email, sid)
	if err != nil {
		loggerOr(s.Logger).WithError(err).WithField("user_id", uid).Error("generate refresh token failed")
		return TokenPair{}, err
	}
	if s.Sessions != nil {
		sess := entity.Session{UserID: uid, Email: email, SessionID: sid, CreatedAt: time.Now()}
		if err := s.Sessions.Save(ctx, sess, s.SessionTTL); err != nil {
			loggerOr(s.Logger).WithError(err).WithField("user_id", uid).Warn("session save failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the token pair. The refresh token must belong to the
// current session.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Sessions != nil {
		sess, err := s.Sessions.Get(ctx, claims.UserID)
		if err != nil || sess.SessionID != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, claims.UserID, claims.Email)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, claims.UserID, nil
}

// Logout drops the session; tokens issued for it stop being accepted.
func (s *AccountService) Logout(ctx context.Context, uid string) error {
	if s.Sessions == nil {
		return nil
	}
	return s.Sessions.Revoke(ctx, uid)
}
