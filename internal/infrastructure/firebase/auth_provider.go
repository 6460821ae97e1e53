package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"github.com/oksasatya/date-app-backend/internal/domain/repository"
)

// AuthProvider resolves and deletes Firebase Authentication users and
// verifies client ID tokens. Password sign-in happens on the client.
type AuthProvider struct {
	Client *auth.Client
}

func NewAuthProvider(client *auth.Client) *AuthProvider {
	return &AuthProvider{Client: client}
}

func (p *AuthProvider) ResolveIDByEmail(ctx context.Context, email string) (string, error) {
	u, err := p.Client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", repository.ErrIdentityNotFound
		}
		return "", fmt.Errorf("lookup %s: %w", email, err)
	}
	return u.UID, nil
}

func (p *AuthProvider) DeleteAccount(ctx context.Context, uid string) error {
	if err := p.Client.DeleteUser(ctx, uid); err != nil && !auth.IsUserNotFound(err) {
		return fmt.Errorf("delete auth user %s: %w", uid, err)
	}
	return nil
}

// SignIn accepts only a Firebase ID token.
func (p *AuthProvider) SignIn(ctx context.Context, cred repository.Credentials) (*repository.Identity, error) {
	if cred.IDToken == "" {
		return nil, repository.ErrInvalidCredentials
	}
	tok, err := p.Client.VerifyIDToken(ctx, cred.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidCredentials, err)
	}
	email, _ := tok.Claims["email"].(string)
	if email == "" {
		return nil, repository.ErrInvalidCredentials
	}
	return &repository.Identity{UID: tok.UID, Email: email}, nil
}

func (p *AuthProvider) Register(ctx context.Context, email, password string) (*repository.Identity, error) {
	u, err := p.Client.CreateUser(ctx, (&auth.UserToCreate{}).Email(email).Password(password))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, repository.ErrEmailTaken
		}
		return nil, fmt.Errorf("create auth user: %w", err)
	}
	return &repository.Identity{UID: u.UID, Email: u.Email}, nil
}
